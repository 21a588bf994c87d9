package static

import (
	"html/template"
	"io"
)

// Form holds the values shown back in the input form.
type Form struct {
	Gauge      string
	Sites      string
	Width      int
	Height     int
	SitesCount int
	Random     bool
}

// Page is everything the diagram page shows. Chart and Logs are trusted HTML
// produced by go-echarts and by the logger.
type Page struct {
	Form    Form
	Chart   template.HTML
	Logs    []template.HTML
	Summary string
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Бисекторы калибра</title>
    <style>
        body { margin: 0; background: #1f1f1f; color: #d3d3d3; font-family: Consolas, monospace; }
        main { display: grid; grid-template-columns: 1fr 1fr; height: 100vh; }
        section { padding: 12px; box-sizing: border-box; overflow: auto; }
        #logs { border-left: 4px solid #757575; background: #1e1e1e; white-space: pre-wrap; word-wrap: break-word; }
        form { display: grid; grid-template-columns: max-content 1fr; gap: 6px 10px; align-items: center; }
        input { background: #2b2b2b; color: #d3d3d3; border: 1px solid #444; border-radius: 4px; padding: 4px; }
        input[type="submit"]:hover { background: #444; cursor: pointer; }
        h1 { font-size: 1.2em; }
        .summary { color: #90ee90; }
    </style>
</head>
<body>
<main>
    <section>
        <h1>Бисекторы для четырехугольного калибра</h1>
        <form id="diagram-form" method="POST">
            <label for="gauge">Калибр (4 вершины x,y)</label>
            <input type="text" id="gauge" name="gauge" value="{{.Form.Gauge}}">
            <label for="sites">Сайты x,y (пусто - сгенерировать)</label>
            <input type="text" id="sites" name="sites" value="{{.Form.Sites}}">
            <label for="width">Ширина (W)</label>
            <input type="number" id="width" name="width" value="{{.Form.Width}}" min="100" max="5000">
            <label for="height">Высота (H)</label>
            <input type="number" id="height" name="height" value="{{.Form.Height}}" min="100" max="5000">
            <label for="sites_count">Количество сайтов (n)</label>
            <input type="number" id="sites_count" name="sites_count" value="{{.Form.SitesCount}}" min="2" max="60">
            <label for="random">Случайные</label>
            <input type="checkbox" id="random" name="random" value="true"{{if .Form.Random}} checked{{end}}>
            <span></span>
            <input type="submit" value="Построить">
        </form>
        {{with .Summary}}<p class="summary">{{.}}</p>{{end}}
        {{.Chart}}
    </section>
    <section id="logs">
        <h1>Логи</h1>
        {{range .Logs}}{{.}}{{end}}
    </section>
</main>
<script>
    // ответ сервера целиком заменяет страницу
    document.getElementById('diagram-form').addEventListener('submit', async function (e) {
        e.preventDefault();
        try {
            const response = await fetch('/', {
                method: 'POST',
                body: new URLSearchParams(new FormData(this)).toString(),
                headers: { 'Content-Type': 'application/x-www-form-urlencoded' },
            });
            if (!response.ok) {
                throw new Error('Ошибка при отправке данных');
            }
            const html = await response.text();
            document.open();
            document.write(html);
            document.close();
        } catch (err) {
            console.error('Ошибка:', err);
        }
    });
</script>
</body>
</html>
`))

// Render writes the page.
func Render(w io.Writer, p Page) error {
	return page.Execute(w, p)
}
