package main

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/0x0FACED/go-gauge/pkg/logger"
	"github.com/0x0FACED/go-gauge/pkg/voronoi"
	"github.com/0x0FACED/go-gauge/static"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const defaultGauge = "20,20 20,0 0,0 0,20"

// Генерируем случайные сайты
func generateRandSites(n int, width, height int) []voronoi.Vertex {
	sites := make([]voronoi.Vertex, n)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < n; i++ {
		sites[i] = voronoi.V(float64(r.Intn(width)), float64(r.Intn(height)))
	}
	return sites
}

// сетка со сдвигом каждой второй строки, иначе почти все тройки коллинеарны
func generateGridSites(n int, width, height int) []voronoi.Vertex {
	sites := make([]voronoi.Vertex, 0, n)

	rows := int(math.Sqrt(float64(n)))
	if rows < 1 {
		rows = 1
	}
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	for i := 0; i < rows && len(sites) < n; i++ {
		shift := 0.0
		if i%2 == 1 {
			shift = xStep / 3
		}
		for j := 0; j < cols && len(sites) < n; j++ {
			sites = append(sites, voronoi.V(xStep/2+float64(j)*xStep+shift, yStep/2+float64(i)*yStep))
		}
	}
	return sites
}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Бисекторы (четырехугольный калибр)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "X",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// имя серии и цвет для каждой роли
var series = map[voronoi.RoleKind]struct {
	name  string
	color string
}{
	voronoi.Chosen:  {"Бисекторы", "white"},
	voronoi.Hidden:  {"Скрытые", "gray"},
	voronoi.Cone:    {"Конусы", "cyan"},
	voronoi.Overlap: {"Наложения", "orange"},
	voronoi.ConeRay: {"Лучи конусов", "magenta"},
}

func scatterData(vs []voronoi.Vertex) []opts.ScatterData {
	points := make([]opts.ScatterData, 0, len(vs))
	for _, v := range vs {
		points = append(points, opts.ScatterData{
			Value: []float64{v.X, v.Y},
		})
	}
	return points
}

// Преобразуем результат в Echarts для отображения, лучи обрезаются по bbox
func resultToEcharts(res *voronoi.Result, bbox voronoi.BoundingBox) *charts.Scatter {
	scatter := charts.NewScatter()

	// Дизайним скаттер
	prepareScatter(scatter)

	scatter.AddSeries("Сайты", scatterData(res.Sites)).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	var chosen []voronoi.Vertex
	for _, p := range res.Chosen() {
		chosen = append(chosen, p.Start)
	}
	scatter.AddSeries("Точки трех сайтов", scatterData(chosen)).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "red",
			}),
		)

	for _, segs := range [][]voronoi.Segment{res.TwoSite, res.ThreeSite} {
		for _, seg := range segs {
			s, ok := series[seg.Role.Kind]
			if !ok || seg.IsPoint() {
				continue
			}
			clipped, ok := bbox.Clip(seg)
			if !ok {
				continue
			}

			line := charts.NewLine()
			line.SetGlobalOptions(
				charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
				charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
			)

			line.AddSeries(s.name, []opts.LineData{
				{Value: []float64{clipped.Start.X, clipped.Start.Y}},
				{Value: []float64{clipped.End.X, clipped.End.Y}},
			}).SetSeriesOptions(
				charts.WithLineStyleOpts(opts.LineStyle{
					Width: 2,
					Color: s.color,
				}),
			)

			scatter.Overlap(line)
		}
	}

	return scatter
}

type params struct {
	width, height int
	numSites      int
	isRandom      bool
	gauge         string
	sites         string
}

func readParams(r *http.Request) params {
	p := params{width: 1000, height: 1000, numSites: 8, gauge: defaultGauge}
	if r.Method != http.MethodPost {
		return p
	}
	r.ParseForm()
	if v, err := strconv.Atoi(r.FormValue("width")); err == nil && v > 0 {
		p.width = v
	}
	if v, err := strconv.Atoi(r.FormValue("height")); err == nil && v > 0 {
		p.height = v
	}
	if v, err := strconv.Atoi(r.FormValue("sites_count")); err == nil && v > 0 {
		p.numSites = v
	}
	p.isRandom = r.FormValue("random") == "true"
	if g := strings.TrimSpace(r.FormValue("gauge")); g != "" {
		p.gauge = g
	}
	p.sites = strings.TrimSpace(r.FormValue("sites"))
	return p
}

func compute(p params, log *logger.ZapLogger) (*voronoi.Result, error) {
	var sites []voronoi.Vertex
	switch {
	case p.sites != "":
		var err error
		if sites, err = voronoi.ParseVertices(p.sites); err != nil {
			return nil, err
		}
	case p.isRandom:
		sites = generateRandSites(p.numSites, p.width, p.height)
	default:
		sites = generateGridSites(p.numSites, p.width, p.height)
	}

	gauge, err := voronoi.ParseVertices(p.gauge)
	if err != nil {
		return nil, err
	}
	q, err := voronoi.NewQuad(gauge...)
	if err != nil {
		return nil, err
	}
	return voronoi.Compute(q, sites, voronoi.WithLogger(log))
}

// http обработчик страницы с диаграмой и формой для ввода данных
func diagramHandler(w http.ResponseWriter, r *http.Request) {
	p := readParams(r)

	logger := logger.New()
	defer logger.ClearLogs()

	page := static.Page{Form: static.Form{
		Gauge:      p.gauge,
		Sites:      p.sites,
		Width:      p.width,
		Height:     p.height,
		SitesCount: p.numSites,
		Random:     p.isRandom,
	}}

	res, err := compute(p, logger)
	if err != nil {
		logger.Error("[app] bad input", zap.Error(err))
	} else {
		bbox := voronoi.NewBoundingBox(0, float64(p.width), 0, float64(p.height))
		var chart bytes.Buffer
		if err := resultToEcharts(res, bbox).Render(&chart); err != nil {
			logger.Error("[app] Ошибка рендеринга диаграммы", zap.Error(err))
		}
		page.Chart = template.HTML(chart.String())
		page.Summary = fmt.Sprintf("сайтов: %d, двухсайтовых сегментов: %d, точек трех сайтов: %d, диагностик: %d",
			len(res.Sites), len(res.TwoSite), len(res.Chosen()), len(res.Diagnostics))
	}

	// Вставляем логи в HTML
	logger.UpdateLogs()
	for _, log := range logger.Logs {
		page.Logs = append(page.Logs, template.HTML(log))
	}

	if err := static.Render(w, page); err != nil {
		fmt.Println("Ошибка рендеринга страницы:", err)
	}
}

func main() {
	http.HandleFunc("/", diagramHandler)
	fmt.Println("Сервер запущен на http://localhost:8080")
	err := http.ListenAndServe(":8080", nil)
	if err != nil {
		fmt.Println("Err ListenAndServe", err)
	}
}
