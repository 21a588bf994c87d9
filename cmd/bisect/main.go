// Command bisect computes the bisectors of a set of sites under a
// quadrilateral gauge and prints them, optionally drawing a PNG.
//
//	bisect --gauge "20,20 20,0 0,0 0,20" 100,100 400,300 200,500
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/0x0FACED/go-gauge/pkg/logger"
	"github.com/0x0FACED/go-gauge/pkg/render"
	"github.com/0x0FACED/go-gauge/pkg/voronoi"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"
)

type config struct {
	gauge   string
	sites   []string
	workers int
	steps   bool
	color   bool
	verbose bool
	png     string
	scale   float64
	preview bool
}

func parseArgs(args []string) (config, error) {
	var c config
	app := kingpin.New("bisect", "Bisectors of point sites under a convex quadrilateral gauge.")
	app.Flag("gauge", "Gauge vertices as \"x,y x,y x,y x,y\".").Short('g').Default("20,20 20,0 0,0 0,20").StringVar(&c.gauge)
	app.Flag("workers", "Goroutines per phase, 0 for GOMAXPROCS.").Short('w').Default("0").IntVar(&c.workers)
	app.Flag("steps", "List construction steps too.").BoolVar(&c.steps)
	app.Flag("color", "Colour the output.").Default("true").BoolVar(&c.color)
	app.Flag("verbose", "Print the solver log to stderr.").Short('v').BoolVar(&c.verbose)
	app.Flag("png", "Draw the result into this PNG file.").StringVar(&c.png)
	app.Flag("scale", "Pixels per unit in the PNG.").Default("1").Float64Var(&c.scale)
	app.Flag("preview", "Show the PNG inline (iTerm2).").BoolVar(&c.preview)
	app.Arg("sites", "Sites as x,y.").Required().StringsVar(&c.sites)

	_, err := app.Parse(args)
	return c, err
}

func run(c config, stdout, stderr io.Writer) error {
	gauge, err := voronoi.ParseVertices(c.gauge)
	if err != nil {
		return errors.Wrap(err, "gauge")
	}
	q, err := voronoi.NewQuad(gauge...)
	if err != nil {
		return err
	}
	sites, err := voronoi.ParseVertices(strings.Join(c.sites, " "))
	if err != nil {
		return errors.Wrap(err, "sites")
	}

	level := zapcore.WarnLevel
	if c.verbose {
		level = zapcore.DebugLevel
	}
	log := logger.NewWithLevel(level)

	res, err := voronoi.Compute(q, sites, voronoi.WithLogger(log), voronoi.WithWorkers(c.workers))
	if c.verbose || err != nil {
		fmt.Fprint(stderr, log.Text())
	}
	if err != nil {
		return err
	}

	au := aurora.NewAurora(c.color)
	listing(stdout, au, res, c.steps)

	if c.png == "" {
		if !c.preview {
			return nil
		}
		c.png = filepath.Join(os.TempDir(), "bisect.png")
	}
	if err := render.SavePNG(res, c.png, render.Options{Scale: c.scale, Steps: c.steps, Gauges: true}); err != nil {
		return err
	}
	if c.preview {
		if err := imgcat.CatFile(c.png, stdout); err != nil {
			return errors.Wrap(err, "preview")
		}
	}
	return nil
}

func paint(au aurora.Aurora, k voronoi.RoleKind, s string) aurora.Value {
	switch k {
	case voronoi.Chosen:
		return au.Green(s)
	case voronoi.Cone:
		return au.Cyan(s)
	case voronoi.ConstructionStep, voronoi.Hidden:
		return au.Blue(s)
	case voronoi.Overlap, voronoi.ConeRay:
		return au.Yellow(s)
	}
	return au.Red(s)
}

func listing(w io.Writer, au aurora.Aurora, res *voronoi.Result, steps bool) {
	fmt.Fprintf(w, "%s %d\n", au.Bold("sites"), len(res.Sites))
	for _, s := range res.Sites {
		fmt.Fprintf(w, "  %v\n", s)
	}

	fmt.Fprintf(w, "%s\n", au.Bold("two-site"))
	for _, s := range res.TwoSite {
		if s.Role.Kind == voronoi.ConstructionStep && !steps {
			continue
		}
		fmt.Fprintf(w, "  %s\n", paint(au, s.Role.Kind, s.String()))
	}

	fmt.Fprintf(w, "%s\n", au.Bold("three-site"))
	for _, s := range res.ThreeSite {
		if s.Role.Kind == voronoi.ConstructionStep && !steps {
			continue
		}
		line := s.String()
		if s.Role.IsChosenPoint() {
			line = fmt.Sprintf("%s scale=%.6g", line, s.Scale)
		}
		fmt.Fprintf(w, "  %s\n", paint(au, s.Role.Kind, line))
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "%s %v\n", au.Magenta("diagnostic"), d)
	}
}

func main() {
	c, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(2)
	}
	if err := run(c, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}
