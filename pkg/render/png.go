package render

import (
	"image"
	"math"

	"github.com/0x0FACED/go-gauge/pkg/voronoi"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Options control what gets drawn. Zero values fall back to DefaultOptions.
type Options struct {
	// pixels per plane unit
	Scale float64
	// plane units around the drawing
	Padding float64
	// draw the support rays and wedge rays
	Steps bool
	// draw the minimum gauges through every three-site point
	Gauges bool
}

var DefaultOptions = Options{Scale: 1, Padding: 50, Gauges: true}

type rgb struct{ r, g, b float64 }

var palette = map[voronoi.RoleKind]rgb{
	voronoi.Chosen:           {1, 1, 1},
	voronoi.Hidden:           {0.45, 0.45, 0.45},
	voronoi.Cone:             {0, 1, 1},
	voronoi.ConstructionStep: {0.3, 0.3, 0.5},
	voronoi.Overlap:          {1, 0.6, 0},
	voronoi.ConeRay:          {1, 0, 1},
}

var (
	siteColor  = rgb{0.56, 0.93, 0.56}
	pointColor = rgb{1, 0, 0}
	gaugeColor = rgb{0.9, 0.8, 0.2}
)

const pointRadius = 4

type canvas struct {
	c     *gg.Context
	box   voronoi.BoundingBox
	scale float64
}

// Draw renders res on a black canvas sized to fit its finite geometry. Rays
// are clipped to the canvas. The plane's y axis points up.
func Draw(res *voronoi.Result, o Options) (image.Image, error) {
	if res == nil {
		return nil, errors.New("nothing to draw")
	}
	if o.Scale <= 0 {
		o.Scale = DefaultOptions.Scale
	}
	if o.Padding <= 0 {
		o.Padding = DefaultOptions.Padding
	}

	box := voronoi.BoundsOf(res, o.Padding)
	width := int(math.Ceil(o.Scale * box.Width()))
	height := int(math.Ceil(o.Scale * box.Height()))
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("empty drawing area %dx%d", width, height)
	}

	cv := &canvas{c: gg.NewContext(width, height), box: box, scale: o.Scale}
	cv.c.SetRGB(0, 0, 0)
	cv.c.DrawRectangle(0, 0, float64(width), float64(height))
	cv.c.Fill()

	if o.Steps {
		cv.c.SetDash(4, 4)
		cv.segments(res.TwoSite, voronoi.ConstructionStep, 1)
		cv.segments(res.ThreeSite, voronoi.ConstructionStep, 1)
		cv.c.SetDash()
	}
	for _, k := range []voronoi.RoleKind{voronoi.Hidden, voronoi.Cone, voronoi.Chosen} {
		cv.segments(res.TwoSite, k, 2)
	}
	cv.segments(res.ThreeSite, voronoi.Overlap, 3)
	cv.segments(res.ThreeSite, voronoi.ConeRay, 2)

	chosen := res.Chosen()
	if o.Gauges {
		for _, p := range chosen {
			for _, s := range p.Sites {
				cv.quad(res.Gauge.Place(s).Scale(p.Scale))
			}
		}
	}

	for _, s := range res.Sites {
		cv.point(s, siteColor)
	}
	for _, p := range chosen {
		cv.point(p.Start, pointColor)
	}
	return cv.c.Image(), nil
}

// SavePNG draws res into the png file at path.
func SavePNG(res *voronoi.Result, path string, o Options) error {
	img, err := Draw(res, o)
	if err != nil {
		return err
	}
	return errors.Wrap(gg.SavePNG(path, img), "save png")
}

// Pixel maps a plane point to image coordinates for a drawing made by Draw
// with the same result and options.
func Pixel(res *voronoi.Result, o Options, v voronoi.Vertex) (x, y float64) {
	if o.Scale <= 0 {
		o.Scale = DefaultOptions.Scale
	}
	if o.Padding <= 0 {
		o.Padding = DefaultOptions.Padding
	}
	cv := canvas{box: voronoi.BoundsOf(res, o.Padding), scale: o.Scale}
	return cv.px(v)
}

func (cv *canvas) px(v voronoi.Vertex) (float64, float64) {
	// y flipped: origin at the bottom left
	return (v.X - cv.box.Xl) * cv.scale, (cv.box.Yb - v.Y) * cv.scale
}

func (cv *canvas) segments(segs []voronoi.Segment, kind voronoi.RoleKind, width float64) {
	col := palette[kind]
	cv.c.SetRGB(col.r, col.g, col.b)
	cv.c.SetLineWidth(width)
	for _, s := range segs {
		if s.Role.Kind != kind || s.IsPoint() {
			continue
		}
		clipped, ok := cv.box.Clip(s)
		if !ok {
			continue
		}
		x1, y1 := cv.px(clipped.Start)
		x2, y2 := cv.px(clipped.End)
		if kind == voronoi.Cone && !s.Role.ChosenSide {
			cv.c.SetRGB(col.r/2, col.g/2, col.b/2)
		}
		cv.c.DrawLine(x1, y1, x2, y2)
		cv.c.Stroke()
		cv.c.SetRGB(col.r, col.g, col.b)
	}
}

func (cv *canvas) quad(q voronoi.Quad) {
	vs := q.Vertices()
	cv.c.SetRGB(gaugeColor.r, gaugeColor.g, gaugeColor.b)
	cv.c.SetLineWidth(1)
	for i, v := range vs {
		x, y := cv.px(v)
		if i == 0 {
			cv.c.MoveTo(x, y)
		} else {
			cv.c.LineTo(x, y)
		}
	}
	cv.c.ClosePath()
	cv.c.Stroke()
}

func (cv *canvas) point(v voronoi.Vertex, col rgb) {
	x, y := cv.px(v)
	cv.c.SetRGB(col.r, col.g, col.b)
	cv.c.DrawCircle(x, y, pointRadius)
	cv.c.Fill()
}
