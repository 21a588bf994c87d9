package voronoi

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/bigxy"
	"github.com/twpayne/go-geom/xy/orientation"
	"go.uber.org/multierr"
)

// Quad is the gauge: a convex quadrilateral whose scaled copies play the role
// of circles. Vertices are addressed cyclically.
type Quad struct {
	vertices [4]Vertex
	center   Vertex
	valid    bool
}

// NewQuad validates the four vertices and derives the center as their average.
// Every problem found is reported in the returned ConfigurationError.
func NewQuad(vs ...Vertex) (Quad, error) {
	if len(vs) != 4 {
		return Quad{}, configErrorf("gauge needs exactly 4 vertices, got %d", len(vs))
	}

	var err error
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if vs[i].Equal(vs[j]) {
				err = multierr.Append(err, errors.Errorf("vertices %d and %d coincide at %v", i, j, vs[i]))
			}
		}
	}
	if err == nil {
		err = multierr.Append(err, checkConvex(vs))
	}
	if err != nil {
		return Quad{}, &ConfigurationError{err: errors.Wrap(err, "invalid gauge")}
	}

	q := Quad{valid: true}
	copy(q.vertices[:], vs)
	for _, v := range vs {
		q.center = q.center.Add(v)
	}
	q.center = q.center.Mul(0.25)
	return q, nil
}

// MustQuad is NewQuad for fixed, known-good shapes.
func MustQuad(vs ...Vertex) Quad {
	q, err := NewQuad(vs...)
	if err != nil {
		panic(err)
	}
	return q
}

// checkConvex demands a consistent turn at every corner. Orientation is
// decided with extended precision so nearly flat corners are not misjudged.
func checkConvex(vs []Vertex) error {
	var err error
	var turn orientation.Type
	for i := 0; i < 4; i++ {
		a, b, c := vs[i], vs[(i+1)%4], vs[(i+2)%4]
		o := bigxy.OrientationIndex(geom.Coord{a.X, a.Y}, geom.Coord{b.X, b.Y}, geom.Coord{c.X, c.Y})
		switch {
		case o == orientation.Collinear:
			err = multierr.Append(err, errors.Errorf("vertices %v, %v, %v are collinear", a, b, c))
		case turn == orientation.Collinear:
			turn = o
		case o != turn:
			err = multierr.Append(err, errors.Errorf("gauge is not convex at %v", b))
		}
	}
	return err
}

func (q Quad) Valid() bool {
	return q.valid
}

func (q Quad) Center() Vertex {
	return q.center
}

// Vertex returns vertex i, wrapping around.
func (q Quad) Vertex(i int) Vertex {
	return q.vertices[mod4(i)]
}

func (q Quad) Vertices() [4]Vertex {
	return q.vertices
}

func (q Quad) Next(i int) int {
	return mod4(i + 1)
}

func (q Quad) Prev(i int) int {
	return mod4(i - 1)
}

// Local is vertex i relative to the center.
func (q Quad) Local(i int) Vertex {
	return q.Vertex(i).Sub(q.center)
}

// Place returns the copy of the gauge translated so that its center is site.
func (q Quad) Place(site Vertex) Quad {
	off := site.Sub(q.center)
	p := q
	for i := range p.vertices {
		p.vertices[i] = p.vertices[i].Add(off)
	}
	p.center = site
	return p
}

// Scale returns the copy scaled by k around the center.
func (q Quad) Scale(k float64) Quad {
	p := q
	for i := range p.vertices {
		p.vertices[i] = q.center.Add(q.Local(i).Mul(k))
	}
	return p
}

// Distance is the gauge distance from site to p: the factor by which the
// gauge placed at site must be scaled for p to lie on its boundary.
func (q Quad) Distance(site, p Vertex) float64 {
	w := p.Sub(site)
	if w.Len() == 0 {
		return 0
	}
	best := math.Inf(1)
	for i := 0; i < 4; i++ {
		a := q.Local(i)
		e := q.Local(i + 1).Sub(a)
		denom := w.Cross(e)
		if denom == 0 {
			continue
		}
		t := a.Cross(e) / denom
		mu := a.Cross(w) / denom
		if t <= 0 || mu < -1e-12 || mu > 1+1e-12 {
			continue
		}
		if k := 1 / t; k < best {
			best = k
		}
	}
	return best
}

// frame is the gauge seen in a coordinate system rotated by -angle, so that
// the two sites of a pair lie on a horizontal line.
type frame struct {
	angle float64
	local [4]Vertex
	// indices sorted by rotated y, stable
	order [4]int
}

func (q Quad) frame(angle float64) frame {
	f := frame{angle: angle}
	for i := 0; i < 4; i++ {
		f.local[i] = Rotate(q.Local(i), Vertex{}, -angle)
	}
	f.sort()
	return f
}

// reflected is the frame of the gauge mirrored through its center. A copy of
// the gauge placed at p reaches a site exactly when the mirrored copy placed
// at the site reaches p, so gauge circles passing through given sites are
// copies of the mirrored gauge.
func (f frame) reflected() frame {
	r := frame{angle: f.angle}
	for i, v := range f.local {
		r.local[i] = v.Mul(-1)
	}
	r.sort()
	return r
}

func (f *frame) sort() {
	for i := range f.order {
		f.order[i] = i
	}
	sort.SliceStable(f.order[:], func(i, j int) bool {
		return f.local[f.order[i]].Y < f.local[f.order[j]].Y
	})
}

func (f frame) to(v Vertex) Vertex {
	return Rotate(v, Vertex{}, -f.angle)
}

func (f frame) from(v Vertex) Vertex {
	return Rotate(v, Vertex{}, f.angle)
}

// inner returns the lower and the upper inner vertex.
func (f frame) inner() (lower, upper int) {
	return f.order[1], f.order[2]
}

// extremes returns the vertices at the minimal and at the maximal rotated y;
// two of them share an extreme when an edge is parallel to the sites' line.
func (f frame) extremes() (bottom, top []int) {
	minY, maxY := f.local[f.order[0]].Y, f.local[f.order[3]].Y
	for _, i := range f.order {
		if math.Abs(f.local[i].Y-minY) < tieEps {
			bottom = append(bottom, i)
		}
	}
	for _, i := range f.order {
		if math.Abs(f.local[i].Y-maxY) < tieEps {
			top = append(top, i)
		}
	}
	// по возрастанию x
	byX := func(s []int) {
		sort.SliceStable(s, func(i, j int) bool { return f.local[s[i]].X < f.local[s[j]].X })
	}
	byX(bottom)
	byX(top)
	return bottom, top
}

// hasParallelEdge reports an edge parallel to the sites' line.
func (f frame) hasParallelEdge() bool {
	for i := 0; i < 4; i++ {
		if math.Abs(f.local[i].Y-f.local[mod4(i+1)].Y) < tieEps {
			return true
		}
	}
	return false
}

// level cuts the gauge with the horizontal line at height y and returns the
// leftmost and rightmost boundary points of the cut.
func (f frame) level(y float64) (left, right Vertex, ok bool) {
	var pts []Vertex
	for i := 0; i < 4; i++ {
		a, b := f.local[i], f.local[mod4(i+1)]
		switch {
		case math.Abs(a.Y-y) < tieEps && math.Abs(b.Y-y) < tieEps:
			pts = append(pts, a, b)
		case math.Abs(a.Y-y) < tieEps:
			pts = append(pts, a)
		case math.Abs(b.Y-y) < tieEps:
			pts = append(pts, b)
		case (a.Y < y) != (b.Y < y):
			t := (y - a.Y) / (b.Y - a.Y)
			pts = append(pts, Vertex{a.X + t*(b.X-a.X), y})
		}
	}
	if len(pts) == 0 {
		return Vertex{}, Vertex{}, false
	}
	left, right = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < left.X {
			left = p
		}
		if p.X > right.X {
			right = p
		}
	}
	return left, right, right.X-left.X > tieEps
}

func mod4(i int) int {
	return ((i % 4) + 4) % 4
}
