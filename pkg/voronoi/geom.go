package voronoi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Eps is the per-coordinate tolerance of Vertex.Equal.
	Eps = 0.01

	// RayLength is the distance from the apex at which a ray's far endpoint is placed.
	RayLength = 100000.0

	// допуск для сравнения y-координат вершин калибра в повернутой системе
	tieEps = 1e-6

	// sine of the largest angle still treated as parallel
	parallelEps = 1e-9
)

// Vertex is a point of the plane. Two vertices are equal when both coordinates
// differ by less than Eps; the relation is not transitive.
type Vertex struct {
	X float64
	Y float64
}

// V returns the vertex (x, y).
func V(x, y float64) Vertex {
	return Vertex{X: x, Y: y}
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func (v Vertex) Equal(o Vertex) bool {
	return math.Abs(v.X-o.X) < Eps && math.Abs(v.Y-o.Y) < Eps
}

func (v Vertex) Add(o Vertex) Vertex {
	return Vertex{v.X + o.X, v.Y + o.Y}
}

func (v Vertex) Sub(o Vertex) Vertex {
	return Vertex{v.X - o.X, v.Y - o.Y}
}

func (v Vertex) Mul(k float64) Vertex {
	return Vertex{v.X * k, v.Y * k}
}

// Len is the euclidean norm of v taken as a vector.
func (v Vertex) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit returns v scaled to length 1, or the zero vector.
func (v Vertex) Unit() Vertex {
	l := v.Len()
	if l == 0 {
		return Vertex{}
	}
	return Vertex{v.X / l, v.Y / l}
}

func (v Vertex) Cross(o Vertex) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vertex) Dot(o Vertex) float64 {
	return v.X*o.X + v.Y*o.Y
}

// FarFrom reports whether v lies at ray-infinity seen from o, i.e. it could be
// the far endpoint of a ray built by Ray with an apex near o.
func (v Vertex) FarFrom(o Vertex) bool {
	return v.Sub(o).Len() >= RayLength/2
}

// less orders vertices by x, then y.
func (v Vertex) less(o Vertex) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
}

type vertices []Vertex

func (s vertices) Len() int      { return len(s) }
func (s vertices) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

type verticesByXY struct{ vertices }

func (s verticesByXY) Less(i, j int) bool { return s.vertices[i].less(s.vertices[j]) }

// uniqueVertices drops every vertex Equal to an earlier one, keeping order.
func uniqueVertices(in []Vertex) (out []Vertex, dropped []Vertex) {
	for _, v := range in {
		dup := false
		for _, o := range out {
			if v.Equal(o) {
				dup = true
				break
			}
		}
		if dup {
			dropped = append(dropped, v)
			continue
		}
		out = append(out, v)
	}
	return out, dropped
}

// ParseVertices reads whitespace separated "x,y" pairs, the format of svg
// polygon points.
func ParseVertices(s string) ([]Vertex, error) {
	var res []Vertex
	for _, pair := range strings.Fields(s) {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			return nil, errors.Errorf("bad point %q, want x,y", pair)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "point %q", pair)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "point %q", pair)
		}
		res = append(res, Vertex{x, y})
	}
	return res, nil
}
