package voronoi

import (
	"embed"
	"math"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// Gauge fixtures are svg files holding a single polygon, available by name
// without extension.

//go:embed fixtures
var fixtures embed.FS

func loadGauge(t *testing.T, name string) Quad {
	t.Helper()
	f, err := fixtures.Open("fixtures/" + name + ".svg")
	require.NoError(t, err)
	defer f.Close()

	root, err := svgparser.Parse(f, true)
	require.NoError(t, err)
	polygons := root.FindAll("polygon")
	require.Len(t, polygons, 1, "fixture %q", name)

	vs, err := ParseVertices(polygons[0].Attributes["points"])
	require.NoError(t, err)
	q, err := NewQuad(vs...)
	require.NoError(t, err)
	return q
}

var vertexComparer = cmp.Comparer(func(a, b Vertex) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
})

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertVertex(t *testing.T, want, got Vertex) {
	t.Helper()
	if math.Abs(want.X-got.X) > 1e-6 || math.Abs(want.Y-got.Y) > 1e-6 {
		t.Errorf("want %v, got %v", want, got)
	}
}

func byKind(segs []Segment, kind RoleKind) []Segment {
	var res []Segment
	for _, s := range segs {
		if s.Role.Kind == kind {
			res = append(res, s)
		}
	}
	return res
}

func chosenPoints(segs []Segment) []Segment {
	var res []Segment
	for _, s := range segs {
		if s.Role.IsChosenPoint() {
			res = append(res, s)
		}
	}
	return res
}

// samples returns finite points along a bisector piece: its ends, its middle,
// and for rays a few points at growing distance from the apex.
func samples(s Segment) []Vertex {
	if !s.IsRay() {
		return []Vertex{s.Start, s.End, Midpoint(s.Start, s.End)}
	}
	dir := s.End.Sub(s.Start).Unit()
	return []Vertex{s.Start, s.Start.Add(dir.Mul(10)), s.Start.Add(dir.Mul(250)), s.Start.Add(dir.Mul(1000))}
}
