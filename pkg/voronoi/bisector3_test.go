package voronoi

import (
	"math/rand"
	"testing"

	"github.com/0x0FACED/go-gauge/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	q := loadGauge(t, "square")
	cases := []struct {
		name       string
		a1, a2, a3 Vertex
		want       Class
	}{
		{"midpoint", V(150, 300), V(400, 250), V(275, 275), Interior},
		{"chain end", V(100, 100), V(200, 150), V(400, 400), Exterior},
		{"chain start", V(200, 150), V(400, 400), V(100, 100), Exterior},
		{"top wedge only", V(100, 100), V(400, 300), V(200, 500), Boundary},
		{"bottom wedge only", V(100, 100), V(200, 500), V(400, 300), Boundary},
		{"wedge apex", V(100, 0), V(0, 100), V(0, 0), Boundary},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Classify(q, c.a1, c.a2, c.a3)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)

			// the base pair is unordered
			got, err = Classify(q, c.a2, c.a1, c.a3)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestClassify_ParallelEdge(t *testing.T) {
	q := loadGauge(t, "square")
	a1, a2 := V(0, 0), V(100, 0)
	for a3, want := range map[Vertex]Class{
		V(50, 0):     Boundary,
		V(50, 0.001): Boundary,
		V(300, 0):    Boundary,
		V(-40, 0):    Boundary,
		V(50, 50):    Exterior,
		V(50, -3):    Exterior,
	} {
		got, err := Classify(q, a1, a2, a3)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%v", a3)
	}
}

// pairIndex runs the two-site solver for every pair of sites.
func pairIndex(t *testing.T, q Quad, sites ...Vertex) *PairIndex {
	t.Helper()
	var all []Segment
	for i := 0; i < len(sites); i++ {
		for j := i + 1; j < len(sites); j++ {
			segs, diags := TwoSite(q, sites[i], sites[j], logger.NewNop())
			require.Empty(t, diags)
			all = append(all, segs...)
		}
	}
	return NewPairIndex(all)
}

func TestThreeSite_Crossing(t *testing.T) {
	q := loadGauge(t, "square")
	ix := pairIndex(t, q, siteA, siteB, siteC)
	require.Equal(t, 3, ix.Len())

	for _, order := range [][3]Vertex{
		{siteA, siteB, siteC},
		{siteB, siteA, siteC},
		{siteA, siteC, siteB},
	} {
		segs, diags := ThreeSite(q, order[0], order[1], order[2], ix, logger.NewNop())
		require.Empty(t, diags)

		points := chosenPoints(segs)
		require.Len(t, points, 1, "%v", order)
		p := points[0]
		assert.Equal(t, ChosenVertex, p.Role.Kind)
		assert.True(t, p.IsPoint())
		assertVertex(t, V(200, 300), p.Start)
		assert.InDelta(t, 20, p.Scale, 1e-6)
		assert.Len(t, p.Sites, 3)
		for _, s := range []Vertex{siteA, siteB, siteC} {
			assert.True(t, p.HasSite(s))
			assert.InDelta(t, p.Scale, q.Distance(s, p.Start), 1e-6)
		}

		assert.Len(t, byKind(segs, ConstructionStep), 4)
	}
}

func TestThreeSite_NotBoundary(t *testing.T) {
	q := loadGauge(t, "square")

	a1, a2, a3 := V(150, 300), V(400, 250), V(275, 275)
	segs, diags := ThreeSite(q, a1, a2, a3, pairIndex(t, q, a1, a2, a3), logger.NewNop())
	assert.Empty(t, segs)
	assert.Empty(t, diags)

	a1, a2, a3 = V(100, 100), V(200, 150), V(400, 400)
	segs, diags = ThreeSite(q, a1, a2, a3, pairIndex(t, q, a1, a2, a3), logger.NewNop())
	assert.Empty(t, segs)
	assert.Empty(t, diags)
}

func TestThreeSite_Collinear(t *testing.T) {
	q := loadGauge(t, "square")
	sites := []Vertex{V(0, 0), V(100, 0), V(300, 0)}
	ix := pairIndex(t, q, sites...)

	segs, diags := ThreeSite(q, sites[0], sites[1], sites[2], ix, logger.NewNop())
	require.Empty(t, diags)

	points := chosenPoints(segs)
	require.Len(t, points, 2)
	for _, p := range points {
		assert.Equal(t, ChosenCone, p.Role.Kind)
	}
	diff(t, []Vertex{V(150, 150), V(150, -150)}, []Vertex{points[0].Start, points[1].Start}, vertexComparer)
	assert.InDelta(t, 15, points[0].Scale, 1e-6)

	rays := byKind(segs, ConeRay)
	require.Len(t, rays, 4)
	for _, r := range rays {
		assert.True(t, r.IsRay())
	}
	assert.Empty(t, byKind(segs, ConstructionStep))
}

func TestThreeSite_Overlap(t *testing.T) {
	q := loadGauge(t, "square")
	a1, a2, a3 := V(100, 0), V(0, 100), V(0, 0)
	ix := pairIndex(t, q, a1, a2, a3)

	class, err := Classify(q, a1, a2, a3)
	require.NoError(t, err)
	require.Equal(t, Boundary, class)

	segs, diags := ThreeSite(q, a1, a2, a3, ix, logger.NewNop())
	require.Empty(t, diags)

	points := chosenPoints(segs)
	require.Len(t, points, 1)
	assertVertex(t, V(50, 50), points[0].Start)
	assert.InDelta(t, 5, points[0].Scale, 1e-6)

	overlaps := byKind(segs, Overlap)
	require.NotEmpty(t, overlaps)
	for _, o := range overlaps {
		assert.False(t, o.IsPoint())
		assert.True(t, o.IsRay(), "%v", o)
	}
}

func TestThreeSite_MissingPairs(t *testing.T) {
	q := loadGauge(t, "square")
	log := logger.New()

	segs, diags := ThreeSite(q, siteA, siteB, siteC, NewPairIndex(nil), log)
	assert.Empty(t, segs)
	require.NotEmpty(t, diags)

	kinds := map[DiagnosticKind]bool{}
	for _, d := range diags {
		kinds[d.Kind] = true
		assert.Len(t, d.Sites, 3)
	}
	assert.True(t, kinds[InvariantViolation])
	assert.True(t, kinds[NumericDegeneracy])
	assert.Contains(t, log.Text(), "[b3s]")
}

// Sites of a triple whose vertex is missed when the wedges are built from the
// gauge itself instead of its mirror image.
var (
	skewA = V(39.38, 93.91)
	skewB = V(58.18, 180.55)
	skewC = V(309.13, 488.18)
)

func TestClassify_AsymmetricGauge(t *testing.T) {
	q := loadGauge(t, "quad")
	for _, order := range [][3]Vertex{
		{skewA, skewB, skewC},
		{skewA, skewC, skewB},
		{skewB, skewC, skewA},
	} {
		got, err := Classify(q, order[0], order[1], order[2])
		require.NoError(t, err)
		assert.Equal(t, Boundary, got, "%v", order)
	}
}

func TestThreeSite_AsymmetricGauge(t *testing.T) {
	q := loadGauge(t, "quad")
	ix := pairIndex(t, q, skewA, skewB, skewC)

	segs, diags := ThreeSite(q, skewA, skewB, skewC, ix, logger.NewNop())
	require.Empty(t, diags)

	points := chosenPoints(segs)
	require.Len(t, points, 1)
	assert.Equal(t, ChosenVertex, points[0].Role.Kind)
	assert.InDelta(t, 291.217, points[0].Start.X, 0.01)
	assert.InDelta(t, 322.767, points[0].Start.Y, 0.01)
	assert.InDelta(t, 12.3755, points[0].Scale, 1e-3)
	for _, s := range []Vertex{skewA, skewB, skewC} {
		assert.InDelta(t, points[0].Scale, q.Distance(s, points[0].Start), 1e-6)
	}
}

// distanceSign walks the bisector of a1 and a2 and reports whether a3 is
// nearer (+1), farther (-1) or on both sides (0) of the points on it. ok is
// false when the walk only comes within margin of a tie.
func distanceSign(q Quad, bisector []Segment, a1, a3 Vertex, margin float64) (sign int, ok bool) {
	var pos, neg bool
	for _, s := range bisector {
		if !s.Role.Bisecting() {
			continue
		}
		var pts []Vertex
		if s.IsRay() {
			dir := s.End.Sub(s.Start).Unit()
			pts = append(pts, s.Start)
			for d := 0.25; d < 45000; d *= 1.1 {
				pts = append(pts, s.Start.Add(dir.Mul(d)))
			}
		} else {
			for k := 0; k <= 64; k++ {
				pts = append(pts, s.Start.Add(s.End.Sub(s.Start).Mul(float64(k)/64)))
			}
		}
		for _, p := range pts {
			d := q.Distance(a1, p) - q.Distance(a3, p)
			pos = pos || d > margin
			neg = neg || d < -margin
		}
	}
	switch {
	case pos && neg:
		return 0, true
	case pos:
		return 1, true
	case neg:
		return -1, true
	}
	return 0, false
}

func TestThreeSite_AgreesWithDistanceSign(t *testing.T) {
	want := map[int]Class{0: Boundary, 1: Interior, -1: Exterior}

	for _, name := range []string{"quad", "roof", "square"} {
		t.Run(name, func(t *testing.T) {
			q := loadGauge(t, name)
			rnd := rand.New(rand.NewSource(7))
			checked := 0
			for n := 0; n < 300; n++ {
				var s [3]Vertex
				for i := range s {
					s[i] = V(rnd.Float64()*500, rnd.Float64()*500)
				}
				if IsCollinear(s[0], s[1], s[2], Eps) ||
					Distance(s[0], s[1]) < 1 || Distance(s[0], s[2]) < 1 || Distance(s[1], s[2]) < 1 {
					continue
				}

				ix := pairIndex(t, q, s[0], s[1], s[2])
				sign, ok := distanceSign(q, ix.Pair(s[0], s[1]), s[0], s[2], 1e-3)
				if !ok {
					continue
				}
				checked++

				class, err := Classify(q, s[0], s[1], s[2])
				require.NoError(t, err)
				if !assert.Equal(t, want[sign], class, "%v", s) {
					continue
				}

				segs, diags := ThreeSite(q, s[0], s[1], s[2], ix, logger.NewNop())
				assert.Empty(t, diags, "%v", s)
				points := chosenPoints(segs)
				if class != Boundary {
					assert.Empty(t, points, "%v", s)
					continue
				}
				if assert.NotEmpty(t, points, "%v", s) {
					for _, p := range points {
						for _, site := range s {
							assert.InEpsilon(t, p.Scale, q.Distance(site, p.Start), 1e-3, "%v %v", s, p)
						}
					}
				}
			}
			assert.Greater(t, checked, 250)
		})
	}
}

func TestThreeSite_CoincidentSites(t *testing.T) {
	q := loadGauge(t, "square")
	log := logger.New()

	segs, diags := ThreeSite(q, siteA, siteB, V(100.001, 100), NewPairIndex(nil), log)
	assert.Empty(t, segs)
	require.Len(t, diags, 1)
	assert.Equal(t, Configuration, diags[0].Kind)
	assert.Contains(t, log.Text(), "[b3s] coincident sites")

	_, diags = ThreeSite(Quad{}, siteA, siteB, siteC, NewPairIndex(nil), logger.NewNop())
	require.Len(t, diags, 1)
	assert.Equal(t, Configuration, diags[0].Kind)
}
