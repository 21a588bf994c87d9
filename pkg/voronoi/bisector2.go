package voronoi

import (
	"github.com/0x0FACED/go-gauge/pkg/logger"
	"go.uber.org/zap"
)

// TwoSite computes the bisector of p1 and p2 under the gauge q.
//
// The work happens in a frame rotated so that the sites lie on a horizontal
// line, a1 left of a2. The main segment (h, g) joins the meeting points of
// the gauge copies growing from a1 and a2 at the heights of the two inner
// vertices; above h and below g the bisector continues along rays in the
// directions of the extreme vertices. When an extreme is an edge parallel to
// the sites' line, its two rays bound a cone, a two-dimensional part of the
// bisector.
//
// Coincident sites or a zero Quad yield a single Configuration diagnostic.
func TwoSite(q Quad, p1, p2 Vertex, log *logger.ZapLogger) ([]Segment, []Diagnostic) {
	angle := AlignAngle(p1, p2)
	a1, a2 := LeftRightOf(p1, p2, angle)
	diag := newDiagnostics(log, "[b2s]", a1, a2)

	if !diag.distinct(q) {
		return nil, diag.list
	}

	f := q.frame(angle)
	s := &twoSite{f: f, sites: []Vertex{a1, a2}, a1: f.to(a1), a2: f.to(a2)}

	lower, upper := f.inner()
	diag.debug("inner vertices", zap.Int("lower", lower), zap.Int("upper", upper), zap.Float64("angle", angle))

	// h - на уровне верхней внутренней вершины, g - на уровне нижней
	h, ok := s.meet(f.local[upper].Y, diag)
	if !ok {
		return nil, diag.list
	}
	g, ok := s.meet(f.local[lower].Y, diag)
	if !ok {
		return nil, diag.list
	}
	s.emit(h, g, Role{Kind: Chosen})

	bottom, top := f.extremes()
	if n := len(bottom) + len(top); n < 2 || n > 4 {
		diag.violation("unexpected number of non-inner vertices", zap.Int("n", n))
		return nil, diag.list
	}
	s.rays(h, top, 1)
	s.rays(g, bottom, 2)

	diag.debug("bisector ready", zap.Int("segments", len(s.out)),
		zap.Int("top", len(top)), zap.Int("bottom", len(bottom)))
	return s.out, diag.list
}

type twoSite struct {
	f     frame
	sites []Vertex
	// sites in the rotated frame
	a1, a2 Vertex
	out    []Segment
}

// emit stores a segment given in frame coordinates.
func (s *twoSite) emit(start, end Vertex, role Role) {
	s.out = append(s.out, Segment{
		Start: s.f.from(start),
		End:   s.f.from(end),
		Sites: s.sites,
		Role:  role,
	})
}

// meet returns the point at height level (relative to the gauge center) where
// the right side of the copy grown from a1 touches the left side of the copy
// grown from a2. The support rays a1→right and a2→left are recorded as
// construction steps.
func (s *twoSite) meet(level float64, diag *diagnostics) (Vertex, bool) {
	left, right, ok := s.f.level(level)
	if !ok {
		diag.degenerate("gauge has no width at inner level", zap.Float64("level", level))
		return Vertex{}, false
	}

	r1 := Ray(s.a1, right)
	r2 := Ray(s.a2, left)
	s.emit(s.a1, r1, Role{Kind: ConstructionStep})
	s.emit(s.a2, r2, Role{Kind: ConstructionStep})

	if !IsParallel(s.a1, r1, s.a2, r2, parallelEps) {
		if p, ok := SegmentIntersect(s.a1, r1, s.a2, r2); ok {
			return p, true
		}
		diag.log.Warn("[b2s] support rays miss each other, using the algebraic branch",
			zap.Stringer("a1", s.a1), zap.Stringer("a2", s.a2), zap.Float64("level", level))
	}

	// rays are parallel when the level passes through the gauge center:
	// both copies then grow along the sites' line
	scale := (s.a2.X - s.a1.X) / (right.X - left.X)
	return s.a1.Add(right.Mul(scale)), true
}

// rays emits the rays leaving apex towards the extreme vertices idx (sorted by
// rotated x). A pair of rays forms cone number cone.
func (s *twoSite) rays(apex Vertex, idx []int, cone int) {
	if len(idx) == 1 {
		s.emit(apex, Ray(apex, s.f.local[idx[0]]), Role{Kind: Chosen})
		return
	}
	for n, i := range idx {
		s.emit(apex, Ray(apex, s.f.local[i]), Role{
			Kind:       Cone,
			Cone:       cone,
			ChosenSide: n == len(idx)-1,
		})
	}
}
