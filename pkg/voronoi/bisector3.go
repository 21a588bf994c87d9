package voronoi

import (
	"math"

	"github.com/0x0FACED/go-gauge/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Class locates the third site relative to the family of gauge circles
// passing through the first two.
type Class int

const (
	// Interior: every such circle contains the site, no bisector point.
	Interior Class = iota + 1
	// Exterior: no such circle reaches the site, no bisector point.
	Exterior
	// Boundary: the site can lie on one of the circles.
	Boundary
)

func (c Class) String() string {
	switch c {
	case Interior:
		return "interior"
	case Exterior:
		return "exterior"
	case Boundary:
		return "boundary"
	}
	return "unknown"
}

// wedges holds the construction used by the general classification, in the
// rotated frame. u and v are the apexes of the support wedges at the top and
// at the bottom vertex of the mirrored gauge; du*/dv* continue the wedge
// sides past a1 and a2.
type wedges struct {
	a1, a2, a3 Vertex
	u, v       Vertex
	du1, du2   Vertex
	dv1, dv2   Vertex
	general    bool
}

// Classify decides the case of the triple (a1, a2, a3) where a1 and a2 form
// the base pair.
func Classify(q Quad, a1, a2, a3 Vertex) (Class, error) {
	angle := AlignAngle(a1, a2)
	a1, a2 = LeftRightOf(a1, a2, angle)
	c, _, err := classify(q.frame(angle), a1, a2, a3)
	return c, err
}

func classify(f frame, a1, a2, a3 Vertex) (Class, wedges, error) {
	w := wedges{a1: f.to(a1), a2: f.to(a2), a3: f.to(a3)}

	if f.hasParallelEdge() {
		// ребро калибра параллельно a1a2: граница - сама прямая a1a2
		far1 := Ray(w.a1, w.a1.Sub(w.a2))
		far2 := Ray(w.a2, w.a2.Sub(w.a1))
		if SideOfSegment(w.a1, w.a2, w.a3, Eps) == OnLine ||
			SideOfSegment(w.a1, far1, w.a3, Eps) == OnLine ||
			SideOfSegment(w.a2, far2, w.a3, Eps) == OnLine {
			return Boundary, w, nil
		}
		return Exterior, w, nil
	}

	// окружности через a1 и a2 - копии отраженного калибра
	g := f.reflected()
	top, bottom := g.order[3], g.order[0]
	tl, tr := g.sides(top)
	bl, br := g.sides(bottom)

	var ok bool
	w.u, ok = apex(w.a1, g.local[top].Sub(g.local[tl]), w.a2, g.local[top].Sub(g.local[tr]))
	if !ok {
		return 0, w, errors.Errorf("top support wedge has no apex")
	}
	w.v, ok = apex(w.a1, g.local[bottom].Sub(g.local[bl]), w.a2, g.local[bottom].Sub(g.local[br]))
	if !ok {
		return 0, w, errors.Errorf("bottom support wedge has no apex")
	}
	w.general = true

	w.du1, w.du2 = Ray(w.a1, w.a1.Sub(w.u)), Ray(w.a2, w.a2.Sub(w.u))
	w.dv1, w.dv2 = Ray(w.a1, w.a1.Sub(w.v)), Ray(w.a2, w.a2.Sub(w.v))

	// середина a1a2 лежит внутри обоих клиньев
	m := Midpoint(w.a1, w.a2)
	inside := func(a, b Vertex, strict bool) bool {
		side := SideOfSegment(a, b, w.a3, Eps)
		if side == OnLine {
			return !strict
		}
		return side == SideOfSegment(a, b, m, Eps)
	}

	inTop := inside(w.u, w.du1, true) && inside(w.u, w.du2, true)
	inBottom := inside(w.v, w.dv1, true) && inside(w.v, w.dv2, true)
	if inTop && inBottom {
		return Interior, w, nil
	}

	if (inside(w.u, w.du1, false) && inside(w.u, w.du2, false)) ||
		(inside(w.v, w.dv1, false) && inside(w.v, w.dv2, false)) {
		return Boundary, w, nil
	}
	return Exterior, w, nil
}

// sides returns the two neighbours of extreme vertex i ordered left, right as
// seen along the edges leaving i (upwards for the bottom vertex, downwards for
// the top one).
func (f frame) sides(i int) (left, right int) {
	n1, n2 := mod4(i+1), mod4(i-1)
	ang := func(n int) float64 { return Angle(f.local[i], f.local[n]) }
	// edges going down have angles in (-π, 0), going up in (0, π);
	// the left one is nearer to π in both cases
	left1 := math.Abs(ang(n1)) > math.Abs(ang(n2))
	if left1 {
		return n1, n2
	}
	return n2, n1
}

// apex intersects the ray from p1 along d1 with the ray from p2 along d2.
func apex(p1, d1, p2, d2 Vertex) (Vertex, bool) {
	return SegmentIntersect(p1, Ray(p1, d1), p2, Ray(p2, d2))
}

// ThreeSite computes the bisector points of p1, p2 and p3 from the two-site
// segments already computed for their pairs.
//
// Coincident sites or a zero Quad yield a single Configuration diagnostic.
func ThreeSite(q Quad, p1, p2, p3 Vertex, ix *PairIndex, log *logger.ZapLogger) ([]Segment, []Diagnostic) {
	angle := AlignAngle(p1, p2)
	a1, a2 := LeftRightOf(p1, p2, angle)
	a3 := p3
	diag := newDiagnostics(log, "[b3s]", a1, a2, a3)
	if !diag.distinct(q) {
		return nil, diag.list
	}

	f := q.frame(angle)
	class, w, err := classify(f, a1, a2, a3)
	if err != nil {
		diag.degenerate(err.Error())
		return nil, diag.list
	}
	diag.debug("classified", zap.Stringer("class", class))

	if class != Boundary {
		return nil, diag.list
	}

	s := &threeSite{
		q:     q,
		sites: []Vertex{a1, a2, a3},
		pairs: [3][2]Vertex{{a1, a2}, {a1, a3}, {a2, a3}},
		ix:    ix,
		diag:  diag,
	}
	if w.general {
		for _, r := range [][2]Vertex{{w.u, w.du1}, {w.u, w.du2}, {w.v, w.dv1}, {w.v, w.dv2}} {
			s.steps = append(s.steps, Segment{Start: f.from(r[0]), End: f.from(r[1]), Sites: s.sites, Role: Role{Kind: ConstructionStep}})
		}
	}

	if IsCollinear(a1, a2, a3, Eps) {
		s.cones()
	} else {
		s.crossings()
	}

	if len(s.points) == 0 {
		diag.degenerate("boundary triple produced no bisector point")
		return nil, diag.list
	}
	return append(s.out, s.steps...), diag.list
}

type threeSite struct {
	q     Quad
	sites []Vertex
	pairs [3][2]Vertex
	ix    *PairIndex
	diag  *diagnostics

	out    []Segment
	steps  []Segment
	points []Vertex
}

type pairSegment struct {
	pair int
	Segment
}

// bisecting collects the bisector segments of the three pairs.
func (s *threeSite) bisecting() []pairSegment {
	var res []pairSegment
	for k, p := range s.pairs {
		for _, seg := range s.ix.Pair(p[0], p[1]) {
			if seg.Role.Bisecting() {
				res = append(res, pairSegment{pair: k, Segment: seg})
			}
		}
	}
	return res
}

// far tells ray ends from finite points. Rays start near the sites, so the
// distance is measured from the first one.
func (s *threeSite) far(p Vertex) bool {
	return p.FarFrom(s.sites[0])
}

// point records a bisector point unless an equal one is already known.
func (s *threeSite) point(p Vertex, kind RoleKind) bool {
	for _, o := range s.points {
		if o.Equal(p) {
			return false
		}
	}
	s.points = append(s.points, p)
	s.out = append(s.out, Segment{
		Start: p,
		End:   p,
		Sites: s.sites,
		Role:  Role{Kind: kind},
		Scale: s.q.Distance(s.sites[0], p),
	})
	return true
}

// crossings handles a non-collinear boundary triple: bisectors of different
// pairs either share a stretch (overlap) or cross in a point.
func (s *threeSite) crossings() {
	segs := s.bisecting()
	if len(segs) == 0 {
		s.diag.violation("no two-site segments for the triple's pairs")
		return
	}
	for i := 0; i < len(segs); i++ {
		for j := i + 1; j < len(segs); j++ {
			a, b := segs[i], segs[j]
			if a.pair == b.pair {
				continue
			}
			if lo, hi, ok := SegmentOverlap(a.Start, a.End, b.Start, b.End); ok {
				// конец на "бесконечности" не годится
				if s.far(lo) {
					lo, hi = hi, lo
				}
				s.out = append(s.out, Segment{Start: lo, End: hi, Sites: s.sites, Role: Role{Kind: Overlap}})
				s.point(lo, ChosenOverlap)
				continue
			}
			if p, ok := SegmentIntersect(a.Start, a.End, b.Start, b.End); ok && !s.far(p) {
				s.point(p, ChosenVertex)
			}
		}
	}
}

type cone struct {
	pair int
	id   int
	rays []Segment
}

// cones handles a collinear boundary triple: the bisector points are where
// the cones of different pairs meet.
func (s *threeSite) cones() {
	var list []*cone
	byKey := map[[2]int]*cone{}
	for k, p := range s.pairs {
		for _, seg := range s.ix.Pair(p[0], p[1]) {
			if seg.Role.Kind != Cone {
				continue
			}
			key := [2]int{k, seg.Role.Cone}
			c, ok := byKey[key]
			if !ok {
				c = &cone{pair: k, id: seg.Role.Cone}
				byKey[key] = c
				list = append(list, c)
			}
			c.rays = append(c.rays, seg)
		}
	}

	var full []*cone
	for _, c := range list {
		if len(c.rays) != 2 {
			s.diag.violation("cone without exactly two rays", zap.Int("pair", c.pair), zap.Int("cone", c.id), zap.Int("rays", len(c.rays)))
			continue
		}
		full = append(full, c)
	}
	if len(full) == 0 {
		s.diag.degenerate("collinear triple without cones")
		return
	}

	for i := 0; i < len(full); i++ {
		for j := i + 1; j < len(full); j++ {
			if full[i].pair == full[j].pair {
				continue
			}
			s.joinCones(full[i], full[j])
		}
	}
}

// joinCones looks for the first finite crossing of a ray of c1 with a ray of c2.
func (s *threeSite) joinCones(c1, c2 *cone) {
	for _, r1 := range c1.rays {
		for _, r2 := range c2.rays {
			p, ok := SegmentIntersect(r1.Start, r1.End, r2.Start, r2.End)
			if !ok || s.far(p) {
				continue
			}
			if s.point(p, ChosenCone) {
				s.out = append(s.out,
					Segment{Start: p, End: r1.End, Sites: s.sites, Role: Role{Kind: ConeRay}},
					Segment{Start: p, End: r2.End, Sites: s.sites, Role: Role{Kind: ConeRay}},
				)
			}
			return
		}
	}
}
