package voronoi

import "fmt"

type RoleKind int

const (
	// two-site roles
	Chosen RoleKind = iota + 1
	Hidden
	Cone
	ConstructionStep

	// three-site roles
	ChosenVertex
	ChosenOverlap
	ChosenCone
	Overlap
	ConeRay
)

var roleNames = map[RoleKind]string{
	Chosen:           "chosen",
	Hidden:           "hidden",
	Cone:             "cone",
	ConstructionStep: "step",
	ChosenVertex:     "chosen_vertex",
	ChosenOverlap:    "chosen_overlap",
	ChosenCone:       "chosen_cone",
	Overlap:          "overlap",
	ConeRay:          "cone_ray",
}

func (k RoleKind) String() string {
	if n, ok := roleNames[k]; ok {
		return n
	}
	return fmt.Sprintf("RoleKind(%d)", int(k))
}

// Role tags a segment. Cone is only meaningful for Kind == Cone: it numbers
// the cone within its site pair (1 on the h side, 2 on the g side) and
// ChosenSide marks the ray with the larger rotated x.
type Role struct {
	Kind       RoleKind
	Cone       int
	ChosenSide bool
}

func (r Role) String() string {
	switch r.Kind {
	case Cone:
		side := "hidden"
		if r.ChosenSide {
			side = "chosen"
		}
		return fmt.Sprintf("b2s_cone=%d_%s", r.Cone, side)
	case Chosen, Hidden:
		return "b2s_" + r.Kind.String()
	case ConstructionStep:
		return "step"
	}
	return "b3s_" + r.Kind.String()
}

// Bisecting reports the two-site roles that are part of the bisector itself.
func (r Role) Bisecting() bool {
	return r.Kind == Chosen || r.Kind == Hidden || r.Kind == Cone
}

// IsChosenPoint reports the three-site roles marking a bisector point.
func (r Role) IsChosenPoint() bool {
	return r.Kind == ChosenVertex || r.Kind == ChosenOverlap || r.Kind == ChosenCone
}

// Segment is a piece of a bisector, or a single point when Start equals End.
// It is never modified after a solver publishes it.
type Segment struct {
	Start Vertex
	End   Vertex
	// 2 or 3 sites, order carries no meaning
	Sites []Vertex
	Role  Role
	// minimum gauge scale at which the point is reached from its sites; 0 when unset
	Scale float64
}

func (s Segment) String() string {
	if s.IsPoint() {
		return fmt.Sprintf("%s %v sites=%v", s.Role, s.Start, s.Sites)
	}
	return fmt.Sprintf("%s %v-%v sites=%v", s.Role, s.Start, s.End, s.Sites)
}

func (s Segment) IsPoint() bool {
	return s.Start.Equal(s.End)
}

// IsRay reports a segment whose end lies at ray-infinity from its start.
func (s Segment) IsRay() bool {
	return s.End.FarFrom(s.Start)
}

func (s Segment) HasSite(v Vertex) bool {
	for _, site := range s.Sites {
		if site.Equal(v) {
			return true
		}
	}
	return false
}

// Owns reports whether the segment belongs to exactly the pair {a, b}.
func (s Segment) Owns(a, b Vertex) bool {
	return len(s.Sites) == 2 && s.HasSite(a) && s.HasSite(b)
}

type pairKey struct {
	a, b Vertex
}

func newPairKey(a, b Vertex) pairKey {
	if b.less(a) {
		a, b = b, a
	}
	return pairKey{a, b}
}

// PairIndex groups two-site segments by their owning pair.
type PairIndex struct {
	byPair map[pairKey][]Segment
}

func NewPairIndex(segments []Segment) *PairIndex {
	ix := &PairIndex{byPair: make(map[pairKey][]Segment)}
	for _, s := range segments {
		if len(s.Sites) != 2 {
			continue
		}
		k := newPairKey(s.Sites[0], s.Sites[1])
		ix.byPair[k] = append(ix.byPair[k], s)
	}
	return ix
}

// Pair returns the segments owned by {a, b}. Sites are matched exactly first;
// the tolerance match is the slow path for callers holding nearby copies.
func (ix *PairIndex) Pair(a, b Vertex) []Segment {
	if segs, ok := ix.byPair[newPairKey(a, b)]; ok {
		return segs
	}
	for k, segs := range ix.byPair {
		if (k.a.Equal(a) && k.b.Equal(b)) || (k.a.Equal(b) && k.b.Equal(a)) {
			return segs
		}
	}
	return nil
}

func (ix *PairIndex) Len() int {
	return len(ix.byPair)
}
