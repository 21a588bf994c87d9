package voronoi

import "math"

// Side is the answer of SideOfSegment.
type Side int

const (
	OnLine Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case OnLine:
		return "on"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Rotate turns point around pivot by angle radians (counter-clockwise).
func Rotate(point, pivot Vertex, angle float64) Vertex {
	sin, cos := math.Sincos(angle)
	d := point.Sub(pivot)
	return Vertex{
		X: pivot.X + d.X*cos - d.Y*sin,
		Y: pivot.Y + d.X*sin + d.Y*cos,
	}
}

// Angle is the direction of b seen from a, in (-π, π].
func Angle(a, b Vertex) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// AlignAngle is the direction of the line through a and b folded into
// (-π/2, π/2], so it does not depend on the order of a and b.
func AlignAngle(a, b Vertex) float64 {
	angle := Angle(a, b)
	if angle > math.Pi/2 {
		angle -= math.Pi
	} else if angle <= -math.Pi/2 {
		angle += math.Pi
	}
	return angle
}

func Midpoint(a, b Vertex) Vertex {
	return Vertex{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

func Distance(a, b Vertex) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// LeftRightOf orders p and q by their x coordinate after rotating the plane
// by -angle. Ties fall back to the rotated y.
func LeftRightOf(p, q Vertex, angle float64) (left, right Vertex) {
	rp := Rotate(p, Vertex{}, -angle)
	rq := Rotate(q, Vertex{}, -angle)
	switch {
	case rp.X < rq.X:
		return p, q
	case rp.X > rq.X:
		return q, p
	case rp.Y <= rq.Y:
		return p, q
	}
	return q, p
}

// SideOfSegment tells where c lies relative to the segment (a, b) directed
// from its left to its right endpoint (see LeftRightOf). OnLine needs c within
// tolerance of the line and its projection inside the widened span. Any other
// point with a cross product not above 1 counts as Right.
func SideOfSegment(a, b, c Vertex, tolerance float64) Side {
	left, right := LeftRightOf(a, b, AlignAngle(a, b))
	dir := right.Sub(left)
	rel := c.Sub(left)
	cross := dir.Cross(rel)

	length := dir.Len()
	if length == 0 {
		if c.Sub(left).Len() <= tolerance {
			return OnLine
		}
		return Right
	}

	dist := math.Abs(cross) / length
	proj := dir.Dot(rel) / length
	if dist <= tolerance && proj >= -tolerance && proj <= length+tolerance {
		return OnLine
	}
	if cross > 1 {
		return Left
	}
	return Right
}

// IsParallel reports whether (p1, p2) and (q1, q2) point in the same or in
// opposite directions, up to the sine tolerance. Degenerate segments are never
// parallel.
func IsParallel(p1, p2, q1, q2 Vertex, tolerance float64) bool {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	lr, ls := r.Len(), s.Len()
	if lr == 0 || ls == 0 {
		return false
	}
	return math.Abs(r.Cross(s))/(lr*ls) <= tolerance
}

// IsCollinear reports whether c is within tolerance of the line through a and b.
func IsCollinear(a, b, c Vertex, tolerance float64) bool {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return c.Sub(a).Len() <= tolerance
	}
	return math.Abs(d.Cross(c.Sub(a)))/l <= tolerance
}

// onSegment: c within Eps of the segment (a, b).
func onSegment(a, b, c Vertex) bool {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return c.Equal(a)
	}
	rel := c.Sub(a)
	if math.Abs(d.Cross(rel))/l > Eps {
		return false
	}
	proj := d.Dot(rel) / l
	return proj >= -Eps && proj <= l+Eps
}

// SegmentIntersect returns the point shared by segments (p1, p2) and (q1, q2).
// Segments that only touch yield the touching endpoint. Parallel segments that
// do not touch and collinear segments that overlap yield false; use
// SegmentOverlap for the latter.
func SegmentIntersect(p1, p2, q1, q2 Vertex) (Vertex, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)

	// отрезки нулевой длины
	if r.Len() == 0 {
		return p1, onSegment(q1, q2, p1)
	}
	if s.Len() == 0 {
		return q1, onSegment(p1, p2, q1)
	}

	if IsParallel(p1, p2, q1, q2, parallelEps) {
		return touchingEndpoint(p1, p2, q1, q2)
	}

	qp := q1.Sub(p1)
	denom := r.Cross(s)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom

	const tEps = 1e-9
	if t < -tEps || t > 1+tEps || u < -tEps || u > 1+tEps {
		return Vertex{}, false
	}

	switch {
	case math.Abs(t) <= tEps:
		return p1, true
	case math.Abs(t-1) <= tEps:
		return p2, true
	case math.Abs(u) <= tEps:
		return q1, true
	case math.Abs(u-1) <= tEps:
		return q2, true
	}
	return p1.Add(r.Mul(t)), true
}

// touchingEndpoint handles parallel segments: they meet only if collinear and
// sharing exactly one endpoint with no further overlap.
func touchingEndpoint(p1, p2, q1, q2 Vertex) (Vertex, bool) {
	if !IsCollinear(p1, p2, q1, Eps) || !IsCollinear(p1, p2, q2, Eps) {
		return Vertex{}, false
	}
	if _, _, overlap := SegmentOverlap(p1, p2, q1, q2); overlap {
		return Vertex{}, false
	}
	for _, a := range []Vertex{p1, p2} {
		for _, b := range []Vertex{q1, q2} {
			if a.Equal(b) {
				return a, true
			}
		}
	}
	return Vertex{}, false
}

// SegmentOverlap returns the boundary points of the common part of two
// collinear segments. Zero-length inputs, overlaps reduced to a point and
// disjoint segments yield false. The returned points are endpoints of the
// inputs, so far ray ends stay recognisable with FarFrom.
func SegmentOverlap(p1, p2, q1, q2 Vertex) (Vertex, Vertex, bool) {
	if p1.Equal(p2) || q1.Equal(q2) {
		return Vertex{}, Vertex{}, false
	}
	if !IsParallel(p1, p2, q1, q2, parallelEps) {
		return Vertex{}, Vertex{}, false
	}
	if !IsCollinear(p1, p2, q1, Eps) || !IsCollinear(p1, p2, q2, Eps) {
		return Vertex{}, Vertex{}, false
	}

	dir := p2.Sub(p1).Unit()
	proj := func(v Vertex) float64 { return v.Sub(p1).Dot(dir) }

	type bound struct {
		t float64
		v Vertex
	}
	pLo, pHi := bound{0, p1}, bound{proj(p2), p2}
	qLo, qHi := bound{proj(q1), q1}, bound{proj(q2), q2}
	if qLo.t > qHi.t {
		qLo, qHi = qHi, qLo
	}

	lo, hi := pLo, pHi
	if qLo.t > lo.t {
		lo = qLo
	}
	if qHi.t < hi.t {
		hi = qHi
	}
	if hi.t-lo.t <= Eps {
		return Vertex{}, Vertex{}, false
	}
	return lo.v, hi.v, true
}

// Ray returns the far endpoint of the ray leaving apex in direction dir.
func Ray(apex, dir Vertex) Vertex {
	return apex.Add(dir.Unit().Mul(RayLength))
}
