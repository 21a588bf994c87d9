package voronoi

import "math"

// Bounding Box
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

// Create new Bounding Box
func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

// BoundsOf returns the box around the sites and every finite segment end,
// grown by pad on each side.
func BoundsOf(res *Result, pad float64) BoundingBox {
	b := BoundingBox{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	add := func(v Vertex) {
		b.Xl = math.Min(b.Xl, v.X)
		b.Xr = math.Max(b.Xr, v.X)
		b.Yt = math.Min(b.Yt, v.Y)
		b.Yb = math.Max(b.Yb, v.Y)
	}
	for _, s := range res.Sites {
		add(s)
	}
	for _, segs := range [][]Segment{res.TwoSite, res.ThreeSite} {
		for _, s := range segs {
			if s.Role.Kind == ConstructionStep {
				continue
			}
			add(s.Start)
			if !s.IsRay() {
				add(s.End)
			}
		}
	}
	if math.IsInf(b.Xl, 0) {
		return BoundingBox{}
	}
	return BoundingBox{b.Xl - pad, b.Xr + pad, b.Yt - pad, b.Yb + pad}
}

func (b BoundingBox) Width() float64 {
	return b.Xr - b.Xl
}

func (b BoundingBox) Height() float64 {
	return b.Yb - b.Yt
}

// Clip cuts s to the box (Liang-Barsky). Segments outside the box, and points
// outside it, yield false.
func (b BoundingBox) Clip(s Segment) (Segment, bool) {
	ax, ay := s.Start.X, s.Start.Y
	dx := s.End.X - ax
	dy := s.End.Y - ay
	t0, t1 := 0.0, 1.0

	// каждая сторона: p*t <= q
	for _, side := range [4][2]float64{
		{-dx, ax - b.Xl}, // left
		{dx, b.Xr - ax},  // right
		{-dy, ay - b.Yt}, // top
		{dy, b.Yb - ay},  // bottom
	} {
		p, q := side[0], side[1]
		if p == 0 {
			if q < 0 {
				return Segment{}, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return Segment{}, false
			} else if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return Segment{}, false
			} else if r < t1 {
				t1 = r
			}
		}
	}

	out := s
	if t0 > 0 {
		out.Start = Vertex{ax + t0*dx, ay + t0*dy}
	}
	if t1 < 1 {
		out.End = Vertex{ax + t1*dx, ay + t1*dy}
	}
	return out, true
}
