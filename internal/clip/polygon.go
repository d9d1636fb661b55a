package clip

import "github.com/inamate/vecedit/internal/geom"

type edge uint8

const (
	edgeLeft edge = iota
	edgeRight
	edgeBottom
	edgeTop
)

func (e edge) value(w Window) float64 {
	switch e {
	case edgeLeft:
		return w.XMin
	case edgeRight:
		return w.XMax
	case edgeBottom:
		return w.YMin
	default:
		return w.YMax
	}
}

func (e edge) inside(p geom.Point, v float64) bool {
	switch e {
	case edgeLeft:
		return p.X >= v
	case edgeRight:
		return p.X <= v
	case edgeBottom:
		return p.Y >= v
	default:
		return p.Y <= v
	}
}

// intersect returns where from-to crosses the edge line at v. A segment
// parallel to the edge yields the boundary point at from's other coordinate.
func (e edge) intersect(from, to geom.Point, v float64) geom.Point {
	if e == edgeLeft || e == edgeRight {
		dx := to.X - from.X
		if dx == 0 {
			return geom.Pt(v, from.Y)
		}
		t := (v - from.X) / dx
		return geom.Pt(v, from.Y+t*(to.Y-from.Y))
	}
	dy := to.Y - from.Y
	if dy == 0 {
		return geom.Pt(from.X, v)
	}
	t := (v - from.Y) / dy
	return geom.Pt(from.X+t*(to.X-from.X), v)
}

func clipEdge(poly []geom.Point, e edge, v float64) []geom.Point {
	var out []geom.Point
	for i, p1 := range poly {
		p2 := poly[(i+1)%len(poly)]
		in1 := e.inside(p1, v)
		in2 := e.inside(p2, v)
		switch {
		case in1 && in2:
			out = append(out, p2)
		case in1 && !in2:
			out = append(out, e.intersect(p1, p2, v))
		case !in1 && in2:
			out = append(out, e.intersect(p1, p2, v), p2)
		}
	}
	return out
}

// SutherlandHodgman clips a convex polygon against w, edge by edge in the
// order left, right, bottom, top. It returns nil when nothing remains.
func SutherlandHodgman(poly []geom.Point, w Window) []geom.Point {
	if len(poly) == 0 || w.Empty() {
		return nil
	}
	out := make([]geom.Point, len(poly))
	copy(out, poly)

	for _, e := range []edge{edgeLeft, edgeRight, edgeBottom, edgeTop} {
		out = clipEdge(out, e, e.value(w))
		if len(out) == 0 {
			return nil
		}
	}
	return out
}
