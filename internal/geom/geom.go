// Package geom holds the world-space primitives shared by the clipper, the
// scene model and the render pass.
package geom

import "math"

// Point is a position in world space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec is a 2D displacement or per-axis factor.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is a directed line segment.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by v.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec {
	return Vec{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistSq returns the squared distance between p and q.
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// ApproxEqual reports whether p and q agree within eps on both axes.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Bounds returns the axis-aligned min and max corners of pts.
// It returns zero points for an empty slice.
func Bounds(pts []Point) (lo, hi Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

// EllipseOutline samples n points on the ellipse with the given center and radii,
// counter-clockwise starting at angle zero.
func EllipseOutline(center Point, rx, ry float64, n int) []Point {
	if n < 3 {
		n = 3
	}
	pts := make([]Point, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{X: center.X + rx*math.Cos(a), Y: center.Y + ry*math.Sin(a)}
	}
	return pts
}

// Loop returns the closed sequence of segments joining pts in order.
func Loop(pts []Point) []Segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]Segment, len(pts))
	for i, p := range pts {
		segs[i] = Segment{A: p, B: pts[(i+1)%len(pts)]}
	}
	return segs
}
