package scene

import (
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/typeid"
)

// Object is a drawable primitive. Vertex layout depends on Kind:
//   - point: [p]
//   - line: [p1, p2]
//   - triangle: [a, b, c]
//   - ellipse: [center, (rx, ry)]
//   - rectangle: [corner1, corner2]
type Object struct {
	ID          string         `json:"id"`
	Kind        Kind           `json:"kind"`
	Vertices    []geom.Point   `json:"vertices"`
	Color       Color          `json:"color"`
	StrokeWidth float64        `json:"strokeWidth"`
	Transform   geom.Transform `json:"transform"`
}

// NewObject creates an object with a fresh ID and the identity transform.
func NewObject(kind Kind, vertices []geom.Point, color Color, strokeWidth float64) Object {
	return Object{
		ID:          typeid.NewObjectID(),
		Kind:        kind,
		Vertices:    append([]geom.Point(nil), vertices...),
		Color:       color,
		StrokeWidth: strokeWidth,
		Transform:   geom.Identity(),
	}
}

// NewEllipse creates an ellipse object from its center and radii.
func NewEllipse(center geom.Point, rx, ry float64, color Color, strokeWidth float64) Object {
	return NewObject(KindEllipse, []geom.Point{center, {X: rx, Y: ry}}, color, strokeWidth)
}

// Valid reports whether o has a known kind and the vertex count that kind needs.
func (o Object) Valid() bool {
	n := o.Kind.VertexCount()
	return n > 0 && len(o.Vertices) == n
}

// Clone returns a deep copy of o.
func (o Object) Clone() Object {
	o.Vertices = append([]geom.Point(nil), o.Vertices...)
	return o
}

// Radii returns the untransformed ellipse radii.
func (o Object) Radii() (float64, float64) {
	if o.Kind != KindEllipse || len(o.Vertices) < 2 {
		return 0, 0
	}
	return o.Vertices[1].X, o.Vertices[1].Y
}

// ScaledRadii returns the ellipse radii multiplied by the object's scale.
func (o Object) ScaledRadii() (float64, float64) {
	rx, ry := o.Radii()
	return rx * o.Transform.Scale.X, ry * o.Transform.Scale.Y
}

// Outline returns the object's closed outline in local space: triangle
// corners, the four rectangle corners, or n samples around an ellipse.
// Points and lines return their vertices.
func (o Object) Outline(n int) []geom.Point {
	switch o.Kind {
	case KindRectangle:
		if len(o.Vertices) < 2 {
			return nil
		}
		a, b := o.Vertices[0], o.Vertices[1]
		return []geom.Point{
			{X: a.X, Y: a.Y},
			{X: b.X, Y: a.Y},
			{X: b.X, Y: b.Y},
			{X: a.X, Y: b.Y},
		}
	case KindEllipse:
		if len(o.Vertices) < 2 {
			return nil
		}
		rx, ry := o.Radii()
		return geom.EllipseOutline(o.Vertices[0], rx, ry, n)
	default:
		return append([]geom.Point(nil), o.Vertices...)
	}
}

// World returns the object's vertices mapped through its transform.
// For ellipses only the center is a position; the radii entry is mapped too
// but carries no meaning.
func (o Object) World() []geom.Point {
	return o.Transform.ApplyAll(o.Vertices)
}
