package scene

import "github.com/inamate/vecedit/internal/geom"

// Seed appends a small demo drawing: one object of every kind, a couple of
// them transformed so clipping and hit testing have something to work on.
func (s *Scene) Seed() {
	blue := Color{R: 0.2, G: 0.4, B: 1}
	green := Color{R: 0.1, G: 0.8, B: 0.3}

	s.Append(NewObject(KindRectangle, []geom.Point{{X: -0.9, Y: -0.6}, {X: -0.3, Y: -0.1}}, blue, 1))
	s.Append(NewEllipse(geom.Pt(0.4, 0.4), 0.35, 0.2, green, 1))

	tri := NewObject(KindTriangle, []geom.Point{{X: -0.2, Y: 0.1}, {X: 0.5, Y: 0.1}, {X: 0.1, Y: 0.8}}, Red, 1)
	tri.Transform = tri.Transform.Scaled(1.2, 1.2).Rotated(-15)
	s.Append(tri)

	line := NewObject(KindLine, []geom.Point{{X: -0.95, Y: 0.9}, {X: 0.95, Y: -0.9}}, Yellow, 3)
	s.Append(line)

	pt := NewObject(KindPoint, []geom.Point{{X: 0.6, Y: -0.5}}, Cyan, 8)
	pt.Transform = pt.Transform.Translated(0.1, 0)
	s.Append(pt)
}
