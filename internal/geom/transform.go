package geom

import "math"

// Transform is the cumulative per-object transform record.
// It is always applied as scale, then rotate about the origin, then translate.
// Rotation is about (0,0), not the object's centroid, so an object away from
// the origin orbits as it rotates.
type Transform struct {
	Translate Vec     `json:"translate"`
	Rotate    float64 `json:"rotate"` // degrees
	Scale     Vec     `json:"scale"`
}

// Identity returns the default transform record.
func Identity() Transform {
	return Transform{Scale: Vec{X: 1, Y: 1}}
}

// Translated returns t with (dx, dy) added to its translation.
func (t Transform) Translated(dx, dy float64) Transform {
	t.Translate.X += dx
	t.Translate.Y += dy
	return t
}

// Rotated returns t with degrees added to its rotation.
func (t Transform) Rotated(degrees float64) Transform {
	t.Rotate += degrees
	return t
}

// Scaled returns t with its scale multiplied component-wise by (sx, sy).
func (t Transform) Scaled(sx, sy float64) Transform {
	t.Scale.X *= sx
	t.Scale.Y *= sy
	return t
}

// IsIdentity reports whether t leaves every point unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Apply maps p through t.
func (t Transform) Apply(p Point) Point {
	x := p.X * t.Scale.X
	y := p.Y * t.Scale.Y

	if t.Rotate != 0 {
		rad := t.Rotate * math.Pi / 180.0
		cos := math.Cos(rad)
		sin := math.Sin(rad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	return Point{X: x + t.Translate.X, Y: y + t.Translate.Y}
}

// ApplyAll maps every point in pts through t into a new slice.
func (t Transform) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}

// Matrix returns the affine matrix equivalent to Apply: T * R * S.
func (t Transform) Matrix() Matrix2D {
	return TranslateMatrix(t.Translate.X, t.Translate.Y).
		Multiply(RotateMatrix(t.Rotate)).
		Multiply(ScaleMatrix(t.Scale.X, t.Scale.Y))
}

// ApplyTransform maps p through t.
func ApplyTransform(p Point, t Transform) Point {
	return t.Apply(p)
}
