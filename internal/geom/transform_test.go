package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
}

func TestApplyTransformOrder(t *testing.T) {
	// (1,0) -> scale(2,1) = (2,0) -> rotate 90 = (0,2) -> translate (1,0) = (1,2)
	tr := Transform{Scale: Vec{2, 1}, Rotate: 90, Translate: Vec{1, 0}}
	assertPoint(t, Pt(1, 2), ApplyTransform(Pt(1, 0), tr))
}

func TestApplyTransformCases(t *testing.T) {
	tests := []struct {
		name string
		tr   Transform
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(0.3, -0.4), Pt(0.3, -0.4)},
		{"translate", Identity().Translated(0.5, -0.25), Pt(0.1, 0.1), Pt(0.6, -0.15)},
		{"scale", Identity().Scaled(2, 3), Pt(0.1, 0.1), Pt(0.2, 0.3)},
		{"rotate about origin", Identity().Rotated(180), Pt(0.5, 0), Pt(-0.5, 0)},
		{"rotate then translate", Identity().Rotated(90).Translated(1, 1), Pt(1, 0), Pt(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPoint(t, tt.want, tt.tr.Apply(tt.in))
		})
	}
}

func TestTransformAccumulates(t *testing.T) {
	tr := Identity().
		Translated(0.1, 0.2).Translated(0.1, -0.1).
		Rotated(30).Rotated(15).
		Scaled(2, 2).Scaled(0.5, 3)

	assert.InDelta(t, 0.2, tr.Translate.X, tol)
	assert.InDelta(t, 0.1, tr.Translate.Y, tol)
	assert.InDelta(t, 45, tr.Rotate, tol)
	assert.InDelta(t, 1, tr.Scale.X, tol)
	assert.InDelta(t, 6, tr.Scale.Y, tol)
	assert.False(t, tr.IsIdentity())
	assert.True(t, Identity().IsIdentity())
}

func TestMatrixMatchesApply(t *testing.T) {
	transforms := []Transform{
		Identity(),
		{Scale: Vec{2, 1}, Rotate: 90, Translate: Vec{1, 0}},
		{Scale: Vec{0.5, -1.5}, Rotate: -33, Translate: Vec{-0.2, 0.7}},
	}
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(-0.3, 0.8), Pt(0.9, -0.9)}
	for _, tr := range transforms {
		m := tr.Matrix()
		for _, p := range pts {
			assertPoint(t, tr.Apply(p), m.TransformPoint(p))
		}
	}
	assert.True(t, Identity().Matrix().IsIdentity())
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// multiplication order is the reverse of the logical order
	m := TranslateMatrix(1, 1).Multiply(RotateMatrix(90)).Multiply(ScaleMatrix(2, 2))
	assertPoint(t, Pt(1, 3), m.TransformPoint(Pt(1, 0)))
	assert.Equal(t, []float64{1, 0, 0, 1, 0, 0}, IdentityMatrix().ToSlice())
}

func TestViewportRoundTrip(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	assertPoint(t, Pt(-1, 1), vp.ToWorld(0, 0))
	assertPoint(t, Pt(1, -1), vp.ToWorld(800, 600))
	assertPoint(t, Pt(0, 0), vp.ToWorld(400, 300))

	px, py := vp.ToPixel(Pt(0.5, -0.5))
	assert.InDelta(t, 600, px, tol)
	assert.InDelta(t, 450, py, tol)
	assert.True(t, vp.Valid())
	assert.False(t, Viewport{}.Valid())
}

func TestBoundsAndOutline(t *testing.T) {
	lo, hi := Bounds([]Point{Pt(0.5, -0.2), Pt(-0.1, 0.4), Pt(0.2, 0.9)})
	assertPoint(t, Pt(-0.1, -0.2), lo)
	assertPoint(t, Pt(0.5, 0.9), hi)

	outline := EllipseOutline(Pt(0, 0), 0.5, 0.25, 4)
	assert.Len(t, outline, 4)
	assertPoint(t, Pt(0.5, 0), outline[0])
	assertPoint(t, Pt(0, 0.25), outline[1])

	segs := Loop(outline)
	assert.Len(t, segs, 4)
	assert.Equal(t, outline[0], segs[3].B)
	assert.Nil(t, Loop([]Point{Pt(0, 0)}))
}
