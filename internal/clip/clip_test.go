package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/vecedit/internal/geom"
)

const tol = 1e-9

var unit = Window{XMin: -0.5, YMin: -0.5, XMax: 0.5, YMax: 0.5}

func TestComputeOutcode(t *testing.T) {
	tests := []struct {
		name string
		p    geom.Point
		want Outcode
	}{
		{"inside", geom.Pt(0, 0), Inside},
		{"on edge", geom.Pt(0.5, -0.5), Inside},
		{"left", geom.Pt(-1, 0), Left},
		{"right", geom.Pt(1, 0), Right},
		{"bottom", geom.Pt(0, -1), Bottom},
		{"top", geom.Pt(0, 1), Top},
		{"top left", geom.Pt(-1, 1), Top | Left},
		{"bottom right", geom.Pt(1, -1), Bottom | Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOutcode(tt.p, unit))
		})
	}
}

func TestCohenSutherlandInside(t *testing.T) {
	p := geom.Pt(0.1, -0.2)
	seg, ok := CohenSutherland(p, p, unit)
	require.True(t, ok)
	assert.Equal(t, p, seg.A)
	assert.Equal(t, p, seg.B)

	a, b := geom.Pt(-0.4, -0.3), geom.Pt(0.2, 0.45)
	seg, ok = CohenSutherland(a, b, unit)
	require.True(t, ok)
	assert.Equal(t, geom.Segment{A: a, B: b}, seg)
}

func TestCohenSutherlandReject(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 geom.Point
	}{
		{"both right", geom.Pt(0.6, -0.2), geom.Pt(0.9, 0.3)},
		{"both above", geom.Pt(-0.9, 0.8), geom.Pt(0.9, 0.6)},
		{"degenerate outside", geom.Pt(2, 2), geom.Pt(2, 2)},
		{"corner miss", geom.Pt(0, 1), geom.Pt(1, 0.6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := CohenSutherland(tt.p1, tt.p2, unit)
			assert.False(t, ok)
		})
	}
}

func TestCohenSutherlandClips(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 geom.Point
		want   geom.Segment
	}{
		{"horizontal through", geom.Pt(-1, 0), geom.Pt(1, 0), geom.Segment{A: geom.Pt(-0.5, 0), B: geom.Pt(0.5, 0)}},
		{"vertical through", geom.Pt(0.1, 1), geom.Pt(0.1, -1), geom.Segment{A: geom.Pt(0.1, 0.5), B: geom.Pt(0.1, -0.5)}},
		{"diagonal", geom.Pt(-1, -1), geom.Pt(1, 1), geom.Segment{A: geom.Pt(-0.5, -0.5), B: geom.Pt(0.5, 0.5)}},
		{"one end inside", geom.Pt(0, 0), geom.Pt(0, 2), geom.Segment{A: geom.Pt(0, 0), B: geom.Pt(0, 0.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, ok := CohenSutherland(tt.p1, tt.p2, unit)
			require.True(t, ok)
			assert.True(t, seg.A.ApproxEqual(tt.want.A, tol), "A = %v", seg.A)
			assert.True(t, seg.B.ApproxEqual(tt.want.B, tol), "B = %v", seg.B)
		})
	}
}

func TestCohenSutherlandEmptyWindow(t *testing.T) {
	w := Window{XMin: 0.2, YMin: 0.2, XMax: 0.2, YMax: 0.2}
	_, ok := CohenSutherland(geom.Pt(-1, 0.2), geom.Pt(1, 0.2), w)
	assert.False(t, ok)
}

func TestSutherlandHodgmanInside(t *testing.T) {
	tri := []geom.Point{geom.Pt(-0.2, -0.2), geom.Pt(0.3, -0.1), geom.Pt(0, 0.4)}
	out := SutherlandHodgman(tri, unit)
	require.Len(t, out, 3)
	// the walk emits p2 for each edge, so the output starts at the second vertex
	assert.Equal(t, []geom.Point{tri[1], tri[2], tri[0]}, out)
}

func TestSutherlandHodgmanOutside(t *testing.T) {
	tri := []geom.Point{geom.Pt(0.6, 0.6), geom.Pt(0.9, 0.6), geom.Pt(0.8, 0.9)}
	assert.Empty(t, SutherlandHodgman(tri, unit))
	assert.Empty(t, SutherlandHodgman(nil, unit))
}

func TestSutherlandHodgmanMatchingRectangle(t *testing.T) {
	out := SutherlandHodgman(unit.Corners(), unit)
	require.Len(t, out, 4)
	for _, c := range unit.Corners() {
		found := false
		for _, p := range out {
			if p.ApproxEqual(c, tol) {
				found = true
			}
		}
		assert.True(t, found, "corner %v missing from %v", c, out)
	}
}

func TestSutherlandHodgmanPartial(t *testing.T) {
	// a square straddling the right edge is cut back to the window
	sq := []geom.Point{geom.Pt(0, -0.25), geom.Pt(1, -0.25), geom.Pt(1, 0.25), geom.Pt(0, 0.25)}
	out := SutherlandHodgman(sq, unit)
	require.NotEmpty(t, out)
	lo, hi := geom.Bounds(out)
	assert.InDelta(t, 0, lo.X, tol)
	assert.InDelta(t, 0.5, hi.X, tol)
	assert.InDelta(t, -0.25, lo.Y, tol)
	assert.InDelta(t, 0.25, hi.Y, tol)
	for _, p := range out {
		assert.True(t, ContainsPoint(p, unit), "%v outside window", p)
	}
}

func TestSutherlandHodgmanTriangleCorner(t *testing.T) {
	// big triangle covering the window clips to the window itself
	tri := []geom.Point{geom.Pt(-5, -5), geom.Pt(5, -5), geom.Pt(0, 5)}
	out := SutherlandHodgman(tri, Window{XMin: -0.1, YMin: -0.1, XMax: 0.1, YMax: 0.1})
	require.Len(t, out, 4)
	lo, hi := geom.Bounds(out)
	assert.True(t, lo.ApproxEqual(geom.Pt(-0.1, -0.1), tol))
	assert.True(t, hi.ApproxEqual(geom.Pt(0.1, 0.1), tol))
}

func TestWindowNormalizeAndTranslate(t *testing.T) {
	w := NewWindow(geom.Pt(0.5, -0.2), geom.Pt(-0.3, 0.4))
	assert.Equal(t, Window{XMin: -0.3, YMin: -0.2, XMax: 0.5, YMax: 0.4}, w)

	moved := w.Translate(0.25, -0.5)
	assert.InDelta(t, w.Width(), moved.Width(), tol)
	assert.InDelta(t, w.Height(), moved.Height(), tol)
	assert.InDelta(t, -0.05, moved.XMin, tol)
	assert.InDelta(t, -0.7, moved.YMin, tol)

	assert.True(t, Window{}.Empty())
	assert.False(t, unit.Empty())
	assert.True(t, ContainsPoint(geom.Pt(-0.5, 0.5), unit))
	assert.False(t, ContainsPoint(geom.Pt(-0.51, 0), unit))
}

func TestSegments(t *testing.T) {
	segs := []geom.Segment{
		{A: geom.Pt(-1, 0), B: geom.Pt(1, 0)},
		{A: geom.Pt(0.7, 0.7), B: geom.Pt(0.9, 0.9)},
	}
	out := Segments(segs, unit)
	require.Len(t, out, 1)
	assert.True(t, out[0].A.ApproxEqual(geom.Pt(-0.5, 0), tol))
}
