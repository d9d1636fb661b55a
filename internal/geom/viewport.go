package geom

// Viewport maps device pixels onto the fixed [-1,1]x[-1,1] world square.
// Pixel Y grows downward; world Y grows upward.
type Viewport struct {
	Width  int
	Height int
}

// ToWorld converts pixel coordinates to world coordinates.
func (v Viewport) ToWorld(px, py float64) Point {
	return Point{
		X: px/(float64(v.Width)/2.0) - 1.0,
		Y: 1.0 - py/(float64(v.Height)/2.0),
	}
}

// ToPixel converts world coordinates to pixel coordinates.
func (v Viewport) ToPixel(p Point) (float64, float64) {
	return (p.X + 1.0) * float64(v.Width) / 2.0, (1.0 - p.Y) * float64(v.Height) / 2.0
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}
