// Package export turns engine frames into raster images.
package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

var Background = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

const (
	clipOutlineWidth = 2.0
	pendingPointSize = 8.0
	minStrokeWidth   = 1.0
)

// Rasterizer paints frames onto an RGBA image sized to its viewport. Widths
// and point sizes in a frame are in pixels; geometry is in world space.
type Rasterizer struct {
	vp  geom.Viewport
	img *image.RGBA
	ras *vector.Rasterizer
}

func NewRasterizer(vp geom.Viewport) *Rasterizer {
	return &Rasterizer{
		vp:  vp,
		img: image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height)),
		ras: vector.NewRasterizer(vp.Width, vp.Height),
	}
}

func (rs *Rasterizer) Image() *image.RGBA { return rs.img }

// Rasterize paints f over a cleared background: objects back to front with
// their highlights, then the clip-window outline, then pending gesture points.
func Rasterize(f engine.Frame, vp geom.Viewport) *image.RGBA {
	rs := NewRasterizer(vp)
	rs.Paint(f)
	return rs.img
}

func (rs *Rasterizer) Paint(f engine.Frame) {
	draw.Draw(rs.img, rs.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	for _, cmd := range f.Commands {
		rs.command(cmd)
		if h := cmd.Highlight; h != nil {
			rs.polyline(h.Vertices, h.Closed, h.StrokeWidth, h.Color)
		}
	}

	rs.polyline(f.Clip.Corners(), true, clipOutlineWidth, scene.Cyan)

	for _, p := range f.Pending {
		rs.point(p, pendingPointSize, scene.Yellow)
	}
}

func (rs *Rasterizer) command(cmd engine.DrawCommand) {
	switch cmd.Op {
	case engine.OpPoint:
		for _, p := range cmd.Vertices {
			rs.point(p, cmd.StrokeWidth, cmd.Color)
		}
	case engine.OpLine:
		rs.polyline(cmd.Vertices, false, cmd.StrokeWidth, cmd.Color)
	case engine.OpPolygon:
		if cmd.Fill {
			rs.fill(cmd.Vertices, cmd.Color)
		} else {
			rs.polyline(cmd.Vertices, true, cmd.StrokeWidth, cmd.Color)
		}
	case engine.OpSegments:
		for _, s := range cmd.Segments {
			rs.segment(s.A, s.B, cmd.StrokeWidth, cmd.Color)
		}
	}
}

func (rs *Rasterizer) pixel(p geom.Point) (float32, float32) {
	x, y := rs.vp.ToPixel(p)
	return float32(x), float32(y)
}

func (rs *Rasterizer) fill(pts []geom.Point, c scene.Color) {
	if len(pts) < 3 {
		return
	}
	rs.ras.Reset(rs.vp.Width, rs.vp.Height)
	rs.ras.MoveTo(rs.pixel(pts[0]))
	for _, p := range pts[1:] {
		rs.ras.LineTo(rs.pixel(p))
	}
	rs.ras.ClosePath()
	rs.draw(c)
}

// segment strokes a-b as a quad of the given pixel width.
func (rs *Rasterizer) segment(a, b geom.Point, width float64, c scene.Color) {
	ax, ay := rs.vp.ToPixel(a)
	bx, by := rs.vp.ToPixel(b)
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		rs.point(a, width, c)
		return
	}
	half := math.Max(width, minStrokeWidth) / 2
	nx, ny := -dy/length*half, dx/length*half

	rs.ras.Reset(rs.vp.Width, rs.vp.Height)
	rs.ras.MoveTo(float32(ax+nx), float32(ay+ny))
	rs.ras.LineTo(float32(bx+nx), float32(by+ny))
	rs.ras.LineTo(float32(bx-nx), float32(by-ny))
	rs.ras.LineTo(float32(ax-nx), float32(ay-ny))
	rs.ras.ClosePath()
	rs.draw(c)
}

func (rs *Rasterizer) polyline(pts []geom.Point, closed bool, width float64, c scene.Color) {
	for i := 0; i+1 < len(pts); i++ {
		rs.segment(pts[i], pts[i+1], width, c)
	}
	if closed && len(pts) > 2 {
		rs.segment(pts[len(pts)-1], pts[0], width, c)
	}
}

// point draws a square of size pixels centered on p.
func (rs *Rasterizer) point(p geom.Point, size float64, c scene.Color) {
	x, y := rs.vp.ToPixel(p)
	half := math.Max(size, minStrokeWidth) / 2

	rs.ras.Reset(rs.vp.Width, rs.vp.Height)
	rs.ras.MoveTo(float32(x-half), float32(y-half))
	rs.ras.LineTo(float32(x+half), float32(y-half))
	rs.ras.LineTo(float32(x+half), float32(y+half))
	rs.ras.LineTo(float32(x-half), float32(y+half))
	rs.ras.ClosePath()
	rs.draw(c)
}

func (rs *Rasterizer) draw(c scene.Color) {
	r, g, b, a := c.RGBA8()
	rs.ras.DrawOp = draw.Over
	rs.ras.Draw(rs.img, rs.img.Bounds(), image.NewUniform(color.RGBA{R: r, G: g, B: b, A: a}), image.Point{})
}

// EncodePNG rasterizes f and writes it to w as PNG.
func EncodePNG(w io.Writer, f engine.Frame, vp geom.Viewport) error {
	return png.Encode(w, Rasterize(f, vp))
}
