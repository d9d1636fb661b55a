// Package clip implements windowed clipping of world-space geometry against an
// axis-aligned rectangle.
package clip

import "github.com/inamate/vecedit/internal/geom"

// Window is an axis-aligned clip rectangle. XMin <= XMax and YMin <= YMax
// hold for every Window produced by NewWindow, Normalize or Translate.
type Window struct {
	XMin float64 `json:"xMin"`
	YMin float64 `json:"yMin"`
	XMax float64 `json:"xMax"`
	YMax float64 `json:"yMax"`
}

// NewWindow builds a normalized window from two opposite corners.
func NewWindow(a, b geom.Point) Window {
	return Window{XMin: a.X, YMin: a.Y, XMax: b.X, YMax: b.Y}.Normalize()
}

// Normalize swaps bounds so that min <= max on both axes.
func (w Window) Normalize() Window {
	if w.XMin > w.XMax {
		w.XMin, w.XMax = w.XMax, w.XMin
	}
	if w.YMin > w.YMax {
		w.YMin, w.YMax = w.YMax, w.YMin
	}
	return w
}

// Translate moves all four bounds by (dx, dy).
func (w Window) Translate(dx, dy float64) Window {
	w.XMin += dx
	w.XMax += dx
	w.YMin += dy
	w.YMax += dy
	return w
}

// Width returns XMax - XMin.
func (w Window) Width() float64 { return w.XMax - w.XMin }

// Height returns YMax - YMin.
func (w Window) Height() float64 { return w.YMax - w.YMin }

// Empty reports whether w has zero area. Nothing is visible through an empty window.
func (w Window) Empty() bool { return w.Width() <= 0 || w.Height() <= 0 }

// Min returns the lower-left corner.
func (w Window) Min() geom.Point { return geom.Pt(w.XMin, w.YMin) }

// Corners returns the window outline counter-clockwise from the lower-left corner.
func (w Window) Corners() []geom.Point {
	return []geom.Point{
		{X: w.XMin, Y: w.YMin},
		{X: w.XMax, Y: w.YMin},
		{X: w.XMax, Y: w.YMax},
		{X: w.XMin, Y: w.YMax},
	}
}

// ContainsPoint reports whether p lies inside w, edges included.
func ContainsPoint(p geom.Point, w Window) bool {
	return p.X >= w.XMin && p.X <= w.XMax && p.Y >= w.YMin && p.Y <= w.YMax
}
