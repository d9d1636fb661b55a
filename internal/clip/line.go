package clip

import "github.com/inamate/vecedit/internal/geom"

// Outcode classifies a point against the four window edges.
type Outcode uint8

const (
	Inside Outcode = 0
	Left   Outcode = 1
	Right  Outcode = 2
	Bottom Outcode = 4
	Top    Outcode = 8
)

// maxClipSteps caps the clip loop. Each step clears at least one bit of one
// endpoint's outcode, so 8 is never reached for finite input.
const maxClipSteps = 8

// ComputeOutcode returns the region code of p relative to w.
func ComputeOutcode(p geom.Point, w Window) Outcode {
	code := Inside
	if p.X < w.XMin {
		code |= Left
	} else if p.X > w.XMax {
		code |= Right
	}
	if p.Y < w.YMin {
		code |= Bottom
	} else if p.Y > w.YMax {
		code |= Top
	}
	return code
}

// CohenSutherland clips the segment p1-p2 against w. It returns the visible
// part and true, or false when nothing of the segment is inside.
func CohenSutherland(p1, p2 geom.Point, w Window) (geom.Segment, bool) {
	if w.Empty() {
		return geom.Segment{}, false
	}
	code1 := ComputeOutcode(p1, w)
	code2 := ComputeOutcode(p2, w)

	for range maxClipSteps {
		if code1 == Inside && code2 == Inside {
			return geom.Segment{A: p1, B: p2}, true
		}
		if code1&code2 != 0 {
			return geom.Segment{}, false
		}

		out := code1
		if out == Inside {
			out = code2
		}

		var p geom.Point
		switch {
		case out&Top != 0:
			dy := p2.Y - p1.Y
			if dy == 0 {
				return geom.Segment{}, false
			}
			p = geom.Pt(p1.X+(p2.X-p1.X)*(w.YMax-p1.Y)/dy, w.YMax)
		case out&Bottom != 0:
			dy := p2.Y - p1.Y
			if dy == 0 {
				return geom.Segment{}, false
			}
			p = geom.Pt(p1.X+(p2.X-p1.X)*(w.YMin-p1.Y)/dy, w.YMin)
		case out&Right != 0:
			dx := p2.X - p1.X
			if dx == 0 {
				return geom.Segment{}, false
			}
			p = geom.Pt(w.XMax, p1.Y+(p2.Y-p1.Y)*(w.XMax-p1.X)/dx)
		default: // Left
			dx := p2.X - p1.X
			if dx == 0 {
				return geom.Segment{}, false
			}
			p = geom.Pt(w.XMin, p1.Y+(p2.Y-p1.Y)*(w.XMin-p1.X)/dx)
		}

		if out == code1 {
			p1 = p
			code1 = ComputeOutcode(p1, w)
		} else {
			p2 = p
			code2 = ComputeOutcode(p2, w)
		}
	}

	return geom.Segment{}, false
}

// Segments clips each segment independently and keeps the visible parts.
func Segments(segs []geom.Segment, w Window) []geom.Segment {
	var out []geom.Segment
	for _, s := range segs {
		if c, ok := CohenSutherland(s.A, s.B, w); ok {
			out = append(out, c)
		}
	}
	return out
}
