package scene

import "fmt"

// Kind is the primitive type of a drawable object.
type Kind string

const (
	KindPoint     Kind = "point"
	KindLine      Kind = "line"
	KindTriangle  Kind = "triangle"
	KindEllipse   Kind = "ellipse"
	KindRectangle Kind = "rectangle"
)

// VertexCount returns how many entries Object.Vertices holds for kind k.
func (k Kind) VertexCount() int {
	switch k {
	case KindPoint:
		return 1
	case KindLine, KindEllipse, KindRectangle:
		return 2
	case KindTriangle:
		return 3
	default:
		return 0
	}
}

// Mode is the active input gesture.
type Mode string

const (
	ModeIdle       Mode = "none"
	ModePoint      Mode = "point"
	ModeLine       Mode = "line"
	ModeTriangle   Mode = "triangle"
	ModeEllipse    Mode = "ellipse"
	ModeRectangle  Mode = "rectangle"
	ModeClipWindow Mode = "clip_window"
)

// Required returns how many clicks complete a gesture in mode m.
func (m Mode) Required() int {
	switch m {
	case ModePoint:
		return 1
	case ModeLine, ModeEllipse, ModeRectangle, ModeClipWindow:
		return 2
	case ModeTriangle:
		return 3
	default:
		return 0
	}
}

// Kind returns the object kind a drawing mode produces.
func (m Mode) Kind() (Kind, bool) {
	switch m {
	case ModePoint:
		return KindPoint, true
	case ModeLine:
		return KindLine, true
	case ModeTriangle:
		return KindTriangle, true
	case ModeEllipse:
		return KindEllipse, true
	case ModeRectangle:
		return KindRectangle, true
	default:
		return "", false
	}
}

// ParseMode maps a control-panel mode name to a drawing mode.
// Clip-window mode is entered through the clipping command, not by name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeIdle, ModePoint, ModeLine, ModeTriangle, ModeEllipse, ModeRectangle:
		return m, nil
	default:
		return "", fmt.Errorf("unknown draw mode %q", s)
	}
}
