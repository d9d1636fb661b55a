// Package scene is the editor's object model: the ordered drawable objects,
// the clip window, selection and the pending gesture buffer.
package scene

import (
	"github.com/inamate/vecedit/internal/clip"
	"github.com/inamate/vecedit/internal/geom"
)

// NoSelection is the Selected value when nothing is selected.
const NoSelection = -1

// Scene is the mutable editor state. It is not safe for concurrent use; the
// engine serializes access to it.
type Scene struct {
	// Objects in insertion order; later objects draw on top.
	Objects []Object `json:"objects"`

	Clip        clip.Window `json:"clip"`
	ClipEnabled bool        `json:"clipEnabled"`

	// Selected is NoSelection or a valid index into Objects.
	Selected int `json:"selected"`

	Mode    Mode         `json:"mode"`
	Pending []geom.Point `json:"pending"`

	// Applied to objects created while nothing is selected.
	DefaultColor       Color   `json:"defaultColor"`
	DefaultStrokeWidth float64 `json:"defaultStrokeWidth"`
}

// New creates an empty scene in idle mode.
func New(window clip.Window, color Color, strokeWidth float64) *Scene {
	return &Scene{
		Clip:               window.Normalize(),
		Selected:           NoSelection,
		Mode:               ModeIdle,
		DefaultColor:       color,
		DefaultStrokeWidth: strokeWidth,
	}
}

// Append adds o on top of the scene and returns its index.
func (s *Scene) Append(o Object) int {
	s.Objects = append(s.Objects, o)
	return len(s.Objects) - 1
}

// Clear removes every object, the pending gesture points and the selection.
func (s *Scene) Clear() {
	s.Objects = nil
	s.Pending = nil
	s.Selected = NoSelection
}

// Select marks index i as selected. An out-of-range index clears the
// selection and returns false.
func (s *Scene) Select(i int) bool {
	if i < 0 || i >= len(s.Objects) {
		s.Selected = NoSelection
		return false
	}
	s.Selected = i
	return true
}

// SelectedObject returns the selected object, or nil.
func (s *Scene) SelectedObject() *Object {
	if s.Selected < 0 || s.Selected >= len(s.Objects) {
		return nil
	}
	return &s.Objects[s.Selected]
}

// EnterMode switches the gesture mode, dropping pending points and the selection.
func (s *Scene) EnterMode(m Mode) {
	s.Mode = m
	s.Pending = nil
	s.Selected = NoSelection
}

// Clone returns a deep copy of s.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Objects = make([]Object, len(s.Objects))
	for i, o := range s.Objects {
		c.Objects[i] = o.Clone()
	}
	c.Pending = append([]geom.Point(nil), s.Pending...)
	return &c
}
