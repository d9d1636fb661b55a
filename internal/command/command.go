// Package command defines the validated control commands that mutate a scene.
// Transports decode raw payloads with Decode or FromPayload; only values that
// pass validation ever reach the engine.
package command

import "github.com/inamate/vecedit/internal/scene"

type Type string

const (
	TypeTransform    Type = "transform"
	TypeDrawSettings Type = "draw_settings"
	TypeDrawMode     Type = "draw_mode"
	TypeClipping     Type = "clipping"
)

// Command is one of Transform, DrawSettings, DrawMode or Clipping.
type Command interface {
	Type() Type
	isCommand()
}

type TransformAction string

const (
	ActionTranslate       TransformAction = "translate"
	ActionRotate          TransformAction = "rotate"
	ActionScale           TransformAction = "scale"
	ActionResetTransforms TransformAction = "reset_transforms"
)

// Transform adjusts the selected object's cumulative transform.
// Only the fields relevant to Action are meaningful.
type Transform struct {
	Action TransformAction
	DX, DY float64 // world units
	Angle  float64 // degrees
	ScaleX float64
	ScaleY float64
}

// DrawSettings overwrites color and/or stroke width, on the selected object
// or on the scene defaults when nothing is selected. Nil fields are left alone.
type DrawSettings struct {
	Color       *scene.Color
	StrokeWidth *float64
}

// DrawMode switches the gesture mode. ClearAll empties the scene and returns
// to idle instead.
type DrawMode struct {
	Mode     scene.Mode
	ClearAll bool
}

type ClippingAction string

const (
	ClipEnable        ClippingAction = "enable"
	ClipDisable       ClippingAction = "disable"
	ClipSetWindowMode ClippingAction = "set_window_mode"
)

// Clipping toggles clipping or starts the clip-window gesture.
type Clipping struct {
	Action ClippingAction
}

func (Transform) Type() Type    { return TypeTransform }
func (DrawSettings) Type() Type { return TypeDrawSettings }
func (DrawMode) Type() Type     { return TypeDrawMode }
func (Clipping) Type() Type     { return TypeClipping }

func (Transform) isCommand()    {}
func (DrawSettings) isCommand() {}
func (DrawMode) isCommand()     {}
func (Clipping) isCommand()     {}
