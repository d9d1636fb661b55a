package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/inamate/vecedit/internal/scene"
)

var (
	ErrMalformed   = errors.New("malformed command")
	ErrUnknownType = errors.New("unknown command type")
)

// TranslateUnit converts control-panel translate deltas to world units:
// the panel sends hundredths of a world unit.
const TranslateUnit = 100.0

// ModeClearAll is the draw_mode value that empties the scene.
const ModeClearAll = "clear_all"

// Payload is the wire shape of a command as sent by the control panel.
type Payload struct {
	Type      string   `json:"type"`
	Action    string   `json:"action,omitempty"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	Angle     *float64 `json:"angle,omitempty"`
	ScaleX    *float64 `json:"scale_x,omitempty"`
	ScaleY    *float64 `json:"scale_y,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Mode      string   `json:"mode,omitempty"`
}

// Decode parses and validates a JSON command.
func Decode(data []byte) (Command, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromPayload(p)
}

// FromPayload validates p and converts it to a Command.
func FromPayload(p Payload) (Command, error) {
	switch Type(p.Type) {
	case TypeTransform:
		return transformFromPayload(p)
	case TypeDrawSettings:
		return drawSettingsFromPayload(p)
	case TypeDrawMode:
		return drawModeFromPayload(p)
	case TypeClipping:
		return clippingFromPayload(p)
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, p.Type)
	}
}

func transformFromPayload(p Payload) (Command, error) {
	switch TransformAction(p.Action) {
	case ActionTranslate:
		x, err := number(p.X, 0, "x")
		if err != nil {
			return nil, err
		}
		y, err := number(p.Y, 0, "y")
		if err != nil {
			return nil, err
		}
		return Transform{Action: ActionTranslate, DX: x / TranslateUnit, DY: y / TranslateUnit}, nil
	case ActionRotate:
		angle, err := number(p.Angle, 0, "angle")
		if err != nil {
			return nil, err
		}
		return Transform{Action: ActionRotate, Angle: angle}, nil
	case ActionScale:
		sx, err := number(p.ScaleX, 1, "scale_x")
		if err != nil {
			return nil, err
		}
		sy, err := number(p.ScaleY, 1, "scale_y")
		if err != nil {
			return nil, err
		}
		return Transform{Action: ActionScale, ScaleX: sx, ScaleY: sy}, nil
	case ActionResetTransforms:
		return Transform{Action: ActionResetTransforms}, nil
	case "":
		return nil, fmt.Errorf("%w: transform requires an action", ErrMalformed)
	default:
		return nil, fmt.Errorf("%w: unknown transform action %q", ErrMalformed, p.Action)
	}
}

func drawSettingsFromPayload(p Payload) (Command, error) {
	if p.Color == nil && p.Thickness == nil {
		return nil, fmt.Errorf("%w: draw_settings requires color or thickness", ErrMalformed)
	}

	var cmd DrawSettings
	if p.Thickness != nil {
		w := *p.Thickness
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("%w: thickness must be positive, got %v", ErrMalformed, w)
		}
		cmd.StrokeWidth = &w
	}
	if p.Color != nil {
		c, err := scene.ParseHexColor(*p.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		cmd.Color = &c
	}
	return cmd, nil
}

func drawModeFromPayload(p Payload) (Command, error) {
	if p.Mode == "" {
		return nil, fmt.Errorf("%w: draw_mode requires a mode", ErrMalformed)
	}
	if p.Mode == ModeClearAll {
		return DrawMode{Mode: scene.ModeIdle, ClearAll: true}, nil
	}
	m, err := scene.ParseMode(p.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return DrawMode{Mode: m}, nil
}

func clippingFromPayload(p Payload) (Command, error) {
	switch a := ClippingAction(p.Action); a {
	case ClipEnable, ClipDisable, ClipSetWindowMode:
		return Clipping{Action: a}, nil
	case "":
		return nil, fmt.Errorf("%w: clipping requires an action", ErrMalformed)
	default:
		return nil, fmt.Errorf("%w: unknown clipping action %q", ErrMalformed, p.Action)
	}
}

func number(v *float64, def float64, field string) (float64, error) {
	if v == nil {
		return def, nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, fmt.Errorf("%w: %s is not a finite number", ErrMalformed, field)
	}
	return *v, nil
}
