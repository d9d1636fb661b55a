package engine

import (
	"fmt"
	"log/slog"

	"github.com/inamate/vecedit/internal/command"
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

// Apply executes a validated command against the scene.
//
// Transforms with nothing selected are a no-op, and draw settings with nothing
// selected change the defaults for future objects; neither is an error. The
// only error is a command value Apply does not know.
func (e *Engine) Apply(cmd command.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch c := cmd.(type) {
	case command.Transform:
		e.applyTransform(c)
	case command.DrawSettings:
		e.applyDrawSettings(c)
	case command.DrawMode:
		e.applyDrawMode(c)
	case command.Clipping:
		e.applyClipping(c)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return nil
}

func (e *Engine) applyTransform(c command.Transform) {
	obj := e.scene.SelectedObject()
	if obj == nil {
		slog.Info("no object selected for transform", "action", c.Action)
		return
	}

	switch c.Action {
	case command.ActionTranslate:
		obj.Transform = obj.Transform.Translated(c.DX, c.DY)
	case command.ActionRotate:
		obj.Transform = obj.Transform.Rotated(c.Angle)
	case command.ActionScale:
		obj.Transform = obj.Transform.Scaled(c.ScaleX, c.ScaleY)
	case command.ActionResetTransforms:
		obj.Transform = geom.Identity()
	default:
		slog.Warn("unknown transform action", "action", c.Action)
		return
	}

	e.touch()
	slog.Info("transform applied", "action", c.Action, "index", e.scene.Selected, "transform", obj.Transform)
}

func (e *Engine) applyDrawSettings(c command.DrawSettings) {
	if obj := e.scene.SelectedObject(); obj != nil {
		if c.Color != nil {
			obj.Color = *c.Color
		}
		if c.StrokeWidth != nil {
			obj.StrokeWidth = *c.StrokeWidth
		}
		e.touch()
		slog.Info("object style updated", "index", e.scene.Selected, "color", obj.Color.Hex(), "strokeWidth", obj.StrokeWidth)
		return
	}

	if c.Color != nil {
		e.scene.DefaultColor = *c.Color
	}
	if c.StrokeWidth != nil {
		e.scene.DefaultStrokeWidth = *c.StrokeWidth
	}
	e.touch()
	slog.Info("default style updated", "color", e.scene.DefaultColor.Hex(), "strokeWidth", e.scene.DefaultStrokeWidth)
}

func (e *Engine) applyDrawMode(c command.DrawMode) {
	if c.ClearAll {
		e.scene.Clear()
		e.enterMode(scene.ModeIdle)
		slog.Info("scene cleared")
		return
	}
	m := c.Mode
	if m == "" {
		m = scene.ModeIdle
	}
	e.enterMode(m)
	slog.Info("draw mode set", "mode", m)
}

func (e *Engine) applyClipping(c command.Clipping) {
	switch c.Action {
	case command.ClipEnable:
		e.scene.ClipEnabled = true
		slog.Info("clipping enabled")
	case command.ClipDisable:
		e.scene.ClipEnabled = false
		e.drag = dragState{}
		slog.Info("clipping disabled")
	case command.ClipSetWindowMode:
		e.enterMode(scene.ModeClipWindow)
		slog.Info("clip window mode entered")
		return
	default:
		slog.Warn("unknown clipping action", "action", c.Action)
		return
	}
	e.touch()
}
