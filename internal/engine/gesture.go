package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/inamate/vecedit/internal/clip"
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

// InputKind is a render-surface input event type.
type InputKind string

const (
	InputPrimaryDown   InputKind = "down"
	InputPrimaryUp     InputKind = "up"
	InputMove          InputKind = "move"
	InputSecondaryDown InputKind = "secondary_down"
)

// InputEvent is a pointer event with its position already in world space.
type InputEvent struct {
	Kind  InputKind  `json:"event"`
	Point geom.Point `json:"point"`
}

// HandleInput routes ev to the matching pointer handler.
func (e *Engine) HandleInput(ev InputEvent) error {
	switch ev.Kind {
	case InputPrimaryDown:
		e.PointerDown(ev.Point)
	case InputPrimaryUp:
		e.PointerUp()
	case InputMove:
		e.PointerMove(ev.Point)
	case InputSecondaryDown:
		e.SecondaryDown()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInput, ev.Kind)
	}
	return nil
}

// SetMode enters a gesture mode, dropping pending points, the selection and
// any drag in progress.
func (e *Engine) SetMode(m scene.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enterMode(m)
}

func (e *Engine) enterMode(m scene.Mode) {
	e.scene.EnterMode(m)
	e.drag = dragState{}
	e.touch()
}

// PointerDown handles a primary-button press at world point p.
func (e *Engine) PointerDown(p geom.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !p.IsFinite() {
		slog.Warn("ignoring non-finite pointer position", "x", p.X, "y", p.Y)
		return
	}

	if e.scene.Mode == scene.ModeIdle {
		e.selectOrDrag(p)
		return
	}
	e.collect(p)
}

// PointerUp handles a primary-button release.
func (e *Engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag.active {
		e.drag = dragState{}
		e.touch()
		slog.Info("clip window drag ended", "window", e.scene.Clip)
	}
}

// PointerMove handles pointer motion. It only has an effect while the clip
// window is being dragged: the window's lower-left corner follows p minus the
// grab offset, keeping its size.
func (e *Engine) PointerMove(p geom.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.drag.active || !p.IsFinite() {
		return
	}

	w := e.scene.Clip
	newMin := geom.Pt(p.X-e.drag.offset.X, p.Y-e.drag.offset.Y)
	delta := newMin.Sub(w.Min())
	e.scene.Clip = w.Translate(delta.X, delta.Y)
	e.touch()
}

// SecondaryDown clears every object, the pending points and the selection.
// The gesture mode is kept.
func (e *Engine) SecondaryDown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scene.Clear()
	e.drag = dragState{}
	e.touch()
	slog.Info("scene cleared")
}

func (e *Engine) selectOrDrag(p geom.Point) {
	s := e.scene
	s.Selected = scene.NoSelection

	if s.ClipEnabled && clip.ContainsPoint(p, s.Clip) {
		e.drag = dragState{active: true, offset: p.Sub(s.Clip.Min())}
		e.touch()
		slog.Info("clip window drag started", "x", p.X, "y", p.Y)
		return
	}

	if i := hitTest(s.Objects, p, e.opts); i != scene.NoSelection {
		s.Select(i)
		slog.Info("object selected", "index", i, "id", s.Objects[i].ID, "kind", s.Objects[i].Kind)
	} else {
		slog.Debug("no object selected", "x", p.X, "y", p.Y)
	}
	e.touch()
}

func (e *Engine) collect(p geom.Point) {
	s := e.scene
	s.Pending = append(s.Pending, p)
	e.touch()

	if len(s.Pending) < s.Mode.Required() {
		return
	}

	pts := s.Pending
	s.Pending = nil

	if s.Mode == scene.ModeClipWindow {
		s.Clip = clip.NewWindow(pts[0], pts[1])
		s.Mode = scene.ModeIdle
		slog.Info("clip window set", "window", s.Clip)
		return
	}

	kind, ok := s.Mode.Kind()
	if !ok {
		return
	}

	var obj scene.Object
	if kind == scene.KindEllipse {
		center := pts[0]
		rx := math.Max(math.Abs(pts[1].X-center.X), e.opts.MinEllipseRadius)
		ry := math.Max(math.Abs(pts[1].Y-center.Y), e.opts.MinEllipseRadius)
		obj = scene.NewEllipse(center, rx, ry, s.DefaultColor, s.DefaultStrokeWidth)
	} else {
		obj = scene.NewObject(kind, pts, s.DefaultColor, s.DefaultStrokeWidth)
	}

	i := s.Append(obj)
	slog.Info("object created", "index", i, "id", obj.ID, "kind", obj.Kind, "vertices", obj.Vertices)
}
