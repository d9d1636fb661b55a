package engine

import (
	"errors"
	"sync"

	"github.com/inamate/vecedit/internal/clip"
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

// Tuned hit-test and tessellation constants.
const (
	DefaultHitRadius        = 0.03
	DefaultEllipseTolerance = 1.05
	DefaultMinEllipseRadius = 0.01
	DefaultEllipseSegments  = 100
	DefaultStrokeWidth      = 1.0
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownInput   = errors.New("unknown input event")
)

// Options configures an Engine.
type Options struct {
	// Click distance within which a point or vertex counts as hit.
	HitRadius float64
	// Slack on the normalized ellipse equation; 1.05 accepts clicks 5% outside.
	EllipseTolerance float64
	// Floor applied to ellipse radii when the gesture's second click is axis-aligned with the center.
	MinEllipseRadius float64
	// Outline samples per ellipse.
	EllipseSegments int

	ClipWindow         clip.Window
	DefaultColor       scene.Color
	DefaultStrokeWidth float64
}

// DefaultOptions returns the stock editor settings.
func DefaultOptions() Options {
	return Options{
		HitRadius:          DefaultHitRadius,
		EllipseTolerance:   DefaultEllipseTolerance,
		MinEllipseRadius:   DefaultMinEllipseRadius,
		EllipseSegments:    DefaultEllipseSegments,
		ClipWindow:         clip.Window{XMin: -0.7, YMin: -0.7, XMax: 0.7, YMax: 0.7},
		DefaultColor:       scene.Red,
		DefaultStrokeWidth: DefaultStrokeWidth,
	}
}

// Engine owns the scene and is the only thing that mutates it. Every method
// holds one mutex for its whole duration, so a render pass never observes a
// half-applied command or gesture step.
type Engine struct {
	mu    sync.Mutex
	opts  Options
	scene *scene.Scene
	drag  dragState

	// version increments on every mutation
	version uint64
}

type dragState struct {
	active bool
	offset geom.Vec // click point minus the window's lower-left corner
}

// New creates an engine with an empty scene.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.HitRadius <= 0 {
		opts.HitRadius = def.HitRadius
	}
	if opts.EllipseTolerance <= 0 {
		opts.EllipseTolerance = def.EllipseTolerance
	}
	if opts.MinEllipseRadius <= 0 {
		opts.MinEllipseRadius = def.MinEllipseRadius
	}
	if opts.EllipseSegments < 3 {
		opts.EllipseSegments = def.EllipseSegments
	}
	if opts.DefaultStrokeWidth <= 0 {
		opts.DefaultStrokeWidth = def.DefaultStrokeWidth
	}

	return &Engine{
		opts:  opts,
		scene: scene.New(opts.ClipWindow, opts.DefaultColor, opts.DefaultStrokeWidth),
	}
}

// Options returns the engine's effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// Seed appends the built-in demo drawing.
func (e *Engine) Seed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene.Seed()
	e.touch()
}

// Snapshot returns a deep copy of the current scene.
func (e *Engine) Snapshot() *scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Clone()
}

// Version returns a counter that changes whenever the scene changes.
func (e *Engine) Version() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// Mode returns the active gesture mode.
func (e *Engine) Mode() scene.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Mode
}

// Selected returns the selected object index or scene.NoSelection.
func (e *Engine) Selected() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Selected
}

// Dragging reports whether a clip-window drag is in progress.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drag.active
}

// HitTest returns the index of the topmost object under p, or scene.NoSelection.
// It does not change the selection.
func (e *Engine) HitTest(p geom.Point) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return hitTest(e.scene.Objects, p, e.opts)
}

func (e *Engine) touch() {
	e.version++
}
