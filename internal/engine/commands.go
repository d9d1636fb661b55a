package engine

import (
	"encoding/json"

	"github.com/inamate/vecedit/internal/clip"
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

// Op is the primitive a rasterizer should emit for a DrawCommand.
type Op string

const (
	OpPoint    Op = "point"    // one vertex, StrokeWidth is the point size
	OpLine     Op = "line"     // two vertices
	OpPolygon  Op = "polygon"  // closed vertex loop, filled when Fill is set
	OpSegments Op = "segments" // independent segments (clipped ellipse outline)
	OpNone     Op = "none"     // clipped away entirely
)

// DrawCommand is the render output for one object. All geometry is in world
// space, after the object's transform and, when enabled, clipping.
type DrawCommand struct {
	Op          Op             `json:"op"`
	ObjectID    string         `json:"objectId"`
	Index       int            `json:"index"`
	Kind        scene.Kind     `json:"kind"`
	Transform   []float64      `json:"transform"` // [a, b, c, d, e, f] of the object's transform
	Vertices    []geom.Point   `json:"vertices,omitempty"`
	Segments    []geom.Segment `json:"segments,omitempty"`
	Fill        bool           `json:"fill,omitempty"`
	Color       scene.Color    `json:"color"`
	StrokeWidth float64        `json:"strokeWidth"`
	Highlight   *Highlight     `json:"highlight,omitempty"`
}

// Highlight is the selection overlay drawn over a selected object.
type Highlight struct {
	Vertices    []geom.Point `json:"vertices"`
	Closed      bool         `json:"closed"`
	Color       scene.Color  `json:"color"`
	StrokeWidth float64      `json:"strokeWidth"`
}

// Frame is one complete render pass over the scene.
type Frame struct {
	Version     uint64        `json:"version"`
	Commands    []DrawCommand `json:"commands"`
	Clip        clip.Window   `json:"clip"`
	ClipEnabled bool          `json:"clipEnabled"`
	Mode        scene.Mode    `json:"mode"`
	Selected    int           `json:"selected"`
	Pending     []geom.Point  `json:"pending,omitempty"`
}

const highlightWidth = 3.0

// Render compiles the scene into draw commands in painter's order (back to
// front). It holds the engine lock for the whole pass.
func (e *Engine) Render() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.scene
	f := Frame{
		Version:     e.version,
		Commands:    make([]DrawCommand, 0, len(s.Objects)),
		Clip:        s.Clip,
		ClipEnabled: s.ClipEnabled,
		Mode:        s.Mode,
		Selected:    s.Selected,
		Pending:     append([]geom.Point(nil), s.Pending...),
	}

	for i, obj := range s.Objects {
		cmd := compileObject(obj, s.Clip, s.ClipEnabled, e.opts)
		cmd.Index = i
		if i == s.Selected {
			cmd.Highlight = compileHighlight(obj, e.opts)
		}
		f.Commands = append(f.Commands, cmd)
	}

	return f
}

// compileObject generates the draw command for one object.
func compileObject(obj scene.Object, w clip.Window, clipping bool, opts Options) DrawCommand {
	cmd := DrawCommand{
		ObjectID:    obj.ID,
		Kind:        obj.Kind,
		Transform:   obj.Transform.Matrix().ToSlice(),
		Color:       obj.Color,
		StrokeWidth: obj.StrokeWidth,
	}
	if !obj.Valid() {
		return hidden(cmd)
	}
	t := obj.Transform

	switch obj.Kind {
	case scene.KindPoint:
		cmd.Op = OpPoint
		cmd.Vertices = t.ApplyAll(obj.Vertices[:1])
		if clipping && (w.Empty() || !clip.ContainsPoint(cmd.Vertices[0], w)) {
			return hidden(cmd)
		}

	case scene.KindLine:
		cmd.Op = OpLine
		world := t.ApplyAll(obj.Vertices[:2])
		if clipping {
			seg, ok := clip.CohenSutherland(world[0], world[1], w)
			if !ok {
				return hidden(cmd)
			}
			world = []geom.Point{seg.A, seg.B}
		}
		cmd.Vertices = world

	case scene.KindTriangle, scene.KindRectangle:
		cmd.Op = OpPolygon
		cmd.Fill = true
		world := t.ApplyAll(obj.Outline(0))
		if clipping {
			world = clip.SutherlandHodgman(world, w)
			if len(world) == 0 {
				return hidden(cmd)
			}
		}
		cmd.Vertices = world

	case scene.KindEllipse:
		if !clipping {
			cmd.Op = OpPolygon
			cmd.Fill = true
			cmd.Vertices = t.ApplyAll(obj.Outline(opts.EllipseSegments))
			break
		}
		// Clipped ellipses are drawn as an outline around the transformed
		// center with scaled radii; rotation does not reorient the axes here.
		center := t.Apply(obj.Vertices[0])
		rx, ry := obj.ScaledRadii()
		outline := geom.EllipseOutline(center, rx, ry, opts.EllipseSegments)
		segs := clip.Segments(geom.Loop(outline), w)
		if len(segs) == 0 {
			return hidden(cmd)
		}
		cmd.Op = OpSegments
		cmd.Segments = segs

	default:
		return hidden(cmd)
	}

	return cmd
}

func hidden(cmd DrawCommand) DrawCommand {
	cmd.Op = OpNone
	cmd.Vertices = nil
	cmd.Segments = nil
	cmd.Fill = false
	return cmd
}

// compileHighlight builds the selection overlay in world space. It is never clipped.
func compileHighlight(obj scene.Object, opts Options) *Highlight {
	if !obj.Valid() {
		return nil
	}
	h := &Highlight{
		Closed:      true,
		Color:       scene.Yellow,
		StrokeWidth: highlightWidth,
	}
	t := obj.Transform

	switch obj.Kind {
	case scene.KindPoint:
		p := obj.Vertices[0]
		r := opts.HitRadius
		h.Vertices = t.ApplyAll([]geom.Point{
			{X: p.X - r, Y: p.Y - r},
			{X: p.X + r, Y: p.Y - r},
			{X: p.X + r, Y: p.Y + r},
			{X: p.X - r, Y: p.Y + r},
		})
	case scene.KindLine:
		h.Vertices = t.ApplyAll(obj.Vertices[:2])
		h.Closed = false
		h.StrokeWidth = obj.StrokeWidth + 2
	case scene.KindEllipse:
		h.Vertices = t.ApplyAll(obj.Outline(opts.EllipseSegments))
	default:
		h.Vertices = t.ApplyAll(obj.Outline(0))
	}

	return h
}

// JSON serializes the frame.
func (f Frame) JSON() (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}
