package engine

import (
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

// hitTest returns the index of the topmost object under p, or scene.NoSelection.
// Objects are tested from last to first so the most recently drawn one wins.
func hitTest(objects []scene.Object, p geom.Point, opts Options) int {
	for i := len(objects) - 1; i >= 0; i-- {
		if hitObject(objects[i], p, opts) {
			return i
		}
	}
	return scene.NoSelection
}

// hitObject tests p against obj's transformed geometry. Lines and triangles
// only hit near a vertex, not along their edges.
func hitObject(obj scene.Object, p geom.Point, opts Options) bool {
	if !obj.Valid() {
		return false
	}
	r2 := opts.HitRadius * opts.HitRadius
	world := obj.World()

	switch obj.Kind {
	case scene.KindPoint, scene.KindLine, scene.KindTriangle:
		for _, v := range world {
			if p.DistSq(v) < r2 {
				return true
			}
		}
		return false

	case scene.KindEllipse:
		rx, ry := obj.ScaledRadii()
		if rx <= 0 || ry <= 0 {
			return false
		}
		c := world[0]
		dx := (p.X - c.X) / rx
		dy := (p.Y - c.Y) / ry
		return dx*dx+dy*dy <= opts.EllipseTolerance*opts.EllipseTolerance

	case scene.KindRectangle:
		lo, hi := geom.Bounds(world[:2])
		return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
	}

	return false
}
