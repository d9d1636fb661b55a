package control

import (
	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/geom"
)

// InputEvent converts a wire input payload into an engine event, mapping
// pixel coordinates through vp when the payload asks for it.
func InputEvent(p InputPayload, vp geom.Viewport) engine.InputEvent {
	pt := geom.Pt(p.X, p.Y)
	if p.Pixels {
		pt = vp.ToWorld(p.X, p.Y)
	}
	return engine.InputEvent{Kind: engine.InputKind(p.Event), Point: pt}
}
