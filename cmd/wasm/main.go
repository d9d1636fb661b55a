//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/vecedit/internal/command"
	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/geom"
)

var (
	eng      *engine.Engine
	viewport = geom.Viewport{Width: 800, Height: 600}
)

func main() {
	eng = engine.New(engine.DefaultOptions())

	// Create the engine API object
	vecedit := js.Global().Get("Object").New()

	// --- Commands (canvas/panel → engine) ---
	vecedit.Set("setViewport", js.FuncOf(setViewport))
	vecedit.Set("pointerDown", js.FuncOf(pointerDown))
	vecedit.Set("pointerUp", js.FuncOf(pointerUp))
	vecedit.Set("pointerMove", js.FuncOf(pointerMove))
	vecedit.Set("secondaryDown", js.FuncOf(secondaryDown))
	vecedit.Set("command", js.FuncOf(applyCommand))
	vecedit.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (canvas ← engine) ---
	vecedit.Set("render", js.FuncOf(render))
	vecedit.Set("hitTest", js.FuncOf(hitTest))
	vecedit.Set("getMode", js.FuncOf(getMode))
	vecedit.Set("getSelected", js.FuncOf(getSelected))
	vecedit.Set("getVersion", js.FuncOf(getVersion))

	// Register on global scope
	js.Global().Set("vecedit", vecedit)

	// Signal that WASM is ready
	js.Global().Set("veceditWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// pixelArg reads canvas pixel coordinates from args[0], args[1].
func pixelArg(args []js.Value) (geom.Point, bool) {
	if len(args) < 2 {
		return geom.Point{}, false
	}
	return viewport.ToWorld(args[0].Float(), args[1].Float()), true
}

// --- Command Handlers ---

func setViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	vp := geom.Viewport{Width: args[0].Int(), Height: args[1].Int()}
	if vp.Valid() {
		viewport = vp
	}
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if p, ok := pixelArg(args); ok {
		eng.PointerDown(p)
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	eng.PointerUp()
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if p, ok := pixelArg(args); ok {
		eng.PointerMove(p)
	}
	return nil
}

func secondaryDown(this js.Value, args []js.Value) interface{} {
	eng.SecondaryDown()
	return nil
}

func applyCommand(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"status": "error", "message": "missing command JSON"})
	}

	cmd, err := command.Decode([]byte(args[0].String()))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"status": "error", "message": err.Error()})
	}
	if err := eng.Apply(cmd); err != nil {
		return js.ValueOf(map[string]interface{}{"status": "error", "message": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"status": "success", "message": string(cmd.Type()) + " applied"})
}

func loadSample(this js.Value, args []js.Value) interface{} {
	eng.Seed()
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	jsonStr, err := eng.Render().JSON()
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(jsonStr)
}

func hitTest(this js.Value, args []js.Value) interface{} {
	p, ok := pixelArg(args)
	if !ok {
		return js.ValueOf(-1)
	}
	return js.ValueOf(eng.HitTest(p))
}

func getMode(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(string(eng.Mode()))
}

func getSelected(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Selected())
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(float64(eng.Version()))
}
