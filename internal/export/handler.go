package export

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/geom"
)

const maxDimension = 4096

// FrameSource produces the current frame.
type FrameSource interface {
	Render() engine.Frame
}

type Handler struct {
	source   FrameSource
	viewport geom.Viewport
}

func NewHandler(source FrameSource, viewport geom.Viewport) *Handler {
	return &Handler{source: source, viewport: viewport}
}

// FramePNG renders the current frame as a PNG. The width and height query
// parameters override the configured viewport.
func (h *Handler) FramePNG(w http.ResponseWriter, r *http.Request) {
	vp := h.viewport
	for _, dim := range []struct {
		name string
		dst  *int
	}{{"width", &vp.Width}, {"height", &vp.Height}} {
		raw := r.URL.Query().Get(dim.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxDimension {
			http.Error(w, "invalid "+dim.name+": must be 1-"+strconv.Itoa(maxDimension), http.StatusBadRequest)
			return
		}
		*dim.dst = n
	}
	if !vp.Valid() {
		http.Error(w, "invalid viewport", http.StatusInternalServerError)
		return
	}

	frame := h.source.Render()

	var buf bytes.Buffer
	if err := EncodePNG(&buf, frame, vp); err != nil {
		slog.Error("encode png", "error", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())

	slog.Debug("frame exported", "version", frame.Version, "width", vp.Width, "height", vp.Height, "bytes", buf.Len())
}
