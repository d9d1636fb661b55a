// Package api exposes the control panel and render surface over HTTP and
// websockets. Every mutation is submitted through the control hub.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/inamate/vecedit/internal/auth"
	"github.com/inamate/vecedit/internal/command"
	"github.com/inamate/vecedit/internal/control"
	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/export"
)

const (
	maxBodySize   = 64 << 10
	submitTimeout = 5 * time.Second
)

type Handler struct {
	hub     *control.Hub
	png     *export.Handler
	origins []string
}

func NewHandler(hub *control.Hub, origins []string) *Handler {
	return &Handler{
		hub:     hub,
		png:     export.NewHandler(hub.Engine(), hub.Viewport()),
		origins: origins,
	}
}

type response struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	OperationID string `json:"operationId,omitempty"`
	Seq         int64  `json:"seq,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "seq": h.hub.Operations().Seq()})
}

// Transform forwards a transform command. Requires type and action.
func (h *Handler) Transform(w http.ResponseWriter, r *http.Request) {
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	if !fields.has("type", "action") {
		writeError(w, http.StatusBadRequest, "incomplete transform data")
		return
	}
	h.submitPayload(w, r, fields, "")
}

// DrawSettings forwards color and thickness. Both are required on this route.
func (h *Handler) DrawSettings(w http.ResponseWriter, r *http.Request) {
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	if !fields.has("thickness", "color") {
		writeError(w, http.StatusBadRequest, "incomplete draw settings")
		return
	}
	h.submitPayload(w, r, fields, command.TypeDrawSettings)
}

func (h *Handler) DrawMode(w http.ResponseWriter, r *http.Request) {
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	if !fields.has("mode") {
		writeError(w, http.StatusBadRequest, "draw mode not specified")
		return
	}
	h.submitPayload(w, r, fields, command.TypeDrawMode)
}

func (h *Handler) Clipping(w http.ResponseWriter, r *http.Request) {
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	if !fields.has("action") {
		writeError(w, http.StatusBadRequest, "clipping action not specified")
		return
	}
	h.submitPayload(w, r, fields, command.TypeClipping)
}

// Commands accepts any tagged command payload.
func (h *Handler) Commands(w http.ResponseWriter, r *http.Request) {
	fields, ok := readFields(w, r)
	if !ok {
		return
	}
	h.submitPayload(w, r, fields, "")
}

// Input feeds a pointer event to the engine. Coordinates are world units
// unless "pixels" is true, in which case they map through the viewport.
func (h *Handler) Input(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var p control.InputPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Event == "" {
		writeError(w, http.StatusBadRequest, "input event not specified")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	res, err := h.hub.SubmitInput(ctx, source(r), control.InputEvent(p, h.hub.Viewport()))
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status:      "success",
		Message:     "input applied",
		OperationID: res.Operation.ID,
		Seq:         res.Operation.Seq,
	})
}

func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.hub.Engine().Render())
}

func (h *Handler) FramePNG(w http.ResponseWriter, r *http.Request) {
	h.png.FramePNG(w, r)
}

// Operations lists the retained op log after the "since" sequence number.
func (h *Handler) Operations(w http.ResponseWriter, r *http.Request) {
	since, err := queryInt(r, "since")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid since")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"seq":        h.hub.Operations().Seq(),
		"operations": h.hub.Operations().Since(since),
	})
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := control.NewClient(h.hub, conn, clientID, auth.SubjectFromContext(r.Context()))

	if err := h.hub.Register(client); err != nil {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func (h *Handler) submitPayload(w http.ResponseWriter, r *http.Request, fields fieldSet, typ command.Type) {
	var p command.Payload
	if err := json.Unmarshal(fields.raw, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if typ != "" {
		p.Type = string(typ)
	}

	cmd, err := command.FromPayload(p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	res, err := h.hub.SubmitCommand(ctx, source(r), cmd)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response{
		Status:      "success",
		Message:     string(cmd.Type()) + " applied",
		OperationID: res.Operation.ID,
		Seq:         res.Operation.Seq,
	})
}

func source(r *http.Request) string {
	if sub := auth.SubjectFromContext(r.Context()); sub != "" {
		return "http:" + sub
	}
	return "http"
}

func writeSubmitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, control.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, "editor is shutting down")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timed out waiting for the editor")
	case errors.Is(err, engine.ErrUnknownInput), errors.Is(err, engine.ErrUnknownCommand):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
