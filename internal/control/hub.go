// Package control serializes every scene mutation through one goroutine and
// fans the resulting frames out to websocket clients.
package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/vecedit/internal/command"
	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/geom"
)

var ErrStopped = errors.New("control hub stopped")

// Result is the outcome of a submission that reached the engine.
type Result struct {
	Operation Operation
	Changed   bool
}

type request struct {
	source string
	cmd    command.Command
	input  *engine.InputEvent
	reply  chan reply
}

type reply struct {
	result Result
	err    error
}

// Hub owns the engine on behalf of every transport. Run must be running for
// submissions to make progress.
type Hub struct {
	engine   *engine.Engine
	viewport geom.Viewport
	ops      *OpLog

	submit     chan request
	register   chan *Client
	unregister chan *Client

	// clients is only touched by the Run goroutine.
	clients map[string]*Client

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewHub(e *engine.Engine, vp geom.Viewport) *Hub {
	return &Hub{
		engine:     e,
		viewport:   vp,
		ops:        NewOpLog(),
		submit:     make(chan request),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Engine() *engine.Engine  { return h.engine }
func (h *Hub) Viewport() geom.Viewport { return h.viewport }
func (h *Hub) Operations() *OpLog      { return h.ops }
func (h *Hub) Done() <-chan struct{}   { return h.done }

// Run applies submissions one at a time until Stop is called or ctx ends.
// Connected clients are closed on exit.
func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		for id, c := range h.clients {
			delete(h.clients, id)
			c.closeSend()
		}
		close(h.done)
	}()

	for {
		select {
		case <-h.quit:
			slog.Info("control hub stopped", "seq", h.ops.Seq())
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case req := <-h.submit:
			res, err := h.apply(req)
			req.reply <- reply{result: res, err: err}
			if err == nil && res.Changed {
				h.broadcastFrame(res.Operation.Seq)
			}
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// Stop makes Run return. Submissions that have not been picked up fail with
// ErrStopped.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// SubmitCommand queues cmd for the engine and waits for its result.
func (h *Hub) SubmitCommand(ctx context.Context, source string, cmd command.Command) (Result, error) {
	if cmd == nil {
		return Result{}, fmt.Errorf("submit command: %w", engine.ErrUnknownCommand)
	}
	return h.do(ctx, request{source: source, cmd: cmd})
}

// SubmitInput queues a pointer event for the engine and waits for its result.
func (h *Hub) SubmitInput(ctx context.Context, source string, ev engine.InputEvent) (Result, error) {
	return h.do(ctx, request{source: source, input: &ev})
}

func (h *Hub) do(ctx context.Context, req request) (Result, error) {
	req.reply = make(chan reply, 1)

	select {
	case h.submit <- req:
	case <-h.quit:
		return Result{}, ErrStopped
	case <-h.done:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r.result, r.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (h *Hub) apply(req request) (Result, error) {
	before := h.engine.Version()

	var typ string
	if req.cmd != nil {
		typ = string(req.cmd.Type())
		if err := h.engine.Apply(req.cmd); err != nil {
			slog.Warn("command rejected", "type", typ, "source", req.source, "error", err)
			return Result{}, err
		}
	} else {
		typ = "input." + string(req.input.Kind)
		if err := h.engine.HandleInput(*req.input); err != nil {
			slog.Warn("input rejected", "event", req.input.Kind, "source", req.source, "error", err)
			return Result{}, err
		}
	}

	op := h.ops.Append(typ, req.source)
	changed := h.engine.Version() != before
	slog.Debug("operation applied", "op", op.ID, "seq", op.Seq, "type", typ, "source", req.source, "changed", changed)
	return Result{Operation: op, Changed: changed}, nil
}

// Register adds a websocket client. It returns ErrStopped once the hub has exited.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrStopped
	}
}

// Unregister removes a client and closes its send queue.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.clients[client.ClientID] = client

	frame, err := json.Marshal(h.engine.Render())
	if err != nil {
		slog.Error("marshal frame", "error", err)
		return
	}
	msg, err := newMessage(TypeWelcome, WelcomePayload{
		ClientID:  client.ClientID,
		ServerSeq: h.ops.Seq(),
		Frame:     frame,
	})
	if err != nil {
		slog.Error("marshal welcome", "error", err)
		return
	}
	client.Send(msg)

	slog.Info("client joined", "client", client.ClientID, "clients", len(h.clients))
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client.ClientID]; !ok {
		return
	}
	delete(h.clients, client.ClientID)
	client.closeSend()

	slog.Info("client left", "client", client.ClientID, "clients", len(h.clients))
}

func (h *Hub) broadcastFrame(seq int64) {
	if len(h.clients) == 0 {
		return
	}
	msg, err := newMessage(TypeFrame, h.engine.Render())
	if err != nil {
		slog.Error("marshal frame", "error", err)
		return
	}
	msg.Seq = seq
	for _, c := range h.clients {
		c.Send(msg)
	}
}
