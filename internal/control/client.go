package control

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/vecedit/internal/command"
	"github.com/inamate/vecedit/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	submitWait = 5 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	ClientID string
	Subject  string

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, clientID, subject string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		ClientID: clientID,
		Subject:  subject,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			c.nack("", err)
			continue
		}

		if err := c.handleMessage(ctx, &msg); errors.Is(err, ErrStopped) {
			return
		}
	}
}

func (c *Client) handleMessage(ctx context.Context, msg *Message) error {
	var (
		res Result
		err error
	)

	submitCtx, cancel := context.WithTimeout(ctx, submitWait)
	defer cancel()

	switch msg.Type {
	case TypeCommandSubmit:
		var cmd command.Command
		cmd, err = command.Decode(msg.Payload)
		if err == nil {
			res, err = c.hub.SubmitCommand(submitCtx, c.source(), cmd)
		}
	case TypeInputSubmit:
		var ev engine.InputEvent
		ev, err = c.decodeInput(msg.Payload)
		if err == nil {
			res, err = c.hub.SubmitInput(submitCtx, c.source(), ev)
		}
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", c.ClientID)
		c.sendError(msg.RequestID, "unknown message type: "+msg.Type)
		return nil
	}

	if err != nil {
		c.nack(msg.RequestID, err)
		return err
	}

	ack, merr := newMessage(TypeCommandAck, AckPayload{
		OperationID:     res.Operation.ID,
		ServerSeq:       res.Operation.Seq,
		ServerTimestamp: res.Operation.Timestamp,
	})
	if merr != nil {
		slog.Error("marshal ack", "error", merr)
		return nil
	}
	ack.RequestID = msg.RequestID
	ack.Seq = res.Operation.Seq
	c.Send(ack)
	return nil
}

func (c *Client) decodeInput(data json.RawMessage) (engine.InputEvent, error) {
	var p InputPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return engine.InputEvent{}, err
	}
	return InputEvent(p, c.hub.Viewport()), nil
}

func (c *Client) source() string {
	return "ws:" + c.ClientID
}

func (c *Client) nack(requestID string, reason error) {
	msg, err := newMessage(TypeCommandNack, NackPayload{Reason: reason.Error()})
	if err != nil {
		slog.Error("marshal nack", "error", err)
		return
	}
	msg.RequestID = requestID
	c.Send(msg)
}

func (c *Client) sendError(requestID, reason string) {
	msg, err := newMessage(TypeError, NackPayload{Reason: reason})
	if err != nil {
		return
	}
	msg.RequestID = requestID
	c.Send(msg)
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues msg for the write pump. Messages are dropped when the queue is
// full or the client has been removed.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
