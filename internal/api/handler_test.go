package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/vecedit/internal/auth"
	"github.com/inamate/vecedit/internal/control"
	"github.com/inamate/vecedit/internal/engine"
	"github.com/inamate/vecedit/internal/geom"
	"github.com/inamate/vecedit/internal/scene"
)

type testServer struct {
	hub    *control.Hub
	router http.Handler
}

func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()
	e := engine.New(engine.DefaultOptions())
	hub := control.NewHub(e, geom.Viewport{Width: 800, Height: 600})

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		hub.Stop()
		cancel()
	})

	h := NewHandler(hub, []string{"*"})
	return &testServer{hub: hub, router: NewRouter(h, auth.NewService(secret))}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	rec, _ := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestControlRoutes(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		result string
	}{
		{"transform", "/api/transform", `{"type":"transform","action":"rotate","angle":10}`, 200, "success"},
		{"transform missing action", "/api/transform", `{"type":"transform"}`, 400, "error"},
		{"transform missing type", "/api/transform", `{"action":"rotate"}`, 400, "error"},
		{"draw settings", "/api/draw_settings", `{"thickness":3,"color":"#00ff00"}`, 200, "success"},
		{"draw settings missing color", "/api/draw_settings", `{"thickness":3}`, 400, "error"},
		{"draw settings bad color", "/api/draw_settings", `{"thickness":3,"color":"green"}`, 400, "error"},
		{"draw mode", "/api/draw_mode", `{"mode":"line"}`, 200, "success"},
		{"draw mode missing", "/api/draw_mode", `{}`, 400, "error"},
		{"draw mode unknown", "/api/draw_mode", `{"mode":"spiral"}`, 400, "error"},
		{"clipping", "/api/clipping", `{"action":"enable"}`, 200, "success"},
		{"clipping missing", "/api/clipping", `{}`, 400, "error"},
		{"commands", "/api/commands", `{"type":"draw_mode","mode":"clear_all"}`, 200, "success"},
		{"commands unknown type", "/api/commands", `{"type":"teleport"}`, 400, "error"},
		{"not json", "/api/commands", `nope`, 400, "error"},
		{"not an object", "/api/commands", `[1,2]`, 400, "error"},
	}

	s := newTestServer(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.result, resp.Status)
			assert.NotEmpty(t, resp.Message)
			if tt.status == http.StatusOK {
				assert.NotEmpty(t, resp.OperationID)
				assert.Positive(t, resp.Seq)
			}
		})
	}
}

func TestDrawSettingsRouteUpdatesDefaults(t *testing.T) {
	s := newTestServer(t, "")
	s.do(t, http.MethodPost, "/api/draw_settings", `{"thickness":4,"color":"#0000ff"}`)

	snap := s.hub.Engine().Snapshot()
	assert.Equal(t, scene.Color{B: 1}, snap.DefaultColor)
	assert.Equal(t, 4.0, snap.DefaultStrokeWidth)
}

func TestInputDrawsLine(t *testing.T) {
	s := newTestServer(t, "")
	s.do(t, http.MethodPost, "/api/draw_mode", `{"mode":"line"}`)

	rec, resp := s.do(t, http.MethodPost, "/api/input", `{"event":"down","x":0,"y":0,"pixels":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", resp.Status)
	s.do(t, http.MethodPost, "/api/input", `{"event":"down","x":0.5,"y":0.5}`)

	rec, _ = s.do(t, http.MethodGet, "/api/frame", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var frame engine.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frame))
	require.Len(t, frame.Commands, 1)
	assert.Equal(t, engine.OpLine, frame.Commands[0].Op)
	assert.Equal(t, []geom.Point{{X: -1, Y: 1}, {X: 0.5, Y: 0.5}}, frame.Commands[0].Vertices)
}

func TestInputErrors(t *testing.T) {
	s := newTestServer(t, "")
	rec, _ := s.do(t, http.MethodPost, "/api/input", `{"x":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := s.do(t, http.MethodPost, "/api/input", `{"event":"wheel"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestFramePNGRoute(t *testing.T) {
	s := newTestServer(t, "")
	rec, _ := s.do(t, http.MethodGet, "/api/frame.png?width=64&height=48", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestOperationsRoute(t *testing.T) {
	s := newTestServer(t, "")
	s.do(t, http.MethodPost, "/api/clipping", `{"action":"enable"}`)
	s.do(t, http.MethodPost, "/api/clipping", `{"action":"disable"}`)

	rec, _ := s.do(t, http.MethodGet, "/api/operations?since=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Seq        int64               `json:"seq"`
		Operations []control.Operation `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(2), out.Seq)
	require.Len(t, out.Operations, 1)
	assert.Equal(t, "clipping", out.Operations[0].Type)

	rec, _ = s.do(t, http.MethodGet, "/api/operations?since=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, "s3cret")

	rec, _ := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code, "health stays public")

	rec, resp := s.do(t, http.MethodPost, "/api/clipping", `{"action":"enable"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "error", resp.Status)

	token, err := auth.NewService("s3cret").IssueToken("panel", 0)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/clipping", strings.NewReader(`{"action":"enable"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	ops := s.hub.Operations().Since(0)
	require.Len(t, ops, 1)
	assert.Equal(t, "http:panel", ops[0].Source)
}

func TestStoppedHub(t *testing.T) {
	s := newTestServer(t, "")
	s.hub.Stop()
	<-s.hub.Done()

	rec, resp := s.do(t, http.MethodPost, "/api/clipping", `{"action":"enable"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestWebsocket(t *testing.T) {
	s := newTestServer(t, "")
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	read := func() control.Message {
		t.Helper()
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var msg control.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}
	write := func(msg control.Message) {
		t.Helper()
		data, err := json.Marshal(msg)
		require.NoError(t, err)
		require.NoError(t, conn.Write(ctx, websocket.MessageText, data))
	}

	welcome := read()
	require.Equal(t, control.TypeWelcome, welcome.Type)

	write(control.Message{
		Type:      control.TypeCommandSubmit,
		RequestID: "r1",
		Payload:   json.RawMessage(`{"type":"draw_mode","mode":"point"}`),
	})
	write(control.Message{
		Type:      control.TypeInputSubmit,
		RequestID: "r2",
		Payload:   json.RawMessage(`{"event":"down","x":0.25,"y":0.25}`),
	})
	write(control.Message{
		Type:      control.TypeCommandSubmit,
		RequestID: "r3",
		Payload:   json.RawMessage(`{"type":"clipping"}`),
	})

	acks := map[string]string{}
	var last engine.Frame
	for len(acks) < 3 || len(last.Commands) == 0 {
		msg := read()
		switch msg.Type {
		case control.TypeCommandAck, control.TypeCommandNack:
			acks[msg.RequestID] = msg.Type
		case control.TypeFrame:
			require.NoError(t, json.Unmarshal(msg.Payload, &last))
		}
	}
	assert.Equal(t, control.TypeCommandAck, acks["r1"])
	assert.Equal(t, control.TypeCommandAck, acks["r2"])
	assert.Equal(t, control.TypeCommandNack, acks["r3"])

	require.Len(t, last.Commands, 1)
	assert.Equal(t, engine.OpPoint, last.Commands[0].Op)
}
