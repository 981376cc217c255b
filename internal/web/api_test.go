package web

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hostbridge/internal/conf"
	"hostbridge/internal/dispatch"
	"hostbridge/internal/errors"
	"hostbridge/internal/netx"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name string
	run  func(ctx context.Context, args dispatch.Args) (any, error)
}

func (c stubCommand) Name() string { return c.name }

func (c stubCommand) Run(ctx context.Context, args dispatch.Args) (any, error) {
	return c.run(ctx, args)
}

func newTestRegistry(t *testing.T) *dispatch.Registry {
	t.Helper()
	reg, err := dispatch.NewRegistry(
		stubCommand{name: "echo", run: func(_ context.Context, args dispatch.Args) (any, error) {
			prompt, err := args.String("prompt")
			if err != nil {
				return nil, err
			}
			if prompt == "" {
				return nil, errors.New().WithMessage(errors.ErrInvalidArgument, "prompt is required")
			}
			return map[string]string{"response": prompt}, nil
		}},
		stubCommand{name: "upstream", run: func(context.Context, dispatch.Args) (any, error) {
			return nil, errors.New().Wrap(errors.ErrInferenceRequest, stderrors.New("connection refused"))
		}},
	)
	require.NoError(t, err)
	return reg
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	reg := newTestRegistry(t)
	mux := http.NewServeMux()
	StartAPI(mux, reg)
	StartWebSocket(mux, reg)
	return mux
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) netx.Result {
	t.Helper()
	var res netx.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestInvokeSuccess(t *testing.T) {
	mux := newTestMux(t)
	req := httptest.NewRequest(http.MethodPost, "/api/invoke/echo", strings.NewReader(`{"prompt":"hello"}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	res := decodeResult(t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, map[string]any{"response": "hello"}, res.Data)
	assert.Empty(t, res.Error)
}

func TestInvokeStatusMapping(t *testing.T) {
	mux := newTestMux(t)
	cases := []struct {
		name   string
		path   string
		body   string
		status int
		err    string
	}{
		{"unknown command", "/api/invoke/nope", "", http.StatusNotFound, "unknown command: nope"},
		{"missing prompt", "/api/invoke/echo", "", http.StatusBadRequest, "prompt is required"},
		{"malformed body", "/api/invoke/echo", "{", http.StatusBadRequest, "Invalid request format"},
		{"trailing garbage", "/api/invoke/echo", `{"prompt":"a"} garbage`, http.StatusBadRequest, "Invalid request format"},
		{"second object", "/api/invoke/echo", `{"prompt":"a"}{"prompt":"b"}`, http.StatusBadRequest, "Invalid request format"},
		{"non-string prompt", "/api/invoke/echo", `{"prompt":["x"]}`, http.StatusBadRequest, "prompt must be a string"},
		{"upstream failure", "/api/invoke/upstream", "", http.StatusBadGateway, "connection refused"},
		{"nested name", "/api/invoke/echo/x", "", http.StatusBadRequest, "Invalid command name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			res := decodeResult(t, rec)
			assert.False(t, res.Success)
			assert.Contains(t, res.Error, tc.err)
			assert.Nil(t, res.Data)
		})
	}
}

func TestInvokeMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoke/echo", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCommandsAndHealth(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/commands", nil))
	res := decodeResult(t, rec)
	assert.Equal(t, []any{"echo", "upstream"}, res.Data)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebSocketInvoke(t *testing.T) {
	srv := httptest.NewServer(newTestMux(t))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(netx.ClientMessage{ID: "1", Command: "echo", Args: map[string]any{"prompt": "hi"}}))
	var reply netx.ServerMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "1", reply.ID)
	assert.Equal(t, "echo", reply.Command)
	assert.True(t, reply.Success)
	assert.Equal(t, map[string]any{"response": "hi"}, reply.Data)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	reply = netx.ServerMessage{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.False(t, reply.Success)
	assert.Equal(t, "invalid message", reply.Error)

	require.NoError(t, conn.WriteJSON(netx.ClientMessage{ID: "2", Command: "upstream"}))
	reply = netx.ServerMessage{}
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "2", reply.ID)
	assert.False(t, reply.Success)
	assert.Equal(t, "Inference request failed: connection refused", reply.Error)
}

func TestArgsFromEvent(t *testing.T) {
	assert.Equal(t, dispatch.Args{}, ArgsFromEvent(nil))
	assert.Equal(t, dispatch.Args{"prompt": "hi"}, ArgsFromEvent([]any{"hi"}))
	assert.Equal(t, dispatch.Args{"prompt": "hi"}, ArgsFromEvent([]any{map[string]any{"prompt": "hi"}}))
	assert.Equal(t, dispatch.Args{"prompt": "nested"}, ArgsFromEvent([]any{[]any{map[string]any{"prompt": "nested"}}}))
	assert.Equal(t, dispatch.Args{}, ArgsFromEvent([]any{42}))
}

func TestResultEvent(t *testing.T) {
	assert.Equal(t, "get_system_info_result", ResultEvent(dispatch.CommandSystemInfo))
}

func TestFrontend(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[Web]\nRootPath = \""+filepath.ToSlash(root)+"\"\n"), 0o600))
	require.NoError(t, conf.LoadConfig(cfgPath))

	mux := http.NewServeMux()
	StartFrontend(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	res := decodeResult(t, rec)
	assert.False(t, res.Success)
	assert.Equal(t, "Not found", res.Error)
}

func TestInvokeTrailingWhitespaceAccepted(t *testing.T) {
	mux := newTestMux(t)
	req := httptest.NewRequest(http.MethodPost, "/api/invoke/echo", strings.NewReader("{\"prompt\":\"a\"}\n"))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResult(t, rec).Success)
}
