package netx

import (
	"context"
	"encoding/json"
	"net/http"

	"hostbridge/internal/logger"

	"github.com/gorilla/websocket"
)

// InvokeFunc runs one named command
type InvokeFunc func(ctx context.Context, name string, args map[string]any) (any, error)

// ClientMessage is a frame sent by the front-end
type ClientMessage struct {
	ID      string         `json:"id,omitempty"`
	Command string         `json:"command"`
	Args    map[string]any `json:"args,omitempty"`
}

// ServerMessage answers one ClientMessage
type ServerMessage struct {
	ID      string `json:"id,omitempty"`
	Command string `json:"command,omitempty"`
	Result
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebSocketHandler serves command invocations over plain WebSocket frames.
// Frames on one connection are handled in order.
func WebSocketHandler(invoke InvokeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("ws upgrade failed")
			return
		}
		defer conn.Close()

		remote := r.RemoteAddr
		logger.Debug().Str("remote", remote).Msg("ws client connected")

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Warn().Err(err).Str("remote", remote).Msg("ws client closed unexpectedly")
				}
				return
			}

			var msg ClientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				if err := conn.WriteJSON(ServerMessage{Result: Result{Error: "invalid message"}}); err != nil {
					return
				}
				continue
			}

			res, err := invoke(r.Context(), msg.Command, msg.Args)
			reply := ServerMessage{
				ID:      msg.ID,
				Command: msg.Command,
				Result:  NewResult(res, err),
			}
			if err := conn.WriteJSON(reply); err != nil {
				logger.Warn().Err(err).Str("remote", remote).Msg("ws write failed")
				return
			}
		}
	}
}
