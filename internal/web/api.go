package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"hostbridge/internal/dispatch"
	"hostbridge/internal/errors"
	"hostbridge/internal/netx"
)

const invokePrefix = "/api/invoke/"

// StartAPI registers the HTTP command routes with the given mux
func StartAPI(mux *http.ServeMux, reg *dispatch.Registry) {
	mux.HandleFunc(invokePrefix, handleInvoke(reg))
	mux.HandleFunc("/api/commands", handleCommands(reg))
	mux.HandleFunc("/health", handleHealth)
}

// StartWebSocket registers the plain WebSocket command endpoint
func StartWebSocket(mux *http.ServeMux, reg *dispatch.Registry) {
	mux.Handle("/ws", netx.WebSocketHandler(func(ctx context.Context, name string, args map[string]any) (any, error) {
		return reg.Invoke(ctx, name, dispatch.Args(args))
	}))
}

func handleInvoke(reg *dispatch.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			netx.WriteMethodNotAllowed(w)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, invokePrefix)
		if name == "" || strings.Contains(name, "/") {
			netx.WriteBadRequest(w, "Invalid command name")
			return
		}

		args := dispatch.Args{}
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&args); err != nil {
			if err != io.EOF {
				netx.WriteBadRequest(w, "Invalid request format")
				return
			}
		} else if _, err := dec.Token(); err != io.EOF {
			// one JSON object per body
			netx.WriteBadRequest(w, "Invalid request format")
			return
		}

		res, err := reg.Invoke(r.Context(), name, args)
		if err != nil {
			netx.WriteError(w, statusFor(err), err)
			return
		}
		netx.WriteSuccess(w, res)
	}
}

func handleCommands(reg *dispatch.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			netx.WriteMethodNotAllowed(w)
			return
		}
		netx.WriteSuccess(w, reg.Names())
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	netx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrUnknownCommand:
		return http.StatusNotFound
	case errors.ErrInvalidArgument:
		return http.StatusBadRequest
	case errors.ErrInferenceRequest, errors.ErrInferenceDecode, errors.ErrInferenceStatus:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
