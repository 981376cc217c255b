package web

import (
	"context"

	"hostbridge/internal/dispatch"
	"hostbridge/internal/netx"

	"github.com/spf13/cast"
	"github.com/zishang520/socket.io/servers/socket/v3"
)

// ResultEvent is the event name a command's reply is emitted on
func ResultEvent(command string) string {
	return command + "_result"
}

// SetupCommandService registers one Socket.IO event per command on the global server
func SetupCommandService(reg *dispatch.Registry) {
	server := netx.GetGlobalServer()
	appNamespace := server.GetNamespace(netx.AppNamespace)

	for _, name := range reg.Names() {
		appNamespace.AddEvent(name, commandHandler(reg, name))
	}

	appNamespace.RegisterEvents()
}

// commandHandler runs each invocation on its own goroutine and emits the reply
func commandHandler(reg *dispatch.Registry, name string) func(*socket.Socket, ...any) {
	return func(client *socket.Socket, data ...any) {
		args := ArgsFromEvent(data)
		go func() {
			res, err := reg.Invoke(context.Background(), name, args)
			client.Emit(ResultEvent(name), netx.NewResult(res, err))
		}()
	}
}

// ArgsFromEvent converts a Socket.IO payload into command args.
// A bare string is taken as the prompt.
func ArgsFromEvent(data []any) dispatch.Args {
	payload, ok := netx.FirstArg(data)
	if !ok || payload == nil {
		return dispatch.Args{}
	}
	switch v := payload.(type) {
	case string:
		return dispatch.Args{"prompt": v}
	case map[string]any:
		return dispatch.Args(v)
	default:
		m, err := cast.ToStringMapE(v)
		if err != nil {
			return dispatch.Args{}
		}
		return dispatch.Args(m)
	}
}
