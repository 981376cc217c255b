package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostbridge/internal/conf"
	"hostbridge/internal/dispatch"
	"hostbridge/internal/inference"
	"hostbridge/internal/logger"
	"hostbridge/internal/netx"
	"hostbridge/internal/system"
	"hostbridge/internal/web"

	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to config file")
	listen := flag.String("listen", "", "Override listen address")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if err := conf.LoadConfig(*configPath); err != nil {
		logger.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}
	if *listen != "" {
		conf.SetListen(*listen)
	}
	if *debug {
		conf.SetLogLevel("debug")
	}
	logger.Init(conf.GetLog().Level)

	inferenceConf := conf.GetInference()
	registry, err := dispatch.NewDefaultRegistry(
		system.NewCollector(system.NewHostSource()),
		inference.NewClient(inferenceConf.Endpoint, inferenceConf.Model, nil),
		system.GetHostInfo,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register commands")
	}

	// Initialize the global Socket.IO server with all namespaces
	netx.SetupGlobalServer()
	web.SetupCommandService(registry)

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", netx.GetHandler())
	web.StartAPI(mux, registry)
	web.StartWebSocket(mux, registry)
	web.StartFrontend(mux)

	srv := &http.Server{
		Addr:    conf.GetServer().Listen,
		Handler: mux,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	logger.Info().
		Str("listen", srv.Addr).
		Str("inference", inferenceConf.Endpoint).
		Str("model", inferenceConf.Model).
		Strs("commands", registry.Names()).
		Msg("hostbridge started")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("http server failed")
	}
}
