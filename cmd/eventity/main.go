package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diwise/eventity/internal/pkg/application/eventity"
	"github.com/diwise/eventity/internal/pkg/application/notifications"
	"github.com/diwise/eventity/internal/pkg/infrastructure/router"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage/engine"
	"github.com/diwise/eventity/internal/pkg/presentation/api"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
)

const serviceName string = "eventity"

func main() {
	serviceVersion := buildinfo.SourceVersion()

	ctx, logger, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion, "json")
	defer cleanup()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	storageConfig, err := loadStorageConfiguration(ctx, env.GetVariableOrDefault(ctx, "STORAGE_CONFIG_PATH", ""))
	if err != nil {
		logger.Error("failed to load storage configuration", "err", err.Error())
		os.Exit(1)
	}

	store, err := engine.Open(ctx, storageConfig)
	if err != nil {
		logger.Error("failed to open storage", "driver", storageConfig.Driver, "err", err.Error())
		os.Exit(1)
	}
	defer store.Close()

	app, err := newApp(ctx, store, env.GetVariableOrDefault(ctx, "NOTIFIER_ENDPOINT", ""))
	if err != nil {
		logger.Error("failed to create application", "err", err.Error())
		os.Exit(1)
	}

	if err = app.Start(); err != nil {
		logger.Error("failed to start application", "err", err.Error())
		os.Exit(1)
	}
	defer app.Stop()

	port := env.GetVariableOrDefault(ctx, "SERVICE_PORT", "8080")
	server := &http.Server{
		Handler:           newRouter(ctx, app, allowedOrigins(env.GetVariableOrDefault(ctx, "CORS_ALLOWED_ORIGINS", ""))...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Error("failed to listen for connections", "port", port, "err", err.Error())
		os.Exit(1)
	}

	logger.Info("starting to listen for connections", "port", port, "driver", storageConfig.Driver)

	// serve returns once in-flight requests are done, before app.Stop and
	// store.Close run
	err = serve(ctx, server, listener)
	if err != nil {
		logger.Error("server stopped with error", "err", err.Error())
	}

	logger.Info("shutting down")
}

const shutdownTimeout = 10 * time.Second

// serve handles connections on listener until ctx is done, then shuts the
// server down and waits for active requests to complete.
func serve(ctx context.Context, server *http.Server, listener net.Listener) error {
	shutdownComplete := make(chan error, 1)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		shutdownComplete <- server.Shutdown(shutdownCtx)
	}()

	err := server.Serve(listener)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownComplete
}

// loadStorageConfiguration reads the yaml file at path, or the environment if
// no path is given.
func loadStorageConfiguration(ctx context.Context, path string) (*engine.Config, error) {
	if path == "" {
		return engine.LoadConfigurationFromEnv(ctx)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage configuration: %w", err)
	}
	defer f.Close()

	return engine.LoadConfiguration(f)
}

// allowedOrigins splits a comma separated list of origins.
func allowedOrigins(value string) []string {
	origins := []string{}
	for _, o := range strings.Split(value, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func newApp(ctx context.Context, store storage.ListStore, notifierEndpoint string) (eventity.App, error) {
	options := []eventity.Option{}

	if notifierEndpoint != "" {
		notifier, err := notifications.NewNotifier(ctx, notifierEndpoint)
		if err != nil {
			return nil, err
		}

		logging.GetFromContext(ctx).Info("notifications enabled", "endpoint", notifierEndpoint)
		options = append(options, eventity.WithNotifier(notifier))
	}

	return eventity.New(storage.NewPatchLog(store), options...), nil
}

func newRouter(ctx context.Context, app eventity.EntityLog, origins ...string) *chi.Mux {
	r := router.New(serviceName, router.WithAllowedOrigins(origins...))
	api.RegisterHandlers(ctx, r, app)
	return r
}
