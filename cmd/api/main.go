package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexonufrak/dashboard-api/internal/app"
	"github.com/alexonufrak/dashboard-api/internal/appconf"
	"github.com/alexonufrak/dashboard-api/internal/dashboard"
	"github.com/alexonufrak/dashboard-api/internal/identity"
	"github.com/alexonufrak/dashboard-api/internal/logging"
	"github.com/alexonufrak/dashboard-api/internal/restapi"
	"github.com/alexonufrak/dashboard-api/internal/webui"
)

func main() {
	// Load a local .env when present; real deployments set env vars directly.
	_ = godotenv.Load()

	var configPath string
	var port int
	flag.StringVar(&configPath, "config", os.Getenv("DASH_CONFIG"), "Path to YAML config file")
	flag.IntVar(&port, "port", 0, "API server port (overrides config)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	cfg, err := appconf.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if port != 0 {
		cfg.Port = port
	}

	manager, err := dashboard.InitManager(*cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dashboard manager", "error", err)
		os.Exit(1)
	}

	application := &app.Application{
		Config:  *cfg,
		Logger:  logger,
		Manager: manager,
		Identity: identity.NewClient(identity.Config{
			Domain:       cfg.IdentityDomain,
			ClientID:     cfg.IdentityClientID,
			ClientSecret: cfg.IdentityClientSecret,
			Logger:       logger,
		}),
	}

	api := restapi.NewRestAPI(application)

	handler := api.Handler()
	if cfg.Env == appconf.Development {
		webUI := &webui.WebUI{App: application}
		mux := http.NewServeMux()
		webUI.SetWebUIRoutes(mux)
		// Keep pprof on the API router; /debug/ otherwise goes to the web UI.
		mux.Handle("GET /debug/pprof/", handler)
		mux.Handle("/", handler)
		handler = mux
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logger.Info("shutting down server", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	manager.Shutdown()
	logger.Info("server stopped")
}
