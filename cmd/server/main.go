package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inamate/vecedit/internal/api"
	"github.com/inamate/vecedit/internal/auth"
	"github.com/inamate/vecedit/internal/config"
	"github.com/inamate/vecedit/internal/control"
	"github.com/inamate/vecedit/internal/engine"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	authService := auth.NewService(cfg.ControlSecret)

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := printToken(authService, os.Args[2:]); err != nil {
			slog.Error("issue token", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := engine.New(cfg.EngineOptions())
	if cfg.SampleScene {
		eng.Seed()
		slog.Info("sample scene loaded")
	}

	hub := control.NewHub(eng, cfg.Viewport())
	go func() {
		if err := hub.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("control hub", "error", err)
		}
	}()

	handler := api.NewHandler(hub, cfg.Origins())
	r := api.NewRouter(handler, authService)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop the hub first so in-flight submissions finish and new ones fail fast
		hub.Stop()
		<-hub.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "auth", authService.Enabled(), "viewport", cfg.Viewport())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// printToken writes a control token for the optional subject argument.
func printToken(svc *auth.Service, args []string) error {
	if !svc.Enabled() {
		return errors.New("CONTROL_SECRET is not set")
	}
	subject := "control-panel"
	if len(args) > 0 && args[0] != "" {
		subject = args[0]
	}
	token, err := svc.IssueToken(subject, 0)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
