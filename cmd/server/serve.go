package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/urfave/cli/v3"

	"vaultspace/internal/config"
	"vaultspace/internal/handler"
	"vaultspace/internal/middleware"
)

const shutdownTimeout = 15 * time.Second

func serveAction(ctx context.Context, _ *cli.Command) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLogger, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closeLogger()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"blob_backend", cfg.BlobBackend,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	handlers := &handler.Handlers{
		Auth:      handler.NewAuthHandler(a.accounts, logger),
		Users:     handler.NewUserHandler(a.profiles, logger),
		Workspace: handler.NewWorkspaceHandler(a.workspaces, a.members, logger),
		Media:     handler.NewMediaHandler(a.media, cfg.MaxUploadBytes, logger),
		Documents: handler.NewDocumentHandler(a.documents, logger),
		Comments:  handler.NewCommentHandler(a.comments, logger),
		Teams:     handler.NewTeamHandler(a.teams, logger),
	}

	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = handlers.Routes()
	h = middleware.Auth(a.accounts, logger, handler.PublicPaths...)(h)
	h = middleware.Recovery(logger)(h)
	h = cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(h)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute, // large uploads
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
