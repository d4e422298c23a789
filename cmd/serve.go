package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/repositories"
	"github.com/desertthunder/encore/internal/server"
	"github.com/desertthunder/encore/internal/services"
	"github.com/desertthunder/encore/internal/session"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP service: the session API, the Spotify token exchange
// gateway, and the Prometheus metrics endpoint.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store := session.NewStore(models.Amount(config.Session.StartingBalance), config.Session.RefundOnReject)
	user := models.Requester{
		ID:        config.Session.UserID,
		Name:      config.Session.UserName,
		AvatarURL: config.Session.UserAvatarURL,
	}

	catalog := r.buildCatalog(ctx, config, cmd.Bool("mock"))

	router := server.NewBasicRouter()
	router.Use(
		server.LoggingMiddleware(r.logger),
		server.MetricsMiddleware(),
		server.RateLimitMiddleware(config.Server.RateLimit, config.Server.RateLimitBurst),
	)

	router.Handler(server.NewTokenHandler(config.Credentials.Spotify, r.logger))
	router.Handler(server.NewLoginHandler(config.Credentials.SpotifyPublic, r.logger))
	router.Handler(server.NewAPIHandler(server.APIHandlerOpts{
		Store:    store,
		User:     user,
		Catalog:  catalog,
		Fallback: services.NewMockCatalog(),
		DJs:      repositories.NewDJRepository(db),
		Requests: repositories.NewRequestRepository(db),
		Ledger:   repositories.NewTransactionRepository(db),
		Logger:   r.logger,
	}))
	router.Handle("GET", "/metrics", server.MetricsHandler())

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serveCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting server", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-serveCtx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	}
}

// buildCatalog returns the primary track catalog. Spotify is used when a
// stored token exists and the mock flag is unset; otherwise the handler's
// fallback serves every search.
func (r *Runner) buildCatalog(ctx context.Context, config *shared.Config, forceMock bool) services.Catalog {
	if forceMock {
		r.logger.Info("serving the built-in demo catalog")
		return nil
	}
	if r.spotify != nil {
		return r.spotify
	}

	token := config.Credentials.Spotify.Token()
	if token == nil {
		r.logger.Info("no stored Spotify token, searches fall back to the demo catalog")
		return nil
	}

	svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
	if err != nil {
		r.logger.Warn("failed to build Spotify catalog", "error", err)
		return nil
	}
	if err := svc.OAuthenticate(ctx, token); err != nil {
		r.logger.Warn("failed to install stored token", "error", err)
		return nil
	}
	return svc
}
