package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/campusconnect-backend/internal/auth"
	"github.com/heartmarshall/campusconnect-backend/internal/config"
	"github.com/heartmarshall/campusconnect-backend/internal/transport/middleware"
	"github.com/heartmarshall/campusconnect-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, opens storage,
// wires services and serves HTTP until ctx is canceled, then shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("driver", driverName(cfg.Database.Driver)),
	)

	st, err := OpenStorage(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	sender, err := NewSender(cfg.Mail, logger)
	if err != nil {
		return err
	}

	svc, err := NewServices(ctx, cfg, st, sender, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, svc, st, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// NewHandler builds the routed, middleware-wrapped HTTP handler.
func NewHandler(cfg *config.Config, svc *Services, st *Storage, logger *slog.Logger) http.Handler {
	router := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(st.Components, Version),
		Submissions: rest.NewSubmissionHandler(svc.Submissions, svc.Broadcasts, logger),
		Subscribers: rest.NewSubscriberHandler(svc.Subscribers, logger),
		Broadcasts:  rest.NewBroadcastHandler(svc.Broadcasts, svc.Submissions, logger),
	})

	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Session(logger, sessions, middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
		}),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(router)
}
