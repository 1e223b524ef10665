// Package server assembles the gateway: routes, middleware chain and the HTTP server lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/sheetkeeper/internal/server/handlers"
	"github.com/iudanet/sheetkeeper/internal/server/middleware"
	"github.com/iudanet/sheetkeeper/internal/server/storage"
)

// Options содержит зависимости и настройки шлюза
type Options struct {
	Upstream        handlers.Upstream
	Subscriptions   storage.SubscriptionStorage
	DB              handlers.Pinger // может быть nil
	Logger          *slog.Logger
	Version         string
	ListenAddress   string
	Session         handlers.SessionConfig
	RateLimit       int // запросов в минуту на IP, 0 - без ограничения
	ShutdownTimeout time.Duration
}

// Server представляет HTTP шлюз к Google Sheets
type Server struct {
	logger  *slog.Logger
	handler http.Handler
	limiter *middleware.RateLimiter
	opts    Options
}

// New собирает маршруты и цепочку middleware
func New(opts Options) (*Server, error) {
	if len(opts.Session.Secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	schemas, err := handlers.LoadSchemas()
	if err != nil {
		return nil, fmt.Errorf("failed to load request schemas: %w", err)
	}

	logger := opts.Logger
	healthHandler := handlers.NewHealthHandler(logger, opts.DB, opts.Version)
	sessionHandler := handlers.NewSessionHandler(logger, schemas, opts.Session)
	sheetsHandler := handlers.NewSheetsHandler(logger, opts.Upstream, schemas)
	pushHandler := handlers.NewPushHandler(logger, opts.Subscriptions, schemas)

	authed := middleware.SessionMiddleware(logger, opts.Session)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", healthHandler.Health)
	mux.HandleFunc("POST /api/session", sessionHandler.Create)

	mux.Handle("GET /api/sheets", authed(http.HandlerFunc(sheetsHandler.ListSpreadsheets)))
	mux.Handle("GET /api/sheets/{id}", authed(http.HandlerFunc(sheetsHandler.GetSheet)))
	mux.Handle("PUT /api/sheets/{id}", authed(http.HandlerFunc(sheetsHandler.UpdateRow)))
	mux.Handle("POST /api/sheets/{id}", authed(http.HandlerFunc(sheetsHandler.AppendRow)))
	mux.Handle("GET /api/sheets/{id}/tabs", authed(http.HandlerFunc(sheetsHandler.ListTabs)))

	mux.Handle("POST /api/push/subscription", authed(http.HandlerFunc(pushHandler.Subscribe)))
	mux.Handle("DELETE /api/push/subscription", authed(http.HandlerFunc(pushHandler.Unsubscribe)))

	// Порядок: recovery -> logging -> rate limit -> маршруты
	var handler http.Handler = mux
	var limiter *middleware.RateLimiter
	if opts.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(opts.RateLimit, time.Minute, logger)
		handler = limiter.Middleware(handler)
	}
	handler = middleware.LoggingWithSkip(logger, []string{"/api/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger:  logger,
		handler: handler,
		limiter: limiter,
		opts:    opts,
	}, nil
}

// Handler returns the fully wrapped gateway handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run слушает ListenAddress и обслуживает запросы до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx, затем выполняет graceful shutdown
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Gateway listening", "address", ln.Addr().String(), "version", s.opts.Version)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down gateway")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if s.limiter != nil {
		s.limiter.Stop()
	}

	if err != nil {
		return err
	}
	s.logger.Info("Gateway stopped")
	return nil
}
