// Package server serves the rational enumeration over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/netip"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/agbru/ratenum/internal/config"
	apperrors "github.com/agbru/ratenum/internal/errors"
	"github.com/agbru/ratenum/internal/logging"
	"github.com/agbru/ratenum/internal/rationals"
	"github.com/agbru/ratenum/internal/service"
)

// Server is the HTTP front end of the enumeration service.
type Server struct {
	service        service.Service
	limits         service.Limits
	httpServer     *http.Server
	handler        http.Handler
	logger         logging.Logger
	rateLimiter    *RateLimiter
	ownsLimiter    bool
	trustedProxies []netip.Prefix
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer builds a server for the kinds of factory listening on cfg.Port.
//
// Requests pass through the request ID, security, rate limit, logging and
// metrics middleware in that order.
func NewServer(factory rationals.Factory, cfg config.AppConfig, opts ...Option) *Server {
	// Validated by config.
	trusted, _ := config.ParseTrustedProxies(cfg.TrustedProxies)

	s := &Server{
		limits:         service.DefaultLimits(),
		trustedProxies: trusted,
		logger:         logging.NewLogger(os.Stderr, "server", zerolog.GlobalLevel()),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewEnumerationService(factory, s.limits)
	}
	if s.rateLimiter == nil {
		rlConfig := DefaultRateLimiterConfig()
		rlConfig.TrustedProxies = s.trustedProxies
		s.rateLimiter = NewRateLimiter(rlConfig)
		s.ownsLimiter = true
	}
	resolver := NewClientIPResolver(s.trustedProxies...)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	router.HandleFunc("/rationals", s.handleTerms).Methods(http.MethodGet)
	router.HandleFunc("/rationals/{index}", s.handleTerm).Methods(http.MethodGet)
	router.HandleFunc("/kinds", s.handleKinds).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", s.metrics).Methods(http.MethodGet)

	// Route-aware middleware runs inside the router.
	router.Use(loggingMiddleware(s.logger, resolver), metricsMiddleware)

	var handler http.Handler = router
	handler = s.rateLimiter.Middleware(handler)
	handler = securityMiddleware(s.securityConfig)(handler)
	handler = requestIDMiddleware(handler)
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Close releases the default rate limiter. Serve calls it on return.
func (s *Server) Close() {
	if s.ownsLimiter {
		s.rateLimiter.Stop()
	}
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.Close()
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully within
// the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", logging.String("addr", ln.Addr().String()))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /rationals?kind=<kind>&offset=<n>&count=<n>")
		s.logger.Println("  GET /rationals/{index}?kind=<kind>")
		s.logger.Println("  GET /kinds")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /metrics")

		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Println("Shutdown requested, initiating graceful shutdown...")
	case err, ok := <-errCh:
		if ok {
			return apperrors.NewServerError("server failed", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	<-errCh

	s.logger.Println("Server stopped gracefully")
	return nil
}
