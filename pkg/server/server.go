package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mchmarny/docnav/pkg/logger"
	"github.com/mchmarny/docnav/pkg/metric"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPort is the port the sidebar service listens on.
	DefaultPort = 8080

	// DefaultReadTimeout bounds reading a whole request, body included.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds how long a keep-alive connection waits for the next request.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the grace period in-flight requests get on shutdown.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxHeaderBytes caps request header size.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)

// Server serves the sidebar routes together with health, readiness and metrics endpoints.
type Server interface {
	// Serve listens on the configured port and blocks until ctx is canceled.
	// It returns nil after a graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning reports whether the listener is bound and accepting connections.
	IsRunning() bool

	// Handler returns the request multiplexer with every registered route,
	// so routes can be exercised without binding a socket.
	Handler() http.Handler
}

// HealthChecker backs the /healthz liveness endpoint.
type HealthChecker interface {
	// Healthy returns nil when the process can serve, or the reason it cannot.
	Healthy(ctx context.Context) error
}

// ReadinessChecker backs the /readyz endpoint. A sidebar service is ready once
// it holds a sidebar worth serving.
type ReadinessChecker interface {
	// Ready returns nil when traffic may be routed to the process.
	Ready(ctx context.Context) error
}

type server struct {
	mux             *http.ServeMux
	port            int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	errLog          *log.Logger
	tlsConfig       *TLSConfig

	mu      sync.RWMutex
	running bool

	// /metrics serves registry only when metrics is set
	registry *prometheus.Registry
	metrics  bool

	healthChecker HealthChecker
	readyChecker  ReadinessChecker
}

// TLSConfig holds the certificate and key files used to serve HTTPS.
type TLSConfig struct {
	CertFile string // Path to the TLS certificate file
	KeyFile  string // Path to the TLS private key file
}

// Option configures a Server.
type Option func(*server)

// WithPort overrides DefaultPort. Port 0 binds an ephemeral port.
func WithPort(port int) Option {
	return func(s *server) { s.port = port }
}

// WithReadTimeout overrides DefaultReadTimeout.
func WithReadTimeout(d time.Duration) Option {
	return func(s *server) { s.readTimeout = d }
}

// WithWriteTimeout overrides DefaultWriteTimeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *server) { s.writeTimeout = d }
}

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *server) { s.idleTimeout = d }
}

// WithShutdownTimeout overrides DefaultShutdownTimeout. Keep it below the
// orchestrator's termination grace period.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithMaxHeaderBytes overrides DefaultMaxHeaderBytes.
func WithMaxHeaderBytes(n int) Option {
	return func(s *server) { s.maxHeaderBytes = n }
}

// WithHandler mounts handler at pattern. Patterns may carry a method and
// wildcards, e.g. "GET /sidebar/{group}".
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithSimpleHealth mounts a /healthz endpoint that always answers 200 "ok".
func WithSimpleHealth() Option {
	return func(s *server) {
		s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// WithHealthCheck adds a /healthz endpoint backed by the checker.
// It must not be combined with WithSimpleHealth.
// The endpoint returns 200 OK when the checker reports nil, 503 otherwise.
func WithHealthCheck(hc HealthChecker) Option {
	return func(s *server) { s.healthChecker = hc }
}

// WithReadinessCheck adds a /readyz endpoint backed by the checker.
func WithReadinessCheck(rc ReadinessChecker) Option {
	return func(s *server) { s.readyChecker = rc }
}

// WithRegistry replaces the server's Prometheus registry so collectors created
// by the caller are exposed on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *server) { s.registry = reg }
}

// WithPrometheusMetrics exposes the server's registry on /metrics.
// The endpoint is mounted after all options are applied, so it serves the
// registry set by WithRegistry regardless of option order.
func WithPrometheusMetrics() Option {
	return func(s *server) { s.metrics = true }
}

// WithTLS serves HTTPS with the given certificate and key.
func WithTLS(cfg TLSConfig) Option {
	return func(s *server) {
		s.tlsConfig = &cfg
	}
}

// New creates a server. Unset options fall back to the Default* constants.
// Metrics, health and readiness endpoints are mounted after every option has
// been applied.
func New(opts ...Option) Server {
	s := &server{
		port:            DefaultPort,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		registry:        prometheus.NewRegistry(),
		errLog:          logger.NewLogLogger(slog.LevelError, false),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.metrics {
		s.mux.Handle("/metrics", metric.GetHandlerForRegistry(s.registry))
	}

	if s.healthChecker != nil {
		s.mux.Handle("/healthz", checkHandler(s.healthChecker.Healthy))
	}

	if s.readyChecker != nil {
		s.mux.Handle("/readyz", checkHandler(s.readyChecker.Ready))
	}

	slog.Info("server initialized",
		"port", s.port,
		"read_timeout", s.readTimeout,
		"write_timeout", s.writeTimeout,
		"metrics", s.metrics)

	return s
}

func checkHandler(check func(ctx context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if err := check(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(err.Error()))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// Handler returns the request multiplexer.
func (s *server) Handler() http.Handler {
	return s.mux
}

// IsRunning reports whether the listener is bound.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

// Serve binds the listener, then serves until ctx is canceled and shuts down
// within the shutdown timeout. http.ErrServerClosed is not reported.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	listener, err := s.listen(srv.Addr)
	if err != nil {
		return err
	}

	slog.Info("starting server", "addr", listener.Addr().String(), "tls", s.tlsConfig != nil)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.setRunning(true)
		defer s.setRunning(false)

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server", "grace_period", s.shutdownTimeout)

		start := time.Now()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("server shutdown complete", "duration", time.Since(start))

		return nil
	})

	return g.Wait()
}

// listen binds addr, wrapping the listener in TLS when configured. The socket
// is bound before Serve reports the server as running.
func (s *server) listen(addr string) (net.Listener, error) {
	var cert tls.Certificate
	if s.tlsConfig != nil {
		var err error
		if cert, err = tls.LoadX509KeyPair(s.tlsConfig.CertFile, s.tlsConfig.KeyFile); err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
		}
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	if s.tlsConfig == nil {
		return listener, nil
	}

	return tls.NewListener(listener, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

func (s *server) setRunning(running bool) {
	s.mu.Lock()
	s.running = running
	s.mu.Unlock()
}
