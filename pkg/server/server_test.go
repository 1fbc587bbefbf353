package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/docnav/pkg/metric"
)

type checkFunc func(ctx context.Context) error

func (f checkFunc) Healthy(ctx context.Context) error { return f(ctx) }
func (f checkFunc) Ready(ctx context.Context) error   { return f(ctx) }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestNew_Defaults(t *testing.T) {
	s, ok := New().(*server)
	require.True(t, ok)

	assert.Equal(t, DefaultPort, s.port)
	assert.Equal(t, DefaultReadTimeout, s.readTimeout)
	assert.Equal(t, DefaultWriteTimeout, s.writeTimeout)
	assert.Equal(t, DefaultIdleTimeout, s.idleTimeout)
	assert.Equal(t, DefaultShutdownTimeout, s.shutdownTimeout)
	assert.Equal(t, DefaultMaxHeaderBytes, s.maxHeaderBytes)
	assert.False(t, s.IsRunning())
}

func TestNew_Options(t *testing.T) {
	s, ok := New(
		WithPort(9999),
		WithReadTimeout(time.Second),
		WithWriteTimeout(2*time.Second),
		WithIdleTimeout(3*time.Second),
		WithShutdownTimeout(4*time.Second),
		WithMaxHeaderBytes(1024),
		WithTLS(TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}),
	).(*server)
	require.True(t, ok)

	assert.Equal(t, 9999, s.port)
	assert.Equal(t, time.Second, s.readTimeout)
	assert.Equal(t, 2*time.Second, s.writeTimeout)
	assert.Equal(t, 3*time.Second, s.idleTimeout)
	assert.Equal(t, 4*time.Second, s.shutdownTimeout)
	assert.Equal(t, 1024, s.maxHeaderBytes)
	require.NotNil(t, s.tlsConfig)
	assert.Equal(t, "c.pem", s.tlsConfig.CertFile)
}

func TestWithHandler(t *testing.T) {
	srv := New(WithHandler("/custom", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("custom"))
	})))

	rec := get(t, srv.Handler(), "/custom")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "custom", rec.Body.String())
}

func TestWithSimpleHealth(t *testing.T) {
	rec := get(t, New(WithSimpleHealth()).Handler(), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestWithHealthAndReadinessChecks(t *testing.T) {
	notReady := errors.New("sidebar not loaded")

	srv := New(
		WithHealthCheck(checkFunc(func(context.Context) error { return nil })),
		WithReadinessCheck(checkFunc(func(context.Context) error { return notReady })),
	)

	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/healthz").Code)

	rec := get(t, srv.Handler(), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "sidebar not loaded", rec.Body.String())

	notReady = nil
	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/readyz").Code)
}

func TestWithPrometheusMetrics_UsesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metric.NewCounterWithRegistry(reg, "server_test_total", "Test.", "endpoint")
	c.Increment("x")

	// metrics option first: the endpoint must still serve the replaced registry
	srv := New(WithPrometheusMetrics(), WithRegistry(reg))

	rec := get(t, srv.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "docnav_server_test_total")
}

func TestWithoutMetrics(t *testing.T) {
	rec := get(t, New().Handler(), "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	srv := New(WithPort(0), WithShutdownTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Serve(ctx) }()

	require.Eventually(t, srv.IsRunning, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	assert.False(t, srv.IsRunning())
}

func TestServe_BadTLSFiles(t *testing.T) {
	srv := New(WithPort(0), WithTLS(TLSConfig{CertFile: "missing.pem", KeyFile: "missing.key"}))

	err := srv.Serve(context.Background())
	assert.ErrorContains(t, err, "failed to load TLS certificate")
}

func TestServe_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port

	err = New(WithPort(port)).Serve(context.Background())
	assert.ErrorContains(t, err, "failed to create listener")
}
