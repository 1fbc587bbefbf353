package sidebar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mchmarny/docnav/pkg/metric"
	"github.com/mchmarny/docnav/pkg/server"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the sidebar collectors.
type Metrics struct {
	Requests *metric.Counter
	Nodes    *metric.Gauge
}

// NewMetrics registers the sidebar collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: metric.NewCounterWithRegistry(reg, "sidebar_requests_total",
			"Sidebar HTTP requests by endpoint and status code.", "endpoint", "status"),
		Nodes: metric.NewGaugeWithRegistry(reg, "sidebar_nodes",
			"Sidebar nodes by group and type.", "group", "type"),
	}
}

// Publish records the node counts of s, replacing those of any previous sidebar.
func (m *Metrics) Publish(s *Sidebar) {
	if m.Nodes == nil {
		return
	}

	m.Nodes.Reset()

	for _, group := range s.GroupNames() {
		st := s.CountGroup(group)
		m.Nodes.Set(float64(st.Categories), group, string(KindCategory))
		m.Nodes.Set(float64(st.Docs), group, string(KindDoc))
		m.Nodes.Set(float64(st.Links), group, string(KindLink))
	}
}

// requestCounter returns the request counter, or nil when none was registered,
// so a missing counter never reaches the handler as a typed nil.
func (m *Metrics) requestCounter() metric.IncrementalCounter {
	if m.Requests == nil {
		return nil
	}
	return m.Requests
}

// RunConfig configures Run.
type RunConfig struct {
	// Resolver resolves doc and link hrefs in group and route responses.
	Resolver Resolver

	// Registry exposes metrics on /metrics. A new registry is created when nil.
	Registry *prometheus.Registry

	// Metrics must be registered with Registry. Created when nil.
	Metrics *Metrics

	// Options are passed to the server after the sidebar routes.
	Options []server.Option
}

// Run starts the sidebar server and blocks until the context is canceled or an error occurs.
// It registers all sidebar handlers, health and readiness checks and the metrics endpoint.
func Run(ctx context.Context, src Source, cfg RunConfig) error {
	if src == nil || src.Current() == nil {
		return errors.New("no sidebar to serve")
	}

	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(cfg.Registry)
	}

	cfg.Metrics.Publish(src.Current())

	current := src.Current()
	slog.Info("serving sidebar",
		"title", current.Title,
		"groups", current.GroupNames(),
		"nodes", current.Count().Total())

	opt := []server.Option{
		server.WithRegistry(cfg.Registry),
		server.WithPrometheusMetrics(),
		server.WithSimpleHealth(),
		server.WithReadinessCheck(readiness{src: src}),
	}

	h := NewHandler(src, cfg.Resolver, cfg.Metrics.requestCounter())
	h.Register(func(pattern string, handler http.Handler) {
		opt = append(opt, server.WithHandler(pattern, handler))
	})

	opt = append(opt, cfg.Options...)

	return server.New(opt...).Serve(ctx)
}

type readiness struct {
	src Source
}

func (r readiness) Ready(context.Context) error {
	s := r.src.Current()
	if s == nil || len(s.Groups) == 0 {
		return errors.New("sidebar not loaded")
	}
	return nil
}
