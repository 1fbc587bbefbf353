package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Gauge is a labeled value that can go up and down.
type Gauge struct {
	Name string
	Help string

	vec *prometheus.GaugeVec
}

// NewGaugeWithRegistry registers a gauge named docnav_<name> with reg.
func NewGaugeWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Gauge {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(gauge)

	return &Gauge{
		Name: name,
		Help: help,
		vec:  gauge,
	}
}

// Set sets the value for the label values.
func (g *Gauge) Set(v float64, val ...string) {
	g.vec.WithLabelValues(val...).Set(v)
}

// Reset drops every label combination, so series of removed groups disappear.
func (g *Gauge) Reset() {
	g.vec.Reset()
}

// Value returns the current value for the label values. Intended for tests.
func (g *Gauge) Value(val ...string) float64 {
	return readValue(g.vec.WithLabelValues(val...))
}

func readValue(c prometheus.Collector) float64 {
	return testutil.ToFloat64(c)
}
