// Package metrics exposes stock activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"stocktracker/internal/forecast"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create independent instances.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry       *prometheus.Registry
	usageRecords   *prometheus.CounterVec
	unitsConsumed  *prometheus.CounterVec
	unitsRestocked prometheus.Counter
	itemsByStatus  *prometheus.GaugeVec
	dashboardReads *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		usageRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_usage_records_total",
				Help: "Usage records created, by item category",
			},
			[]string{"category"},
		),
		unitsConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_units_consumed_total",
				Help: "Units removed from stock by usage, by item category",
			},
			[]string{"category"},
		),
		unitsRestocked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "inventory_units_restocked_total",
				Help: "Units added to stock by restocking",
			},
		),
		itemsByStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "inventory_items",
				Help: "Items per derived stock status at the last dashboard computation",
			},
			[]string{"status"},
		),
		dashboardReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_dashboard_reads_total",
				Help: "Dashboard reads, by whether the cache served them",
			},
			[]string{"cached"},
		),
	}

	m.registry.MustRegister(
		m.usageRecords,
		m.unitsConsumed,
		m.unitsRestocked,
		m.itemsByStatus,
		m.dashboardReads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveUsage(category string, quantity int) {
	if m == nil {
		return
	}
	m.usageRecords.WithLabelValues(category).Inc()
	m.unitsConsumed.WithLabelValues(category).Add(float64(quantity))
}

func (m *Metrics) ObserveRestock(quantity int) {
	if m == nil {
		return
	}
	m.unitsRestocked.Add(float64(quantity))
}

// SetStatusCounts publishes the per-status item counts from dashboard totals
func (m *Metrics) SetStatusCounts(t forecast.Totals) {
	if m == nil {
		return
	}
	healthy := t.TotalItems - t.LowStock - t.OutOfStock
	m.itemsByStatus.WithLabelValues(string(forecast.StatusHealthy)).Set(float64(healthy))
	m.itemsByStatus.WithLabelValues(string(forecast.StatusLow)).Set(float64(t.LowStock))
	m.itemsByStatus.WithLabelValues(string(forecast.StatusOutOfStock)).Set(float64(t.OutOfStock))
}

func (m *Metrics) ObserveDashboardRead(cached bool) {
	if m == nil {
		return
	}
	m.dashboardReads.WithLabelValues(strconv.FormatBool(cached)).Inc()
}
