// Package metrics exposes Prometheus collectors for the booking service.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricSettlementsTotal   = "dutyledger_settlements_total"
	MetricWalletPostingTotal = "dutyledger_wallet_postings_total"
	MetricPreviewsTotal      = "dutyledger_previews_total"
	MetricRPCDuration        = "dutyledger_rpc_duration_seconds"
)

// Settlement outcomes.
const (
	OutcomeSettled  = "settled"
	OutcomeForced   = "force_settled"
	OutcomeRejected = "rejected"
)

// Metrics holds the collectors and the registry they are registered on.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	settlementsTotal *prometheus.CounterVec
	walletPostings   *prometheus.CounterVec
	previewsTotal    *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
}

// New creates collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		settlementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricSettlementsTotal,
			Help: "Settlement attempts by outcome.",
		}, []string{"outcome"}),
		walletPostings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricWalletPostingTotal,
			Help: "Wallet transactions posted by settlements, by type.",
		}, []string{"type"}),
		previewsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPreviewsTotal,
			Help: "Settlement previews, by whether they drifted from the stored totals.",
		}, []string{"drifted"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricRPCDuration,
			Help:    "RPC latency by procedure and Connect code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	registry.MustRegister(
		m.settlementsTotal,
		m.walletPostings,
		m.previewsTotal,
		m.rpcDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSettlement counts a settlement attempt.
func (m *Metrics) ObserveSettlement(outcome string) {
	m.settlementsTotal.WithLabelValues(outcome).Inc()
}

// ObserveWalletPostings counts wallet transactions by type ("credit" or "debit").
func (m *Metrics) ObserveWalletPostings(txType string, n int) {
	if n <= 0 {
		return
	}
	m.walletPostings.WithLabelValues(txType).Add(float64(n))
}

// ObservePreview counts a settlement preview.
func (m *Metrics) ObservePreview(drifted bool) {
	m.previewsTotal.WithLabelValues(strconv.FormatBool(drifted)).Inc()
}

// Interceptor returns a Connect interceptor that records RPC latency.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			m.rpcDuration.
				WithLabelValues(req.Spec().Procedure, codeOf(err)).
				Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
