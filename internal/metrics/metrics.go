package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthFunc reports whether a dependency is usable
type HealthFunc func(ctx context.Context) error

// Metrics holds the tote's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	betsPlaced    *prometheus.CounterVec
	stakes        *prometheus.CounterVec
	betsRejected  *prometheus.CounterVec
	raceConcluded prometheus.Gauge
	dividends     *prometheus.GaugeVec
	wsClients     prometheus.Gauge
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		betsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "totebet_bets_placed_total",
			Help: "Bets accepted into a pool",
		}, []string{"product"}),
		stakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "totebet_stake_units_total",
			Help: "Units staked on accepted bets",
		}, []string{"product"}),
		betsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "totebet_bets_rejected_total",
			Help: "Bets refused, by error kind",
		}, []string{"reason"}),
		raceConcluded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "totebet_race_concluded",
			Help: "1 once the race has an official result",
		}),
		dividends: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "totebet_dividend",
			Help: "Declared dividend per unit staked",
		}, []string{"product", "runner"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "totebet_websocket_clients",
			Help: "Connected live feed clients",
		}),
	}

	m.registry.MustRegister(
		m.betsPlaced, m.stakes, m.betsRejected, m.raceConcluded, m.dividends, m.wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for tests and additional collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) BetPlaced(product string, stake int64) {
	m.betsPlaced.WithLabelValues(product).Inc()
	m.stakes.WithLabelValues(product).Add(float64(stake))
}

func (m *Metrics) BetRejected(reason string) {
	m.betsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) RaceConcluded() {
	m.raceConcluded.Set(1)
}

func (m *Metrics) DividendDeclared(product, runner string, amount float64) {
	m.dividends.WithLabelValues(product, runner).Set(amount)
}

// SetWebSocketClients records the number of connected feed clients
func (m *Metrics) SetWebSocketClients(n int) {
	m.wsClients.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HealthHandler answers 200 "ok" while healthFn succeeds and 503 otherwise
func HealthHandler(healthFn HealthFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(fmt.Sprintf("unhealthy: %v", err)))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
