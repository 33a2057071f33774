// Package metrics exposes cycle instrumentation over Prometheus.
package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the pipeline's Prometheus collectors.
type Registry struct {
	reg *prometheus.Registry

	CandidatesPriced   *prometheus.CounterVec
	CandidatesAdmitted *prometheus.CounterVec
	DriftBlocked       *prometheus.CounterVec
	CycleDuration      prometheus.Histogram
	BalanceScore       prometheus.Gauge
	CardSize           prometheus.Gauge
}

// NewRegistry registers all collectors on a private registry so tests can
// create as many as they like.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		CandidatesPriced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitchedge_candidates_priced_total",
			Help: "Market candidates priced by the simulators",
		}, []string{"product"}),
		CandidatesAdmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitchedge_candidates_admitted_total",
			Help: "Candidates admitted by the router",
		}, []string{"product", "tier"}),
		DriftBlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitchedge_drift_blocked_total",
			Help: "Candidates vetoed by the drift tracker",
		}, []string{"tier"}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pitchedge_cycle_duration_seconds",
			Help:    "End-to-end daily cycle duration",
			Buckets: prometheus.DefBuckets,
		}),
		BalanceScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pitchedge_balance_score",
			Help: "Routing balance score of the latest cycle",
		}),
		CardSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pitchedge_card_singles",
			Help: "Singles on the latest daily card",
		}),
	}
	reg.MustRegister(
		r.CandidatesPriced, r.CandidatesAdmitted, r.DriftBlocked,
		r.CycleDuration, r.BalanceScore, r.CardSize,
	)
	return r
}

// Handler serves /metrics and a trivial /health.
func (r *Registry) Handler() http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return router
}
