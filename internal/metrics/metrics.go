package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	KeypairsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "keypairs_generated_total", Help: "Keypairs generated"},
	)
	SecretsStored = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "secrets_stored_total", Help: "Secret keys written to a dotenv store"},
	)
	BalanceLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "balance_lookups_total", Help: "Balance lookups by cluster and outcome"},
		[]string{"cluster", "outcome"},
	)
	BalanceLookupSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "balance_lookup_seconds",
			Help:    "Round-trip latency of getBalance calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cluster"},
	)
)

func init() {
	prometheus.MustRegister(KeypairsGenerated, SecretsStored, BalanceLookups, BalanceLookupSeconds)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
