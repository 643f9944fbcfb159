package climb

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	kindSingle = "single"
	kindMulti  = "multi"
)

var (
	// searchesTotal counts searches by kind and outcome.
	// Labels: kind = "single" | "multi"; result = "found" | "unreachable" | "error".
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hillclimb_searches_total",
		Help: "Total climb searches by kind and result",
	}, []string{"kind", "result"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hillclimb_search_duration_seconds",
		Help:    "Climb search duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"kind"})

	expandedCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hillclimb_search_expanded_cells",
		Help:    "Positions popped from the frontier per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	consistencyFaults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hillclimb_consistency_faults_total",
		Help: "Visited-distance invariant violations",
	})
)

// observe records one finished search.
func observe(kind string, found bool, expanded int, took time.Duration, err error) {
	result := "unreachable"
	switch {
	case err != nil:
		result = "error"
	case found:
		result = "found"
	}
	searchesTotal.WithLabelValues(kind, result).Inc()
	searchDuration.WithLabelValues(kind).Observe(took.Seconds())
	if err == nil {
		expandedCells.Observe(float64(expanded))
	}
}

var (
	tracerOnce  sync.Once
	climbTracer trace.Tracer
)

// tracer returns the OTel tracer, resolved lazily so that a provider
// installed after package init is still picked up.
func tracer() trace.Tracer {
	tracerOnce.Do(func() {
		climbTracer = otel.Tracer("github.com/katalvlaran/hillclimb/climb")
	})
	return climbTracer
}
