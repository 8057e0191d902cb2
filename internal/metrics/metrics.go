package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "querysearch_queries_total",
			Help: "Total query submissions by outcome",
		},
		[]string{"outcome"},
	)

	queryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "querysearch_query_duration_seconds",
		Help:    "Wall time of query engine invocations",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	outputBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "querysearch_engine_output_bytes_total",
		Help: "Bytes of engine stdout forwarded to clients",
	})

	engineUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "querysearch_engine_up",
		Help: "Whether the last engine readiness check passed (1) or not (0)",
	})
)

var registerOnce sync.Once

// Init registers the collectors with reg, or the default registerer when
// reg is nil. Must be called once at startup.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		reg.MustRegister(queriesTotal, queryDuration, outputBytes, engineUp)
	})
}

// RecordQuery records one query submission.
// Rejected queries never reach the engine and carry no duration.
func RecordQuery(outcome string, duration time.Duration, bytes int64) {
	queriesTotal.WithLabelValues(outcome).Inc()
	if duration > 0 {
		queryDuration.Observe(duration.Seconds())
	}
	if bytes > 0 {
		outputBytes.Add(float64(bytes))
	}
}

// SetEngineUp records the result of an engine readiness check.
func SetEngineUp(up bool) {
	if up {
		engineUp.Set(1)
		return
	}
	engineUp.Set(0)
}
