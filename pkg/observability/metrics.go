package observability

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roammate",
		Name:      "rpc_requests_total",
		Help:      "Connect RPCs handled, by procedure and result code.",
	}, []string{"procedure", "code"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "roammate",
		Name:      "rpc_duration_seconds",
		Help:      "Connect RPC latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	generationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roammate",
		Name:      "generation_requests_total",
		Help:      "Model generations, by operation and outcome.",
	}, []string{"operation", "outcome"})

	// Model calls are slow; buckets go up to two minutes.
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "roammate",
		Name:      "generation_duration_seconds",
		Help:      "Model generation latency.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"operation"})
)

// Generation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeInvalid  = "invalid"
	OutcomeDegraded = "degraded"
)

// ObserveGeneration records one model call.
func ObserveGeneration(operation, outcome string, d time.Duration) {
	generationRequests.WithLabelValues(operation, outcome).Inc()
	generationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// GenerationCount returns the counter for operation/outcome. Used by tests.
func GenerationCount(operation, outcome string) prometheus.Counter {
	return generationRequests.WithLabelValues(operation, outcome)
}

// NewMetricsInterceptor records request counts and latency per procedure.
func NewMetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			procedure := req.Spec().Procedure
			rpcRequests.WithLabelValues(procedure, code).Inc()
			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}
