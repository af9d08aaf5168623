package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder collects task metrics for one CLI run. Each run is a short batch
// job, so metrics are pushed once at exit instead of scraped.
type Recorder struct {
	registry *prometheus.Registry
	tasks    *prometheus.CounterVec
	provider prometheus.Histogram
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payout_tasks_total",
			Help: "Operator task runs by task and outcome.",
		}, []string{"task", "outcome"}),
		provider: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "payout_provider_request_seconds",
			Help:    "Latency of signed exchange requests.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
	r.registry.MustRegister(r.tasks, r.provider)
	return r
}

// TaskFinished counts one run of task ending in outcome.
func (r *Recorder) TaskFinished(task, outcome string) {
	r.tasks.WithLabelValues(task, outcome).Inc()
}

// ObserveProviderRequest records the duration of one provider call.
func (r *Recorder) ObserveProviderRequest(d time.Duration) {
	r.provider.Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Push replaces the job's metric group on the Pushgateway at url.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("metrics: push to %s: %w", url, err)
	}
	return nil
}
