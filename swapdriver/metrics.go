package swapdriver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer receives a notification for every successful step. An
// Observer must be non-blocking and failure-isolated: a panicking
// observer must never corrupt driver state, so Step recovers around
// every call into one.
type Observer interface {
	ObserveStep(from, to Kind, latency time.Duration)
}

// NopObserver discards every observation.
type NopObserver struct{}

func (NopObserver) ObserveStep(from, to Kind, latency time.Duration) {}

// notify invokes obs.ObserveStep, isolating Step from an observer that
// panics.
func notify(obs Observer, from, to Kind, latency time.Duration) {
	if obs == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	obs.ObserveStep(from, to, latency)
}

// PrometheusObserver reports step transitions and their latency as
// Prometheus metrics, registered under the xmrswap namespace.
type PrometheusObserver struct {
	stepLatency *prometheus.HistogramVec
	stepTotal   *prometheus.CounterVec
}

// NewPrometheusObserver constructs and registers a PrometheusObserver
// against reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		stepLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "xmrswap",
			Subsystem: "driver",
			Name:      "step_latency_seconds",
			Help:      "Latency of each swap driver state transition.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"from_state", "to_state"}),
		stepTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xmrswap",
			Subsystem: "driver",
			Name:      "step_total",
			Help:      "Count of swap driver state transitions.",
		}, []string{"from_state", "to_state"}),
	}

	if err := reg.Register(o.stepLatency); err != nil {
		return nil, err
	}
	if err := reg.Register(o.stepTotal); err != nil {
		return nil, err
	}
	return o, nil
}

// ObserveStep implements Observer.
func (o *PrometheusObserver) ObserveStep(from, to Kind, latency time.Duration) {
	o.stepLatency.WithLabelValues(from.String(), to.String()).Observe(latency.Seconds())
	o.stepTotal.WithLabelValues(from.String(), to.String()).Inc()
}
