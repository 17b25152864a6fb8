package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	policyRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schedsim",
			Subsystem: "scheduler",
			Name:      "runs_total",
			Help:      "Number of completed policy runs.",
		}, []string{"policy"},
	)
	policyFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schedsim",
			Subsystem: "scheduler",
			Name:      "failures_total",
			Help:      "Number of policy runs rejected or aborted with an error.",
		}, []string{"policy"},
	)
	averageWaiting = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "schedsim",
			Subsystem: "scheduler",
			Name:      "average_waiting_time",
			Help:      "Average waiting time of the last run, in clock units.",
		}, []string{"policy"},
	)
	averageTurnaround = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "schedsim",
			Subsystem: "scheduler",
			Name:      "average_turnaround_time",
			Help:      "Average turnaround time of the last run, in clock units.",
		}, []string{"policy"},
	)
	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schedsim",
			Subsystem: "scheduler",
			Name:      "run_duration_seconds",
			Help:      "Wall time spent simulating one policy run.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"policy"},
	)
	registryProcesses = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "schedsim",
			Subsystem: "registry",
			Name:      "processes",
			Help:      "Processes currently defined in the server registry.",
		},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{policyRuns, policyFailures, averageWaiting, averageTurnaround, runDuration, registryProcesses}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler that serves Prometheus metrics for the DefaultGatherer.
func Handler() http.Handler { return promhttp.Handler() }

// The helpers below no-op if Register hasn't been called.

func ObserveRun(policy string, avgWaiting, avgTurnaround, seconds float64) {
	if !regOK.Load() {
		return
	}
	policyRuns.WithLabelValues(policy).Inc()
	averageWaiting.WithLabelValues(policy).Set(avgWaiting)
	averageTurnaround.WithLabelValues(policy).Set(avgTurnaround)
	runDuration.WithLabelValues(policy).Observe(seconds)
}

func IncFailure(policy string) {
	if regOK.Load() {
		policyFailures.WithLabelValues(policy).Inc()
	}
}

func SetRegistryProcesses(n int) {
	if regOK.Load() {
		registryProcesses.Set(float64(n))
	}
}
