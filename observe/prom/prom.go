// Package prom provides a netgate.Observer backed by Prometheus collectors.
package prom

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-netgate/netgate"
)

// Metrics implements netgate.Observer over Prometheus counters and a run
// duration histogram. A single Metrics may observe any number of Executors.
type Metrics struct {
	runsStarted  prometheus.Counter
	runsFinished *prometheus.CounterVec
	runDuration  prometheus.Histogram
	updates      *prometheus.CounterVec
	operations   prometheus.Counter
}

var _ netgate.Observer = (*Metrics)(nil)

// New builds the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "netgate",
			Name:      "runs_started_total",
			Help:      "Gated runs started.",
		}),
		runsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netgate",
			Name:      "runs_finished_total",
			Help:      "Gated runs finished, labelled by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "netgate",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of gated runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netgate",
			Name:      "signal_updates_total",
			Help:      "Reachability updates observed, labelled by value.",
		}, []string{"reachable"}),
		operations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "netgate",
			Name:      "operations_started_total",
			Help:      "Gated operations invoked.",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.runsStarted, m.runsFinished, m.runDuration, m.updates, m.operations,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) RunStarted(context.Context, time.Duration) { m.runsStarted.Inc() }

func (m *Metrics) UpdateObserved(_ context.Context, reachable bool) {
	m.updates.WithLabelValues(strconv.FormatBool(reachable)).Inc()
}

func (m *Metrics) OperationStarted(context.Context) { m.operations.Inc() }

func (m *Metrics) RunFinished(_ context.Context, dur time.Duration, err error) {
	m.runsFinished.WithLabelValues(outcome(err)).Inc()
	m.runDuration.Observe(dur.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, netgate.ErrTimeout):
		return "timeout"
	case errors.Is(err, netgate.ErrExhausted):
		return "exhausted"
	default:
		return "error"
	}
}
