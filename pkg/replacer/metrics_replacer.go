package replacer

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/status"
)

var (
	replacerPrometheusMetrics sync.Once

	replacerOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "replacer",
			Name:      "operations_total",
			Help:      "Total number of operations against replacers.",
		},
		[]string{"name", "operation"})
	replacerOperationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "replacer",
			Name:      "operation_failures_total",
			Help:      "Total number of operations against replacers that were rejected, by gRPC status code.",
		},
		[]string{"name", "operation", "grpc_code"})
	replacerEvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "replacer",
			Name:      "evictions_total",
			Help:      "Total number of calls to Evict(), by whether a victim was found.",
		},
		[]string{"name", "outcome"})
)

type metricsReplacer struct {
	base Replacer
	name string

	recordAccess prometheus.Counter
	setEvictable prometheus.Counter
	remove       prometheus.Counter
	size         prometheus.Counter

	evictVictim   prometheus.Counter
	evictNoVictim prometheus.Counter
}

// NewMetricsReplacer is a decorator for Replacer that exposes the
// number of operations performed against the underlying Replacer
// through Prometheus.
func NewMetricsReplacer(base Replacer, name string) Replacer {
	replacerPrometheusMetrics.Do(func() {
		prometheus.MustRegister(replacerOperationsTotal)
		prometheus.MustRegister(replacerOperationFailuresTotal)
		prometheus.MustRegister(replacerEvictionsTotal)
	})

	return &metricsReplacer{
		base: base,
		name: name,

		recordAccess: replacerOperationsTotal.WithLabelValues(name, "RecordAccess"),
		setEvictable: replacerOperationsTotal.WithLabelValues(name, "SetEvictable"),
		remove:       replacerOperationsTotal.WithLabelValues(name, "Remove"),
		size:         replacerOperationsTotal.WithLabelValues(name, "Size"),

		evictVictim:   replacerEvictionsTotal.WithLabelValues(name, "victim"),
		evictNoVictim: replacerEvictionsTotal.WithLabelValues(name, "no_victim"),
	}
}

func (r *metricsReplacer) observeFailure(operation string, err error) error {
	if err != nil {
		replacerOperationFailuresTotal.WithLabelValues(r.name, operation, status.Code(err).String()).Inc()
	}
	return err
}

func (r *metricsReplacer) RecordAccess(frameID FrameID) error {
	r.recordAccess.Inc()
	return r.observeFailure("RecordAccess", r.base.RecordAccess(frameID))
}

func (r *metricsReplacer) SetEvictable(frameID FrameID, evictable bool) error {
	r.setEvictable.Inc()
	return r.observeFailure("SetEvictable", r.base.SetEvictable(frameID, evictable))
}

func (r *metricsReplacer) Evict() (FrameID, bool) {
	frameID, ok := r.base.Evict()
	if ok {
		r.evictVictim.Inc()
	} else {
		r.evictNoVictim.Inc()
	}
	return frameID, ok
}

func (r *metricsReplacer) Remove(frameID FrameID) error {
	r.remove.Inc()
	return r.observeFailure("Remove", r.base.Remove(frameID))
}

func (r *metricsReplacer) Size() int {
	r.size.Inc()
	return r.base.Size()
}
