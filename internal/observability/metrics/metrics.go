package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Scheduler exposes counters/histograms for the slot suggestion flow.
type Scheduler struct {
	suggestTotal   *prometheus.CounterVec
	engineDuration prometheus.Histogram
	slotsReturned  prometheus.Histogram
}

func NewScheduler(reg prometheus.Registerer) *Scheduler {
	m := &Scheduler{
		suggestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "api",
			Name:      "suggest_requests_total",
			Help:      "Total /suggest requests by outcome",
		}, []string{"status"}),
		engineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "computation_duration_seconds",
			Help:      "Latency of one slot computation",
			Buckets:   prometheus.DefBuckets,
		}),
		slotsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "engine",
			Name:      "slots_returned",
			Help:      "Number of slots returned per computation",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.suggestTotal, m.engineDuration, m.slotsReturned)
	return m
}

func (m *Scheduler) ObserveSuggest(status string) {
	if m == nil {
		return
	}
	m.suggestTotal.WithLabelValues(status).Inc()
}

func (m *Scheduler) ObserveComputation(d time.Duration, slots int) {
	if m == nil {
		return
	}
	m.engineDuration.Observe(d.Seconds())
	m.slotsReturned.Observe(float64(slots))
}
