package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fengshan-hs/timetable/core/metrics"
)

// PromRecorder counts pipeline observations in Prometheus metrics.
type PromRecorder struct {
	Pages    *prometheus.CounterVec
	Skips    *prometheus.CounterVec
	Entries  prometheus.Counter
	Teachers prometheus.Counter
}

// NewPromRecorder registers the run metrics on reg.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	pages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_pages_total",
		Help: "Document pages processed, by outcome",
	}, []string{"outcome"})
	skips := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_skipped_total",
		Help: "Rows, cells or records skipped, by reason",
	}, []string{"reason"})
	entries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_schedule_entries_total",
		Help: "Schedule entries accepted after deduplication",
	})
	teachers := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_teachers_total",
		Help: "Distinct teachers registered",
	})

	if err := reg.Register(pages); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pages = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(skips); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			skips = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(entries); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			entries = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(teachers); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			teachers = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	return &PromRecorder{Pages: pages, Skips: skips, Entries: entries, Teachers: teachers}, nil
}

func (p *PromRecorder) RecordPage(outcome string) { p.Pages.WithLabelValues(outcome).Inc() }
func (p *PromRecorder) RecordSkip(reason string)  { p.Skips.WithLabelValues(reason).Inc() }
func (p *PromRecorder) RecordEntry()              { p.Entries.Inc() }
func (p *PromRecorder) RecordTeacher()            { p.Teachers.Inc() }

var _ coremetrics.Recorder = (*PromRecorder)(nil)

// WriteTextfile dumps the gathered metrics in the node-exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
