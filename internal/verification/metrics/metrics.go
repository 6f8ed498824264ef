package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Evidence gathering latencies by source
	EvidenceLatency *prometheus.HistogramVec

	// Evidence failures recovered as weakest evidence, by source and category
	EvidenceFailures *prometheus.CounterVec

	// Overall verdicts by outcome
	VerdictOutcome *prometheus.CounterVec

	// Gate failures by gate
	GateFailures *prometheus.CounterVec

	// Name comparison tiers
	NameComparisons *prometheus.CounterVec

	// Overall verification latency including evidence gathering
	VerifyLatency prometheus.Histogram
}

// New registers the verification metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the verification metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EvidenceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idcheck_evidence_duration_seconds",
			Help:    "Duration of evidence gathering operations by source",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}), // source: "face_compare", "ocr_document", "ocr_bill", "face_detect"

		EvidenceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_evidence_failures_total",
			Help: "Evidence calls that failed and were replaced by the weakest evidence",
		}, []string{"source", "category"}),

		VerdictOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_verdicts_total",
			Help: "Total verdicts by outcome",
		}, []string{"outcome"}),

		GateFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_gate_failures_total",
			Help: "Failed gates by gate name",
		}, []string{"gate"}),

		NameComparisons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_name_comparisons_total",
			Help: "Name comparison results by tier",
		}, []string{"tier"}),

		VerifyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "idcheck_verify_duration_seconds",
			Help:    "Duration of a full verification including evidence gathering",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
	}
}

// ObserveEvidenceLatency records the duration of fetching evidence from a source.
func (m *Metrics) ObserveEvidenceLatency(source string, d time.Duration) {
	if m != nil {
		m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementEvidenceFailure(source, category string) {
	if m != nil {
		m.EvidenceFailures.WithLabelValues(source, category).Inc()
	}
}

// IncrementVerdict records an overall outcome and each failed gate.
func (m *Metrics) IncrementVerdict(success bool, failedGates []string) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.VerdictOutcome.WithLabelValues(outcome).Inc()
	for _, gate := range failedGates {
		m.GateFailures.WithLabelValues(gate).Inc()
	}
}

func (m *Metrics) IncrementNameComparison(tier string) {
	if m != nil {
		m.NameComparisons.WithLabelValues(tier).Inc()
	}
}

func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
