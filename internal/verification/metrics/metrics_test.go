package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordsVerdicts(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementVerdict(true, nil)
	m.IncrementVerdict(false, []string{"face", "name"})
	m.IncrementVerdict(false, []string{"name"})

	assert.Equal(t, 1.0, promtest.ToFloat64(m.VerdictOutcome.WithLabelValues("success")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.VerdictOutcome.WithLabelValues("failure")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.GateFailures.WithLabelValues("name")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.GateFailures.WithLabelValues("face")))
}

func TestMetrics_EvidenceCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementEvidenceFailure("ocr_bill", "timeout")
	m.IncrementNameComparison("partial_match")
	m.ObserveEvidenceLatency("ocr_bill", 120*time.Millisecond)
	m.ObserveVerifyLatency(time.Second)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.EvidenceFailures.WithLabelValues("ocr_bill", "timeout")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.NameComparisons.WithLabelValues("partial_match")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementVerdict(true, nil)
		m.IncrementEvidenceFailure("ocr_bill", "timeout")
		m.IncrementNameComparison("exact")
		m.ObserveEvidenceLatency("ocr_bill", time.Second)
		m.ObserveVerifyLatency(time.Second)
	})
}
