package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AuditRunsTotal counts completed audit runs by result.
	AuditRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emailaudit",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total number of audit runs processed by the pipeline, labeled by result.",
	}, []string{"result"})

	// AuditRunDurationSeconds is end-to-end time per audit run, measured inside the worker.
	AuditRunDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "emailaudit",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "End-to-end time to audit one thread (all LLM calls + persistence).",
		// Runs make m*r sequential LLM calls, so buckets reach into minutes.
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"result"})

	// LLMCallsTotal counts individual rule evaluations by result.
	LLMCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emailaudit",
		Subsystem: "pipeline",
		Name:      "llm_calls_total",
		Help:      "Total number of per-pair LLM evaluations issued by the pipeline, labeled by result.",
	}, []string{"result"})

	// OutcomesWrittenTotal counts persisted rule outcomes.
	OutcomesWrittenTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "emailaudit",
		Subsystem: "pipeline",
		Name:      "outcomes_written_total",
		Help:      "Total number of rule outcomes bulk-inserted across all reports.",
	})

	// IngestedMessagesTotal counts messages created by the .eml ingestion path.
	IngestedMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "emailaudit",
		Subsystem: "ingestion",
		Name:      "messages_total",
		Help:      "Total number of email messages created from uploaded .eml files.",
	})
)

// Register registers pipeline metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AuditRunsTotal,
			AuditRunDurationSeconds,
			LLMCallsTotal,
			OutcomesWrittenTotal,
			IngestedMessagesTotal,
		)
	})
}
