package usecase

import (
	"context"
	"fmt"
	"log"

	ingestionrepo "email-audit-backend/internal/ingestion/repository"
	reportdomain "email-audit-backend/internal/report/domain"
	reportrepo "email-audit-backend/internal/report/repository"
	rulesrepo "email-audit-backend/internal/rules/repository"
	"email-audit-backend/pkg/ai"
	"email-audit-backend/pkg/metrics"
)

// AuditUsecase runs compliance audits over email threads
type AuditUsecase interface {
	// RunAudit audits one thread: every message is evaluated against every
	// active rule, one structured LLM call per pair, and the outcomes are
	// aggregated into a single report.
	RunAudit(ctx context.Context, threadID string) (*reportdomain.AuditReport, error)
}

// auditUsecase implements AuditUsecase interface
type auditUsecase struct {
	threadRepo  ingestionrepo.ThreadRepository
	messageRepo ingestionrepo.MessageRepository
	ruleRepo    rulesrepo.RuleRepository
	reportRepo  reportrepo.ReportRepository
	evaluator   ai.RuleEvaluator
}

// NewAuditUsecase creates a new instance of auditUsecase. The evaluator is a
// shared handle; it is safe for concurrent use across runs.
func NewAuditUsecase(
	threadRepo ingestionrepo.ThreadRepository,
	messageRepo ingestionrepo.MessageRepository,
	ruleRepo rulesrepo.RuleRepository,
	reportRepo reportrepo.ReportRepository,
	evaluator ai.RuleEvaluator,
) AuditUsecase {
	return &auditUsecase{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		ruleRepo:    ruleRepo,
		reportRepo:  reportRepo,
		evaluator:   evaluator,
	}
}

func (u *auditUsecase) RunAudit(ctx context.Context, threadID string) (*reportdomain.AuditReport, error) {
	// A missing thread fails before any report row exists
	thread, err := u.threadRepo.FindByID(threadID)
	if err != nil {
		return nil, err
	}

	// Snapshot messages and active rules; rules added after this point do
	// not participate in this run
	messages, err := u.messageRepo.FindByThreadID(thread.ID)
	if err != nil {
		return nil, err
	}
	rules, err := u.ruleRepo.FindActive()
	if err != nil {
		return nil, err
	}

	// Placeholder report gives outcomes a stable ID while the run is in
	// progress; score and summaries are filled by the aggregator
	report := &reportdomain.AuditReport{
		ThreadID:     thread.ID,
		OverallScore: 0,
		Strengths:    "",
		Improvements: "",
	}
	if err := u.reportRepo.Create(report); err != nil {
		return nil, err
	}

	totalScore := 0
	outcomes := make([]reportdomain.RuleOutcome, 0, len(messages)*len(rules))

	for _, msg := range messages {
		content := msg.EvaluableContent()

		for _, rule := range rules {
			evaluation, err := u.evaluator.EvaluateRule(ctx, rule.Name, rule.Description, content)
			if err != nil {
				// One failed call aborts the whole run; the worker
				// queue is the retry layer. No outcomes are kept.
				metrics.LLMCallsTotal.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("failed to evaluate rule %q on message %s: %w", rule.Name, msg.ID, err)
			}
			metrics.LLMCallsTotal.WithLabelValues("ok").Inc()

			passed, score, justification := applyDefaults(evaluation)
			log.Printf("[AuditPipeline] Rule: %s, Passed: %t, Score: %d, Justification: %s", rule.Name, passed, score, justification)

			totalScore += score
			outcomes = append(outcomes, reportdomain.RuleOutcome{
				ReportID:      report.ID,
				RuleID:        rule.ID,
				MessageID:     msg.ID,
				Passed:        passed,
				Score:         score,
				Justification: justification,
			})
		}
	}

	// All-or-nothing: a persistence failure keeps no outcomes for this run
	if err := u.reportRepo.BulkCreateOutcomes(outcomes); err != nil {
		return nil, fmt.Errorf("failed to persist outcomes: %w", err)
	}
	metrics.OutcomesWrittenTotal.Add(float64(len(outcomes)))

	aggregate(report, rules, outcomes, totalScore, len(messages))
	if err := u.reportRepo.Update(report); err != nil {
		return nil, fmt.Errorf("failed to finalize report: %w", err)
	}

	return report, nil
}

// applyDefaults maps a partially-populated evaluation to outcome values.
// Missing keys degrade to passed=false, score=0, justification="" instead of
// failing the run.
func applyDefaults(evaluation *ai.RuleEvaluation) (bool, int, string) {
	passed := false
	score := 0
	justification := ""
	if evaluation != nil {
		if evaluation.Passed != nil {
			passed = *evaluation.Passed
		}
		if evaluation.Score != nil {
			score = *evaluation.Score
		}
		if evaluation.Justification != nil {
			justification = *evaluation.Justification
		}
	}
	return passed, score, justification
}
