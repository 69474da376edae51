package repository

import reportdomain "email-audit-backend/internal/report/domain"

// ReportRepository defines the interface for audit report persistence
type ReportRepository interface {
	// Create inserts a new report row (the pipeline's placeholder)
	Create(report *reportdomain.AuditReport) error
	// Update rewrites the report row in place (score + summaries after aggregation)
	Update(report *reportdomain.AuditReport) error
	// FindByID finds a report; returns nil if absent
	FindByID(id string) (*reportdomain.AuditReport, error)
	// FindByIDWithOutcomes finds a report and preloads its outcomes
	FindByIDWithOutcomes(id string) (*reportdomain.AuditReport, error)
	// FindByThreadID returns a thread's reports, newest first
	FindByThreadID(threadID string) ([]*reportdomain.AuditReport, error)

	// BulkCreateOutcomes inserts all outcomes of a run in one transaction.
	// All-or-nothing: on any failure (including a uniqueness violation) no
	// outcome row is retained.
	BulkCreateOutcomes(outcomes []reportdomain.RuleOutcome) error
	// FindOutcomesByReportID returns a report's outcomes
	FindOutcomesByReportID(reportID string) ([]*reportdomain.RuleOutcome, error)
}
