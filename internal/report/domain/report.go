package domain

import "time"

// AuditReport is one audit run over one thread. Created with a placeholder
// zero score so outcomes have a stable report ID while evaluation is in
// progress; score and summaries are filled in place by the aggregator.
// CompletedAt stays NULL for a run that never finished.
type AuditReport struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	ThreadID      string     `json:"thread_id" gorm:"index;not null"`
	GeneratedByID *string    `json:"generated_by_id,omitempty"` // Contact reference; NULL for automated runs
	OverallScore  float64    `json:"overall_score" gorm:"type:numeric(5,2)"`
	Strengths     string     `json:"strengths" gorm:"type:text"`
	Improvements  string     `json:"improvements" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	Outcomes []RuleOutcome `json:"outcomes,omitempty" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}

// RuleOutcome is the result of one rule applied to one message within one
// report. At most one outcome may exist per (report, rule, message) triple.
type RuleOutcome struct {
	ID            string `json:"id" gorm:"primaryKey"`
	ReportID      string `json:"report_id" gorm:"uniqueIndex:idx_report_rule_message;not null"`
	RuleID        string `json:"rule_id" gorm:"uniqueIndex:idx_report_rule_message;not null"`
	MessageID     string `json:"message_id" gorm:"uniqueIndex:idx_report_rule_message;not null"`
	Passed        bool   `json:"passed"`
	Score         int    `json:"score"`
	Justification string `json:"justification" gorm:"type:text"`
}
