package repository

import rulesdomain "email-audit-backend/internal/rules/domain"

// RuleRepository defines the interface for compliance rule persistence
type RuleRepository interface {
	Create(rule *rulesdomain.Rule) error
	FindByID(id string) (*rulesdomain.Rule, error)
	FindAll() ([]*rulesdomain.Rule, error)
	// FindActive returns only rules with is_active=true, in creation order.
	// This is the rule snapshot an audit run evaluates.
	FindActive() ([]*rulesdomain.Rule, error)
	Update(rule *rulesdomain.Rule) error
	Delete(id string) error
	SetActive(id string, active bool) error
}
