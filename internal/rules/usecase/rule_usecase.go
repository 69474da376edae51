package usecase

import (
	"errors"
	"fmt"

	rulesdomain "email-audit-backend/internal/rules/domain"
	"email-audit-backend/internal/rules/repository"

	"github.com/google/uuid"
)

// ErrRuleNotFound indicates the referenced rule does not exist
var ErrRuleNotFound = errors.New("rule not found")

// RuleUpdateRequest carries the mutable fields of a rule.
// Nil pointers leave the current value unchanged.
type RuleUpdateRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Severity    *rulesdomain.Severity   `json:"severity"`
	Definition  *rulesdomain.JSONPayload `json:"definition"`
	IsActive    *bool                   `json:"is_active"`
}

// RuleUsecase defines compliance rule business logic
type RuleUsecase interface {
	CreateRule(name, description string, severity rulesdomain.Severity, definition rulesdomain.JSONPayload) (*rulesdomain.Rule, error)
	GetRuleByID(id string) (*rulesdomain.Rule, error)
	GetRules(activeOnly bool) ([]*rulesdomain.Rule, error)
	UpdateRule(id string, updates RuleUpdateRequest) (*rulesdomain.Rule, error)
	DeleteRule(id string) error
	SetRuleActive(id string, active bool) (*rulesdomain.Rule, error)
}

// ruleUsecase implements RuleUsecase interface
type ruleUsecase struct {
	ruleRepo repository.RuleRepository
}

// NewRuleUsecase creates a new instance of ruleUsecase
func NewRuleUsecase(ruleRepo repository.RuleRepository) RuleUsecase {
	return &ruleUsecase{ruleRepo: ruleRepo}
}

func (u *ruleUsecase) CreateRule(name, description string, severity rulesdomain.Severity, definition rulesdomain.JSONPayload) (*rulesdomain.Rule, error) {
	if name == "" {
		return nil, errors.New("rule name is required")
	}
	if description == "" {
		return nil, errors.New("rule description is required")
	}
	if severity == 0 {
		severity = rulesdomain.SeverityMedium
	}

	rule := &rulesdomain.Rule{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Severity:    severity,
		Definition:  definition,
		IsActive:    true,
	}

	if err := u.ruleRepo.Create(rule); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	return rule, nil
}

func (u *ruleUsecase) GetRuleByID(id string) (*rulesdomain.Rule, error) {
	rule, err := u.ruleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

func (u *ruleUsecase) GetRules(activeOnly bool) ([]*rulesdomain.Rule, error) {
	if activeOnly {
		return u.ruleRepo.FindActive()
	}
	return u.ruleRepo.FindAll()
}

func (u *ruleUsecase) UpdateRule(id string, updates RuleUpdateRequest) (*rulesdomain.Rule, error) {
	rule, err := u.GetRuleByID(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		rule.Name = *updates.Name
	}
	if updates.Description != nil {
		rule.Description = *updates.Description
	}
	if updates.Severity != nil {
		rule.Severity = *updates.Severity
	}
	if updates.Definition != nil {
		rule.Definition = *updates.Definition
	}
	if updates.IsActive != nil {
		rule.IsActive = *updates.IsActive
	}

	if err := u.ruleRepo.Update(rule); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	return rule, nil
}

func (u *ruleUsecase) DeleteRule(id string) error {
	if _, err := u.GetRuleByID(id); err != nil {
		return err
	}
	return u.ruleRepo.Delete(id)
}

func (u *ruleUsecase) SetRuleActive(id string, active bool) (*rulesdomain.Rule, error) {
	rule, err := u.GetRuleByID(id)
	if err != nil {
		return nil, err
	}
	if err := u.ruleRepo.SetActive(id, active); err != nil {
		return nil, err
	}
	rule.IsActive = active
	return rule, nil
}
