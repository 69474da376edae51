package repository

import (
	"errors"
	"time"

	rulesdomain "email-audit-backend/internal/rules/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ruleRepository implements RuleRepository interface
type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new instance of ruleRepository
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{
		db: db,
	}
}

func (r *ruleRepository) Create(rule *rulesdomain.Rule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if rule.Definition == nil {
		rule.Definition = rulesdomain.JSONPayload{}
	}
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()
	return r.db.Create(rule).Error
}

func (r *ruleRepository) FindByID(id string) (*rulesdomain.Rule, error) {
	var rule rulesdomain.Rule
	err := r.db.Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) FindAll() ([]*rulesdomain.Rule, error) {
	var rules []*rulesdomain.Rule
	err := r.db.Order("created_at ASC").Find(&rules).Error
	return rules, err
}

func (r *ruleRepository) FindActive() ([]*rulesdomain.Rule, error) {
	var rules []*rulesdomain.Rule
	err := r.db.Where("is_active = ?", true).Order("created_at ASC").Find(&rules).Error
	return rules, err
}

func (r *ruleRepository) Update(rule *rulesdomain.Rule) error {
	rule.UpdatedAt = time.Now()
	return r.db.Save(rule).Error
}

func (r *ruleRepository) Delete(id string) error {
	return r.db.Delete(&rulesdomain.Rule{}, "id = ?", id).Error
}

func (r *ruleRepository) SetActive(id string, active bool) error {
	return r.db.Model(&rulesdomain.Rule{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		}).Error
}
