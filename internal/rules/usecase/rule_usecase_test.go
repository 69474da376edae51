package usecase

import (
	"testing"

	rulesdomain "email-audit-backend/internal/rules/domain"
	"email-audit-backend/internal/rules/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRuleUsecase(t *testing.T) RuleUsecase {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&rulesdomain.Rule{}))

	return NewRuleUsecase(repository.NewRuleRepository(db))
}

func TestCreateRuleDefaults(t *testing.T) {
	uc := newRuleUsecase(t)

	rule, err := uc.CreateRule("Polite tone", "Replies must stay courteous", 0, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, rule.ID)
	assert.True(t, rule.IsActive)
	assert.Equal(t, rulesdomain.SeverityMedium, rule.Severity)
}

func TestCreateRuleRequiresNameAndDescription(t *testing.T) {
	uc := newRuleUsecase(t)

	_, err := uc.CreateRule("", "desc", rulesdomain.SeverityLow, nil)
	assert.Error(t, err)

	_, err = uc.CreateRule("name", "", rulesdomain.SeverityLow, nil)
	assert.Error(t, err)
}

func TestCreateRuleRejectsDuplicateName(t *testing.T) {
	uc := newRuleUsecase(t)

	_, err := uc.CreateRule("Polite tone", "first", rulesdomain.SeverityLow, nil)
	require.NoError(t, err)

	_, err = uc.CreateRule("Polite tone", "second", rulesdomain.SeverityLow, nil)
	assert.Error(t, err)
}

func TestSetRuleActiveControlsAuditSnapshot(t *testing.T) {
	uc := newRuleUsecase(t)

	rule, err := uc.CreateRule("No PII", "No personal data in replies", rulesdomain.SeverityHigh, nil)
	require.NoError(t, err)

	updated, err := uc.SetRuleActive(rule.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := uc.GetRules(true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := uc.GetRules(false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateRulePartial(t *testing.T) {
	uc := newRuleUsecase(t)

	rule, err := uc.CreateRule("Reply deadline", "Reply within two days", rulesdomain.SeverityMedium, nil)
	require.NoError(t, err)

	desc := "Reply within one business day"
	updated, err := uc.UpdateRule(rule.ID, RuleUpdateRequest{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "Reply deadline", updated.Name)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, rulesdomain.SeverityMedium, updated.Severity)
}

func TestRuleNotFound(t *testing.T) {
	uc := newRuleUsecase(t)

	_, err := uc.GetRuleByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrRuleNotFound)

	err = uc.DeleteRule(uuid.New().String())
	assert.ErrorIs(t, err, ErrRuleNotFound)
}
