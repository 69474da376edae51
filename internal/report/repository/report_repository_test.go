package repository

import (
	"testing"

	reportdomain "email-audit-backend/internal/report/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) (ReportRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&reportdomain.AuditReport{}, &reportdomain.RuleOutcome{}))

	return NewReportRepository(db), db
}

func TestBulkCreateOutcomesAssignsIDs(t *testing.T) {
	repo, _ := newTestRepo(t)

	report := &reportdomain.AuditReport{ThreadID: uuid.New().String()}
	require.NoError(t, repo.Create(report))
	require.NotEmpty(t, report.ID)

	outcomes := []reportdomain.RuleOutcome{
		{ReportID: report.ID, RuleID: "rule-1", MessageID: "msg-1", Passed: true, Score: 80},
		{ReportID: report.ID, RuleID: "rule-2", MessageID: "msg-1", Passed: false, Score: 20},
	}
	require.NoError(t, repo.BulkCreateOutcomes(outcomes))

	stored, err := repo.FindOutcomesByReportID(report.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	for _, o := range stored {
		assert.NotEmpty(t, o.ID)
	}
}

func TestBulkCreateOutcomesRejectsDuplicateTriple(t *testing.T) {
	repo, db := newTestRepo(t)

	report := &reportdomain.AuditReport{ThreadID: uuid.New().String()}
	require.NoError(t, repo.Create(report))

	// Same (report, rule, message) twice in one batch trips the unique
	// index and the whole batch is rolled back
	outcomes := []reportdomain.RuleOutcome{
		{ReportID: report.ID, RuleID: "rule-1", MessageID: "msg-1", Passed: true, Score: 80},
		{ReportID: report.ID, RuleID: "rule-2", MessageID: "msg-1", Passed: true, Score: 90},
		{ReportID: report.ID, RuleID: "rule-1", MessageID: "msg-1", Passed: false, Score: 10},
	}
	require.Error(t, repo.BulkCreateOutcomes(outcomes))

	var count int64
	require.NoError(t, db.Model(&reportdomain.RuleOutcome{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateFinalizesReportInPlace(t *testing.T) {
	repo, db := newTestRepo(t)

	report := &reportdomain.AuditReport{ThreadID: uuid.New().String()}
	require.NoError(t, repo.Create(report))

	report.OverallScore = 72.5
	report.Strengths = "Rules passed: Polite tone"
	report.Improvements = "Rules failed: No PII"
	require.NoError(t, repo.Update(report))

	stored, err := repo.FindByID(report.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, 72.5, stored.OverallScore, 0.001)
	assert.Equal(t, "Rules passed: Polite tone", stored.Strengths)

	var count int64
	require.NoError(t, db.Model(&reportdomain.AuditReport{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFindByIDMissingReport(t *testing.T) {
	repo, _ := newTestRepo(t)

	stored, err := repo.FindByID(uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestFindByThreadIDNewestFirst(t *testing.T) {
	repo, _ := newTestRepo(t)

	threadID := uuid.New().String()
	first := &reportdomain.AuditReport{ThreadID: threadID}
	require.NoError(t, repo.Create(first))
	second := &reportdomain.AuditReport{ThreadID: threadID}
	require.NoError(t, repo.Create(second))

	reports, err := repo.FindByThreadID(threadID)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.False(t, reports[0].CreatedAt.Before(reports[1].CreatedAt))
}
