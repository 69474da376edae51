package repository

import (
	"errors"
	"time"

	reportdomain "email-audit-backend/internal/report/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reportRepository implements ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new instance of reportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{
		db: db,
	}
}

func (r *reportRepository) Create(report *reportdomain.AuditReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	report.CreatedAt = time.Now()
	return r.db.Create(report).Error
}

func (r *reportRepository) Update(report *reportdomain.AuditReport) error {
	return r.db.Save(report).Error
}

func (r *reportRepository) FindByID(id string) (*reportdomain.AuditReport, error) {
	var report reportdomain.AuditReport
	err := r.db.Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByIDWithOutcomes(id string) (*reportdomain.AuditReport, error) {
	var report reportdomain.AuditReport
	err := r.db.Preload("Outcomes").Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByThreadID(threadID string) ([]*reportdomain.AuditReport, error) {
	var reports []*reportdomain.AuditReport
	err := r.db.Where("thread_id = ?", threadID).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepository) BulkCreateOutcomes(outcomes []reportdomain.RuleOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	for i := range outcomes {
		if outcomes[i].ID == "" {
			outcomes[i].ID = uuid.New().String()
		}
	}
	// Single transaction so a failure partway through leaves no rows behind
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&outcomes).Error
	})
}

func (r *reportRepository) FindOutcomesByReportID(reportID string) ([]*reportdomain.RuleOutcome, error) {
	var outcomes []*reportdomain.RuleOutcome
	err := r.db.Where("report_id = ?", reportID).Find(&outcomes).Error
	return outcomes, err
}
