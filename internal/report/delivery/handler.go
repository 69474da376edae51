package delivery

import (
	"errors"
	"net/http"

	ingestionrepo "email-audit-backend/internal/ingestion/repository"
	"email-audit-backend/internal/report/repository"

	"github.com/gin-gonic/gin"
)

// AuditQueuer queues an audit run for a thread
type AuditQueuer interface {
	QueueAudit(threadID string) bool
}

// ReportHandler handles audit report HTTP requests
type ReportHandler struct {
	reportRepo  repository.ReportRepository
	threadRepo  ingestionrepo.ThreadRepository
	auditQueuer AuditQueuer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repository.ReportRepository, threadRepo ingestionrepo.ThreadRepository, auditQueuer AuditQueuer) *ReportHandler {
	return &ReportHandler{
		reportRepo:  reportRepo,
		threadRepo:  threadRepo,
		auditQueuer: auditQueuer,
	}
}

// TriggerAudit queues an audit run for a thread
// POST /api/threads/:id/audit
func (h *ReportHandler) TriggerAudit(c *gin.Context) {
	threadID := c.Param("id")

	if _, err := h.threadRepo.FindByID(threadID); err != nil {
		if errors.Is(err, ingestionrepo.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !h.auditQueuer.QueueAudit(threadID) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Audit queue is full, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Audit queued"})
}

// GetThreadReports returns a thread's reports, newest first
// GET /api/threads/:id/reports
func (h *ReportHandler) GetThreadReports(c *gin.Context) {
	threadID := c.Param("id")

	if _, err := h.threadRepo.FindByID(threadID); err != nil {
		if errors.Is(err, ingestionrepo.ErrThreadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reports, err := h.reportRepo.FindByThreadID(threadID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   len(reports),
	})
}

// GetReportByID returns a report with its rule outcomes
// GET /api/reports/:id
func (h *ReportHandler) GetReportByID(c *gin.Context) {
	report, err := h.reportRepo.FindByIDWithOutcomes(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, report)
}
