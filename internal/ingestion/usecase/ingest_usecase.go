package usecase

import (
	"fmt"
	"os"

	ingestiondomain "email-audit-backend/internal/ingestion/domain"
	"email-audit-backend/internal/ingestion/parser"
	"email-audit-backend/internal/ingestion/repository"
	"email-audit-backend/pkg/metrics"
)

// AuditQueuer queues an audit run for a thread. Implemented by the audit
// worker service; declared here so ingestion does not import the audit
// packages.
type AuditQueuer interface {
	QueueAudit(threadID string) bool
}

// IngestResult summarizes one processed .eml file
type IngestResult struct {
	ThreadID              string `json:"thread_id"`
	MessagesProcessed     int    `json:"messages_processed"`
	TotalMessagesInThread int64  `json:"total_messages_in_thread"`
}

// IngestUsecase turns uploaded .eml files into thread/message records
type IngestUsecase interface {
	// ProcessEMLFile parses the file at path, creates thread and message
	// records, and queues an audit run for the thread.
	ProcessEMLFile(path string) (*IngestResult, error)
}

// ingestUsecase implements IngestUsecase interface
type ingestUsecase struct {
	threadRepo  repository.ThreadRepository
	messageRepo repository.MessageRepository
	auditQueuer AuditQueuer
}

// NewIngestUsecase creates a new instance of ingestUsecase
func NewIngestUsecase(threadRepo repository.ThreadRepository, messageRepo repository.MessageRepository, auditQueuer AuditQueuer) IngestUsecase {
	return &ingestUsecase{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		auditQueuer: auditQueuer,
	}
}

func (u *ingestUsecase) ProcessEMLFile(path string) (*IngestResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("eml file not found: %w", err)
	}

	parsed, err := parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse eml file: %w", err)
	}

	var thread *ingestiondomain.EmailThread
	processed := 0

	for _, pm := range parsed {
		// All messages in one upload land in the same thread; the thread
		// is keyed by the first message's subject
		if thread == nil {
			thread, _, err = u.threadRepo.GetOrCreateBySubject(pm.Subject)
			if err != nil {
				return nil, err
			}
		}

		msg := &ingestiondomain.EmailMessage{
			ThreadID:   thread.ID,
			MessageID:  pm.MessageID,
			Sender:     pm.Sender,
			Recipients: ingestiondomain.StringArray(pm.Recipients),
			CC:         ingestiondomain.StringArray(pm.CC),
			BCC:        ingestiondomain.StringArray(pm.BCC),
			Date:       pm.Date,
			Subject:    pm.Subject,
			BodyText:   pm.BodyText,
			BodyHTML:   pm.BodyHTML,
			RawContent: pm.RawContent,
		}

		created, err := u.messageRepo.CreateIfAbsent(msg)
		if err != nil {
			return nil, err
		}
		if created {
			metrics.IngestedMessagesTotal.Inc()
		}
		processed++
	}

	result := &IngestResult{MessagesProcessed: processed}
	if thread == nil {
		return result, nil
	}

	result.ThreadID = thread.ID
	total, err := u.messageRepo.CountByThreadID(thread.ID)
	if err != nil {
		return nil, err
	}
	result.TotalMessagesInThread = total

	// Audit a fresh thread or a multi-message upload
	if processed > 1 || total == 1 {
		u.auditQueuer.QueueAudit(thread.ID)
	}

	return result, nil
}
