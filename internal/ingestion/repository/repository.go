package repository

import (
	"errors"

	ingestiondomain "email-audit-backend/internal/ingestion/domain"
)

// ErrThreadNotFound indicates the referenced thread does not exist
var ErrThreadNotFound = errors.New("thread not found")

// ThreadRepository defines the interface for thread persistence
type ThreadRepository interface {
	// GetOrCreateBySubject finds a thread by subject or creates a new one.
	// Returns the thread and whether it was created.
	GetOrCreateBySubject(subject string) (*ingestiondomain.EmailThread, bool, error)
	// FindByID finds a thread by its ID; returns ErrThreadNotFound if absent
	FindByID(id string) (*ingestiondomain.EmailThread, error)
	// FindByIDWithMessages finds a thread and preloads its messages
	FindByIDWithMessages(id string) (*ingestiondomain.EmailThread, error)
	// List returns threads ordered by most recently updated
	List(limit, offset int) ([]*ingestiondomain.EmailThread, int64, error)
}

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	// CreateIfAbsent creates the message unless one with the same RFC 5322
	// Message-ID already exists. Returns whether a row was created.
	CreateIfAbsent(msg *ingestiondomain.EmailMessage) (bool, error)
	// FindByThreadID returns all messages of a thread in received order
	FindByThreadID(threadID string) ([]*ingestiondomain.EmailMessage, error)
	// CountByThreadID returns the number of messages in a thread
	CountByThreadID(threadID string) (int64, error)
}
