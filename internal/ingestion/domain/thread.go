package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray is a custom type to handle JSON array in GORM
type StringArray []string

// Value implements driver.Valuer
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = []string{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*a = []string{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// EmailThread groups related messages under one subject. Created by
// ingestion, read-only for the audit pipeline.
type EmailThread struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Subject   string    `json:"subject" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []EmailMessage `json:"messages,omitempty" gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE"`
}

// EmailMessage is one ingested email. Immutable once created.
type EmailMessage struct {
	ID         string      `json:"id" gorm:"primaryKey"`
	ThreadID   string      `json:"thread_id" gorm:"index;not null"`
	MessageID  string      `json:"message_id" gorm:"uniqueIndex;not null"` // RFC 5322 Message-ID
	Sender     string      `json:"sender"`
	Recipients StringArray `json:"recipients" gorm:"type:text"`
	CC         StringArray `json:"cc,omitempty" gorm:"type:text"`
	BCC        StringArray `json:"bcc,omitempty" gorm:"type:text"`
	Date       *time.Time  `json:"date,omitempty"`
	Subject    string      `json:"subject"`
	BodyText   string      `json:"body_text" gorm:"type:text"`
	BodyHTML   string      `json:"body_html" gorm:"type:text"`
	RawContent string      `json:"-" gorm:"type:text"` // Raw .eml source
	ReceivedAt time.Time   `json:"received_at"`
}

// EvaluableContent resolves the content the pipeline sends to the LLM:
// plain text body first, HTML body as fallback, empty string when both
// are empty (the message is still evaluated).
func (m *EmailMessage) EvaluableContent() string {
	if m.BodyText != "" {
		return m.BodyText
	}
	return m.BodyHTML
}
