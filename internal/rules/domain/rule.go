package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Severity is the ordinal severity of a compliance rule
type Severity int

const (
	SeverityLow    Severity = 1
	SeverityMedium Severity = 2
	SeverityHigh   Severity = 3
)

// JSONPayload stores an opaque JSON document in a text column
type JSONPayload map[string]interface{}

// Value implements driver.Valuer
func (p JSONPayload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *JSONPayload) Scan(value interface{}) error {
	if value == nil {
		*p = JSONPayload{}
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
		*p = JSONPayload{}
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// Rule is a named compliance check. The Description is used verbatim in the
// evaluation prompt. Definition is a structured rule payload reserved for a
// future rule engine; the evaluation logic does not consult it.
type Rule struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"uniqueIndex;not null"`
	Description string      `json:"description" gorm:"type:text;not null"`
	Severity    Severity    `json:"severity" gorm:"default:2"`
	Definition  JSONPayload `json:"definition" gorm:"type:text"`
	IsActive    bool        `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
