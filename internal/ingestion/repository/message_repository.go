package repository

import (
	"errors"
	"time"

	ingestiondomain "email-audit-backend/internal/ingestion/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of messageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) CreateIfAbsent(msg *ingestiondomain.EmailMessage) (bool, error) {
	var existing ingestiondomain.EmailMessage
	err := r.db.Where("message_id = ?", msg.MessageID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.ReceivedAt = time.Now()
	if err := r.db.Create(msg).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *messageRepository) FindByThreadID(threadID string) ([]*ingestiondomain.EmailMessage, error) {
	var messages []*ingestiondomain.EmailMessage
	err := r.db.Where("thread_id = ?", threadID).Order("received_at ASC").Find(&messages).Error
	return messages, err
}

func (r *messageRepository) CountByThreadID(threadID string) (int64, error) {
	var count int64
	err := r.db.Model(&ingestiondomain.EmailMessage{}).Where("thread_id = ?", threadID).Count(&count).Error
	return count, err
}
