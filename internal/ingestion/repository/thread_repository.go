package repository

import (
	"errors"
	"time"

	ingestiondomain "email-audit-backend/internal/ingestion/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// threadRepository implements ThreadRepository interface
type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new instance of threadRepository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{
		db: db,
	}
}

func (r *threadRepository) GetOrCreateBySubject(subject string) (*ingestiondomain.EmailThread, bool, error) {
	var thread ingestiondomain.EmailThread
	err := r.db.Where("subject = ?", subject).First(&thread).Error
	if err == nil {
		return &thread, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	thread = ingestiondomain.EmailThread{
		ID:        uuid.New().String(),
		Subject:   subject,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.Create(&thread).Error; err != nil {
		return nil, false, err
	}
	return &thread, true, nil
}

func (r *threadRepository) FindByID(id string) (*ingestiondomain.EmailThread, error) {
	var thread ingestiondomain.EmailThread
	err := r.db.Where("id = ?", id).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) FindByIDWithMessages(id string) (*ingestiondomain.EmailThread, error) {
	var thread ingestiondomain.EmailThread
	err := r.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("received_at ASC")
	}).Where("id = ?", id).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) List(limit, offset int) ([]*ingestiondomain.EmailThread, int64, error) {
	var threads []*ingestiondomain.EmailThread
	var total int64

	if err := r.db.Model(&ingestiondomain.EmailThread{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&threads).Error
	return threads, total, err
}
