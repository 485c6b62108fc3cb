package repository

import (
	"fitacademy_backend/internal/model"

	"gorm.io/gorm"
)

type ContactRepository struct {
	DB *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(message *model.ContactMessage) error {
	return r.DB.Create(message).Error
}

func (r *ContactRepository) List(page, limit int, unreadOnly bool) ([]model.ContactMessage, int64, error) {
	var messages []model.ContactMessage
	var total int64

	query := r.DB.Model(&model.ContactMessage{})
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *ContactRepository) MarkRead(id uint) error {
	return r.DB.Model(&model.ContactMessage{}).Where("id = ?", id).
		Update("read", true).Error
}

func (r *ContactRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ContactMessage{}, id).Error
}
