package repository

import (
	"fitacademy_backend/internal/model"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	DB *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{DB: db}
}

func (r *GalleryRepository) Create(item *model.GalleryItem) error {
	return r.DB.Create(item).Error
}

func (r *GalleryRepository) FindByID(id uint) (*model.GalleryItem, error) {
	var item model.GalleryItem
	err := r.DB.First(&item, id).Error
	return &item, err
}

func (r *GalleryRepository) List(page, limit int, mediaType string) ([]model.GalleryItem, int64, error) {
	var items []model.GalleryItem
	var total int64

	query := r.DB.Model(&model.GalleryItem{})
	if mediaType != "" {
		query = query.Where("type = ?", mediaType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *GalleryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.GalleryItem{}, id).Error
}
