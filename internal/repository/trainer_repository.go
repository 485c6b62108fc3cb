package repository

import (
	"fitacademy_backend/internal/model"

	"gorm.io/gorm"
)

type TrainerRepository struct {
	DB *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) *TrainerRepository {
	return &TrainerRepository{DB: db}
}

func (r *TrainerRepository) Create(trainer *model.Trainer) error {
	return r.DB.Create(trainer).Error
}

func (r *TrainerRepository) FindByID(id uint) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.DB.First(&trainer, id).Error
	return &trainer, err
}

func (r *TrainerRepository) List(page, limit int, visibleOnly bool) ([]model.Trainer, int64, error) {
	var trainers []model.Trainer
	var total int64

	query := r.DB.Model(&model.Trainer{})
	if visibleOnly {
		query = query.Where("visible = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&trainers).Error
	return trainers, total, err
}

func (r *TrainerRepository) Update(trainer *model.Trainer) error {
	return r.DB.Save(trainer).Error
}

func (r *TrainerRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Trainer{}, id).Error
}
