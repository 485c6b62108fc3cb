package repository

import (
	"fitacademy_backend/internal/model"

	"gorm.io/gorm"
)

type ProgramRepository struct {
	DB *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{DB: db}
}

func (r *ProgramRepository) Create(program *model.Program) error {
	return r.DB.Create(program).Error
}

func (r *ProgramRepository) FindByID(id uint) (*model.Program, error) {
	var program model.Program
	err := r.DB.First(&program, id).Error
	return &program, err
}

func (r *ProgramRepository) List(page, limit int, activeOnly bool) ([]model.Program, int64, error) {
	var programs []model.Program
	var total int64

	query := r.DB.Model(&model.Program{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&programs).Error
	return programs, total, err
}

func (r *ProgramRepository) Update(program *model.Program) error {
	return r.DB.Save(program).Error
}

func (r *ProgramRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Program{}, id).Error
}
