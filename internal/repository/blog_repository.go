package repository

import (
	"fitacademy_backend/internal/model"

	"gorm.io/gorm"
)

type BlogRepository struct {
	DB *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{DB: db}
}

func (r *BlogRepository) Create(blog *model.Blog) error {
	return r.DB.Create(blog).Error
}

func (r *BlogRepository) FindByID(id uint) (*model.Blog, error) {
	var blog model.Blog
	err := r.DB.First(&blog, id).Error
	return &blog, err
}

func (r *BlogRepository) List(page, limit int, publishedOnly bool, search string) ([]model.Blog, int64, error) {
	var blogs []model.Blog
	var total int64

	query := r.DB.Model(&model.Blog{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error
	return blogs, total, err
}

func (r *BlogRepository) Update(blog *model.Blog) error {
	return r.DB.Save(blog).Error
}

func (r *BlogRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Blog{}, id).Error
}
