package repository

import (
	"fitacademy_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// FindByID 加载课程及其有序章节/大纲。报名核心只读这份结构
func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Order("topic_order ASC")
		}).
		Preload("Topics.Subtopics", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtopic_order ASC")
		}).
		Preload("Syllabus", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_order ASC")
		}).
		First(&course, id).Error
	return &course, err
}

// Exists 只检查课程是否存在，报名提交路径不需要完整结构
func (r *CourseRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) List(page, limit int, publishedOnly bool, search string) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "course_id", "topic_order", "title", "duration").Order("topic_order ASC")
		}).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// Update 全量替换课程结构：章节和大纲先删后建，保证 order 索引连续
func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var topicIDs []uint
		if err := tx.Model(&model.Topic{}).Where("course_id = ?", course.ID).
			Pluck("id", &topicIDs).Error; err != nil {
			return err
		}
		if len(topicIDs) > 0 {
			if err := tx.Unscoped().Where("topic_id IN ?", topicIDs).
				Delete(&model.Subtopic{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("course_id = ?", course.ID).
			Delete(&model.Topic{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", course.ID).
			Delete(&model.SyllabusSession{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(course).Error
	})
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var topicIDs []uint
		if err := tx.Model(&model.Topic{}).Where("course_id = ?", id).
			Pluck("id", &topicIDs).Error; err != nil {
			return err
		}
		if len(topicIDs) > 0 {
			if err := tx.Unscoped().Where("topic_id IN ?", topicIDs).
				Delete(&model.Subtopic{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("course_id = ?", id).
			Delete(&model.Topic{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", id).
			Delete(&model.SyllabusSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}
