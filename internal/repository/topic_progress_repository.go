package repository

import (
	"fitacademy_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicProgressRepository struct {
	DB *gorm.DB
}

func NewTopicProgressRepository(db *gorm.DB) *TopicProgressRepository {
	return &TopicProgressRepository{DB: db}
}

func (r *TopicProgressRepository) ListByEnrollment(enrollmentID uint) ([]model.TopicProgress, error) {
	var rows []model.TopicProgress
	err := r.DB.Where("enrollment_id = ?", enrollmentID).
		Order("topic_order ASC").Find(&rows).Error
	return rows, err
}

// UpsertStart 标记章节开始学习。单条带 ON CONFLICT 的语句，
// 并发 start/complete 不会产生重复行；已完成的章节只刷新 last_viewed_at
func (r *TopicProgressRepository) UpsertStart(enrollmentID uint, topicOrder int, now time.Time) error {
	row := model.TopicProgress{
		EnrollmentID: enrollmentID,
		TopicOrder:   topicOrder,
		Status:       model.TopicInProgress,
		LastViewedAt: &now,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "enrollment_id"}, {Name: "topic_order"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":         gorm.Expr("CASE WHEN status = 'completed' THEN status ELSE 'in_progress' END"),
			"last_viewed_at": now,
			"updated_at":     now,
		}),
	}).Create(&row).Error
}

// UpsertComplete 标记章节完成。completed_at 用 COALESCE 保留首次完成时间
func (r *TopicProgressRepository) UpsertComplete(enrollmentID uint, topicOrder int, now time.Time) error {
	row := model.TopicProgress{
		EnrollmentID: enrollmentID,
		TopicOrder:   topicOrder,
		Status:       model.TopicCompleted,
		LastViewedAt: &now,
		CompletedAt:  &now,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "enrollment_id"}, {Name: "topic_order"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":         model.TopicCompleted,
			"completed_at":   gorm.Expr("COALESCE(completed_at, ?)", now),
			"last_viewed_at": now,
			"updated_at":     now,
		}),
	}).Create(&row).Error
}
