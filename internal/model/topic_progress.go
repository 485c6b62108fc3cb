package model

import (
	"time"
)

type ProgressStatus string

const (
	TopicNotStarted ProgressStatus = "not_started"
	TopicInProgress ProgressStatus = "in_progress"
	TopicCompleted  ProgressStatus = "completed"
)

// TopicProgress 学员在某个章节上的进度。按 (enrollment_id, topic_order) 唯一，
// 没有行即视为 not_started；状态只能单向推进，completed_at 取首次完成时间
// swagger:model TopicProgress
type TopicProgress struct {
	BaseModel
	EnrollmentID uint           `gorm:"index:idx_enrollment_topic,unique;not null" json:"enrollmentId"`
	TopicOrder   int            `gorm:"index:idx_enrollment_topic,unique;not null" json:"topicOrder"`
	Status       ProgressStatus `gorm:"size:20;default:'not_started'" json:"status"`
	LastViewedAt *time.Time     `json:"lastViewedAt,omitempty"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
}

func (TopicProgress) TableName() string {
	return "topic_progresses"
}
