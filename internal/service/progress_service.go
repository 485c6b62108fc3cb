package service

import (
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/internal/util"
	"math"
	"time"

	"gorm.io/gorm"
)

// ProgressSummary 读取时派生的进度汇总，没有任何落库的聚合字段
type ProgressSummary struct {
	CompletedCount  int        `json:"completedCount"`
	TopicCount      int        `json:"topicCount"`
	PercentComplete int        `json:"percentComplete"`
	NextTopic       *NextTopic `json:"nextTopic"`
}

// NextTopic 推荐继续学习的章节：order 最小的未完成章节
type NextTopic struct {
	Order int    `json:"order"`
	Title string `json:"title"`
}

// ProgressService 记录章节级进度事件。所有写入要求报名归属本人、
// 课程为自学类型、且付款已验证
type ProgressService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.TopicProgressRepository
	CourseService  *CourseService
}

func NewProgressService(
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.TopicProgressRepository,
	courseService *CourseService,
) *ProgressService {
	return &ProgressService{
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		CourseService:  courseService,
	}
}

// guard 校验进度写入的全部前置条件，通过后返回报名行和课程结构
func (s *ProgressService) guard(enrollmentID, userID uint, topicOrder int) (*model.Enrollment, *model.Course, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if enrollment.UserID != userID {
		return nil, nil, util.ErrPermissionDenied
	}

	course, err := s.CourseService.CourseRepo.FindByID(enrollment.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if course.Type != model.SelfPaced {
		return nil, nil, util.ErrCourseNotSelfPaced
	}

	// 锁定状态下的进度写入直接拒绝，而不是静默接受
	if !enrollment.PaymentVerified {
		return nil, nil, util.ErrContentLocked
	}

	found := false
	for _, topic := range course.Topics {
		if topic.Order == topicOrder {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, util.ErrTopicNotFound
	}

	return enrollment, course, nil
}

// StartTopic 标记章节开始。重复调用只刷新 last_viewed_at，已完成的章节不会回退
func (s *ProgressService) StartTopic(enrollmentID, userID uint, topicOrder int) (*ProgressSummary, error) {
	_, course, err := s.guard(enrollmentID, userID, topicOrder)
	if err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.UpsertStart(enrollmentID, topicOrder, time.Now()); err != nil {
		return nil, err
	}

	return s.summarize(enrollmentID, course)
}

// CompleteTopic 标记章节完成。completed_at 只在首次完成时写入；
// 全部章节完成后报名状态推进为 completed
func (s *ProgressService) CompleteTopic(enrollmentID, userID uint, topicOrder int) (*ProgressSummary, error) {
	enrollment, course, err := s.guard(enrollmentID, userID, topicOrder)
	if err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.UpsertComplete(enrollmentID, topicOrder, time.Now()); err != nil {
		return nil, err
	}

	summary, err := s.summarize(enrollmentID, course)
	if err != nil {
		return nil, err
	}

	if summary.TopicCount > 0 && summary.CompletedCount == summary.TopicCount &&
		enrollment.Status == model.EnrollmentActive {
		if err := s.EnrollmentRepo.UpdateStatus(enrollmentID, model.EnrollmentCompleted); err != nil {
			return nil, err
		}
	}

	return summary, nil
}

// Summarize 对外的只读汇总入口
func (s *ProgressService) Summarize(enrollmentID uint) (*ProgressSummary, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}

	course, err := s.CourseService.CourseRepo.FindByID(enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	return s.summarize(enrollmentID, course)
}

func (s *ProgressService) summarize(enrollmentID uint, course *model.Course) (*ProgressSummary, error) {
	rows, err := s.ProgressRepo.ListByEnrollment(enrollmentID)
	if err != nil {
		return nil, err
	}
	return summarizeProgress(course, rows), nil
}

// summarizeProgress 纯函数：章节总数来自课程目录而不是进度行数，
// 没有进度行的章节按 not_started 计算
func summarizeProgress(course *model.Course, rows []model.TopicProgress) *ProgressSummary {
	byOrder := make(map[int]model.TopicProgress, len(rows))
	for _, row := range rows {
		byOrder[row.TopicOrder] = row
	}

	summary := &ProgressSummary{TopicCount: len(course.Topics)}
	for _, topic := range course.Topics {
		if row, ok := byOrder[topic.Order]; ok && row.Status == model.TopicCompleted {
			summary.CompletedCount++
			continue
		}
		if summary.NextTopic == nil {
			summary.NextTopic = &NextTopic{Order: topic.Order, Title: topic.Title}
		}
	}

	if summary.TopicCount > 0 {
		summary.PercentComplete = int(math.Round(100 * float64(summary.CompletedCount) / float64(summary.TopicCount)))
	}

	return summary
}
