package service

import (
	"context"
	"encoding/json"
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/internal/util"
	"fitacademy_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCacheKeyPrefix = "course:"
	courseCacheTTL       = 10 * time.Minute

	lockReasonUnverified = "付款凭证尚未通过审核，课程内容暂不可见"
)

// CourseService 课程目录的读写方，同时是章节内容出口的唯一门禁。
// 任何把 Topic.Content 交给学员的路径都必须经过 buildCourseView
type CourseService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.TopicProgressRepository
	Redis        *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, progressRepo *repository.TopicProgressRepository, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

// TopicView 单个章节的展示结构。锁定时 Content 为空、Subtopics 为 nil
type TopicView struct {
	Order        int                  `json:"order"`
	Title        string               `json:"title"`
	Duration     string               `json:"duration"`
	Content      string               `json:"content,omitempty"`
	Subtopics    []string             `json:"subtopics,omitempty"`
	Status       model.ProgressStatus `json:"status,omitempty"`
	LastViewedAt *time.Time           `json:"lastViewedAt,omitempty"`
	CompletedAt  *time.Time           `json:"completedAt,omitempty"`
}

// CourseView 门禁输出：课程元数据始终可见，内容字段按验证状态裁剪
type CourseView struct {
	CourseID      uint                    `json:"courseId"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Objectives    string                  `json:"objectives"`
	Type          model.CourseType        `json:"type"`
	ContentLocked bool                    `json:"contentLocked"`
	LockReason    string                  `json:"lockReason,omitempty"`
	Topics        []TopicView             `json:"topics,omitempty"`
	Syllabus      []model.SyllabusSession `json:"syllabus,omitempty"`
	Progress      *ProgressSummary        `json:"progress,omitempty"`
}

// GetCourse 带 Redis 缓存的课程读取。缓存不可用时直接回源
func (s *CourseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	key := fmt.Sprintf("%s%d", courseCacheKeyPrefix, id)

	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var course model.Course
			if err := json.Unmarshal([]byte(raw), &course); err == nil {
				return &course, nil
			}
		}
	}

	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(course); err == nil {
			if err := s.Redis.Set(ctx, key, raw, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache course", zap.Uint("courseId", id), zap.Error(err))
			}
		}
	}

	return course, nil
}

func (s *CourseService) invalidate(ctx context.Context, id uint) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("%s%d", courseCacheKeyPrefix, id)
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("failed to invalidate course cache", zap.Uint("courseId", id), zap.Error(err))
	}
}

func (s *CourseService) ListCourses(page, limit int, publishedOnly bool, search string) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit, publishedOnly, search)
}

func (s *CourseService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *CourseService) UpdateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Update(course); err != nil {
		return err
	}
	s.invalidate(ctx, course.ID)
	return nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.CourseRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// ViewForEnrollment 按报名的验证状态渲染课程。
// 自学课程未验证时锁定；带教课程没有被门禁的内容字段，始终直通
func (s *CourseService) ViewForEnrollment(ctx context.Context, enrollment *model.Enrollment) (*CourseView, error) {
	course, err := s.GetCourse(ctx, enrollment.CourseID)
	if err != nil {
		return nil, err
	}

	if course.Type != model.SelfPaced {
		return buildCourseView(course, false, nil, nil), nil
	}

	if !enrollment.PaymentVerified {
		return buildCourseView(course, true, nil, nil), nil
	}

	rows, err := s.ProgressRepo.ListByEnrollment(enrollment.ID)
	if err != nil {
		return nil, err
	}
	return buildCourseView(course, false, rows, summarizeProgress(course, rows)), nil
}

// PublicView 目录详情的公开视图：等同于锁定渲染，未报名读者永远看不到内容体
func (s *CourseService) PublicView(ctx context.Context, courseID uint) (*CourseView, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	locked := course.Type == model.SelfPaced
	return buildCourseView(course, locked, nil, nil), nil
}

// buildCourseView 是章节内容的唯一出口。locked 时内容体和子章节一律清空
func buildCourseView(course *model.Course, locked bool, rows []model.TopicProgress, summary *ProgressSummary) *CourseView {
	view := &CourseView{
		CourseID:      course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Objectives:    course.Objectives,
		Type:          course.Type,
		ContentLocked: locked,
	}
	if locked {
		view.LockReason = lockReasonUnverified
	}

	if course.Type == model.Guided {
		view.Syllabus = course.Syllabus
		return view
	}

	byOrder := make(map[int]model.TopicProgress, len(rows))
	for _, row := range rows {
		byOrder[row.TopicOrder] = row
	}

	view.Topics = make([]TopicView, 0, len(course.Topics))
	for _, topic := range course.Topics {
		tv := TopicView{
			Order:    topic.Order,
			Title:    topic.Title,
			Duration: topic.Duration,
		}
		if !locked {
			tv.Content = topic.Content
			for _, sub := range topic.Subtopics {
				tv.Subtopics = append(tv.Subtopics, sub.Title)
			}
			tv.Status = model.TopicNotStarted
			if row, ok := byOrder[topic.Order]; ok {
				tv.Status = row.Status
				tv.LastViewedAt = row.LastViewedAt
				tv.CompletedAt = row.CompletedAt
			}
		}
		view.Topics = append(view.Topics, tv)
	}

	view.Progress = summary
	return view
}
