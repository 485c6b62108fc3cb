package service

import (
	"context"
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/internal/util"
	"fitacademy_backend/pkg/logger"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 管理员审核决定
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// EnrollmentService 管理报名生命周期：凭证提交、查询、管理员审核、级联删除。
// payment_verified 只会被这里的 Verify 写入，内容门禁和进度模块只读它
type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Storage        *StorageService
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	storage *StorageService,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Storage:        storage,
	}
}

// SubmitPayment 提交付款截图。没有报名行时创建，有则替换截图并把
// 审核状态整体重置为未验证。截图先落存储，报名行更新成功后才清理旧文件
func (s *EnrollmentService) SubmitPayment(ctx context.Context, userID, courseID uint, file *multipart.FileHeader) (*model.Enrollment, error) {
	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrCourseNotFound
	}

	if file == nil {
		return nil, util.ErrScreenshotRequired
	}
	if file.Size > util.MaxScreenshotSize {
		return nil, util.ErrScreenshotTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 深度验证 MIME 类型，只接受图片
	contentType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return nil, fmt.Errorf("非法的文件内容: %w", err)
	}
	// 重置读取指针
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("payments/%d_%d_%s_%s%s",
		userID, courseID, time.Now().Format("20060102150405"), util.GenerateRandomString(6), ext)

	stored, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return nil, err
	}

	return s.recordSubmission(ctx, userID, courseID, stored)
}

// recordSubmission 截图已持久化之后创建或更新报名行。
// 并发创建撞 (user_id, course_id) 唯一索引时按更新路径重试一次
func (s *EnrollmentService) recordSubmission(ctx context.Context, userID, courseID uint, stored string) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		enrollment = &model.Enrollment{
			UserID:            userID,
			CourseID:          courseID,
			Status:            model.EnrollmentActive,
			PaymentScreenshot: stored,
			EnrollmentDate:    time.Now(),
		}
		err = s.EnrollmentRepo.Create(enrollment)
		if err == nil {
			return enrollment, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// 另一个并发请求先插入了，改走更新路径
		enrollment, err = s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	}
	if err != nil {
		return nil, err
	}

	previous := enrollment.PaymentScreenshot
	if err := s.EnrollmentRepo.AttachScreenshot(enrollment.ID, stored); err != nil {
		return nil, err
	}

	// 旧截图清理是尽力而为，失败不影响本次提交
	if previous != "" && previous != stored {
		if err := s.Storage.Delete(ctx, previous); err != nil {
			logger.Log.Warn("failed to delete stale payment screenshot",
				zap.String("path", previous), zap.Error(err))
		}
	}

	return s.EnrollmentRepo.FindByID(enrollment.ID)
}

// GetEnrollment 只允许本人查询，其他人一律 permission denied，不暴露是否存在
func (s *EnrollmentService) GetEnrollment(enrollmentID, userID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if enrollment.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListByUser(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}

func (s *EnrollmentService) List(page, limit int) ([]model.Enrollment, int64, error) {
	return s.EnrollmentRepo.List(page, limit)
}

// Verify 管理员审核。approve 幂等：对已通过的报名重复调用不改变时间戳；
// reject 清空全部验证字段但保留截图，驳回原因可选
func (s *EnrollmentService) Verify(enrollmentID, adminID uint, decision, reason string) (*model.Enrollment, error) {
	if _, err := s.EnrollmentRepo.FindByID(enrollmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}

	switch decision {
	case DecisionApprove:
		updated, err := s.EnrollmentRepo.Approve(enrollmentID, adminID, time.Now())
		if err != nil {
			return nil, err
		}
		if !updated {
			logger.Log.Info("enrollment already approved, decision is a no-op",
				zap.Uint("enrollmentId", enrollmentID))
		}
	case DecisionReject:
		if err := s.EnrollmentRepo.Reject(enrollmentID, reason); err != nil {
			return nil, err
		}
	default:
		return nil, util.ErrInvalidDecision
	}

	return s.EnrollmentRepo.FindByID(enrollmentID)
}

// Delete 管理员级联删除：进度行和报名行在一个事务里删掉，
// 截图文件随后尽力清理
func (s *EnrollmentService) Delete(ctx context.Context, enrollmentID uint) error {
	screenshot, err := s.EnrollmentRepo.DeleteWithProgress(enrollmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrEnrollmentNotFound
	}
	if err != nil {
		return err
	}

	if screenshot != "" {
		if err := s.Storage.Delete(ctx, screenshot); err != nil {
			logger.Log.Warn("failed to delete payment screenshot of removed enrollment",
				zap.String("path", screenshot), zap.Error(err))
		}
	}
	return nil
}
