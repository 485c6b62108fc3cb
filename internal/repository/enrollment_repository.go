package repository

import (
	"fitacademy_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.First(&enrollment, id).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Order("enrollment_date DESC").Find(&enrollments).Error
	return enrollments, err
}

// AttachScreenshot 替换付款截图并重置全部审核字段。
// 必须是单条 UPDATE：重新提交和管理员审核可能并发，五个支付字段要一起落库
func (r *EnrollmentRepository) AttachScreenshot(id uint, path string) error {
	return r.DB.Model(&model.Enrollment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_screenshot":  path,
			"payment_verified":    false,
			"payment_verified_at": nil,
			"verified_by":         nil,
			"is_paid":             false,
			"reject_reason":       "",
		}).Error
}

// Approve 审核通过。WHERE 里带 payment_verified = false，
// 重复审核不会改动已有的时间戳；返回是否真的更新了行
func (r *EnrollmentRepository) Approve(id uint, adminID uint, at time.Time) (bool, error) {
	result := r.DB.Model(&model.Enrollment{}).
		Where("id = ? AND payment_verified = ?", id, false).
		Updates(map[string]interface{}{
			"payment_verified":    true,
			"payment_verified_at": at,
			"verified_by":         adminID,
			"is_paid":             true,
			"reject_reason":       "",
		})
	return result.RowsAffected > 0, result.Error
}

// Reject 审核驳回。截图保留，便于对照已提交凭证追溯审核决定
func (r *EnrollmentRepository) Reject(id uint, reason string) error {
	return r.DB.Model(&model.Enrollment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_verified":    false,
			"payment_verified_at": nil,
			"verified_by":         nil,
			"is_paid":             false,
			"reject_reason":       reason,
		}).Error
}

// DeleteWithProgress 级联删除报名及其全部进度行，返回截图路径供调用方清理文件
func (r *EnrollmentRepository) DeleteWithProgress(id uint) (string, error) {
	var enrollment model.Enrollment
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&enrollment, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("enrollment_id = ?", id).Delete(&model.TopicProgress{}).Error; err != nil {
			return err
		}
		// 物理删除，报名占用的 (user, course) 唯一槽位要能重新使用
		return tx.Unscoped().Delete(&enrollment).Error
	})
	if err != nil {
		return "", err
	}
	return enrollment.PaymentScreenshot, nil
}

func (r *EnrollmentRepository) List(page, limit int) ([]model.Enrollment, int64, error) {
	var enrollments []model.Enrollment
	var total int64

	if err := r.DB.Model(&model.Enrollment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("enrollment_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&enrollments).Error
	return enrollments, total, err
}

func (r *EnrollmentRepository) UpdateStatus(id uint, status model.EnrollmentStatus) error {
	return r.DB.Model(&model.Enrollment{}).Where("id = ?", id).
		Update("status", status).Error
}
