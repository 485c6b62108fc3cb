package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment 学员与课程的报名关系，唯一索引保证每对 (user, course) 只有一行。
// PaymentVerifiedAt/VerifiedBy 只在 PaymentVerified 为 true 时有值，
// 审核与重新提交都通过单条 UPDATE 同时写全部支付字段
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID            uint             `gorm:"index:idx_user_course,unique;not null" json:"userId"`
	CourseID          uint             `gorm:"index:idx_user_course,unique;not null" json:"courseId"`
	Status            EnrollmentStatus `gorm:"size:20;default:'active'" json:"status"`
	IsPaid            bool             `gorm:"default:false" json:"isPaid"`
	PaymentScreenshot string           `gorm:"size:255" json:"paymentScreenshot,omitempty"`
	PaymentVerified   bool             `gorm:"default:false" json:"paymentVerified"`
	PaymentVerifiedAt *time.Time       `json:"paymentVerifiedAt,omitempty"`
	VerifiedBy        *uint            `json:"verifiedBy,omitempty"`
	RejectReason      string           `gorm:"size:500" json:"rejectReason,omitempty"`
	EnrollmentDate    time.Time        `json:"enrollmentDate"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
