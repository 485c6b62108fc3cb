package service

import (
	"context"
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/util"
	"mime/multipart"
	"testing"
)

func TestSubmitPaymentCreatesEnrollment(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 3)

	enrollment, err := env.enrollment.SubmitPayment(context.Background(), 1, course.ID, makeScreenshot(t, "pay.png"))
	if err != nil {
		t.Fatalf("submit payment: %v", err)
	}

	if enrollment.Status != model.EnrollmentActive {
		t.Errorf("status = %q, want %q", enrollment.Status, model.EnrollmentActive)
	}
	if enrollment.PaymentVerified {
		t.Error("new enrollment must not be verified")
	}
	if enrollment.PaymentScreenshot == "" {
		t.Error("screenshot path not recorded")
	}
	if _, ok := env.storage.files[enrollment.PaymentScreenshot]; !ok {
		t.Errorf("screenshot %q not in storage", enrollment.PaymentScreenshot)
	}
}

func TestSubmitPaymentUnknownCourse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.enrollment.SubmitPayment(context.Background(), 1, 999, makeScreenshot(t, "pay.png"))
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestSubmitPaymentMissingScreenshot(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)

	_, err := env.enrollment.SubmitPayment(context.Background(), 1, course.ID, nil)
	if !errors.Is(err, util.ErrScreenshotRequired) {
		t.Fatalf("err = %v, want ErrScreenshotRequired", err)
	}
}

func TestSubmitPaymentScreenshotTooLarge(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)

	oversized := &multipart.FileHeader{Filename: "big.png", Size: util.MaxScreenshotSize + 1}
	_, err := env.enrollment.SubmitPayment(context.Background(), 1, course.ID, oversized)
	if !errors.Is(err, util.ErrScreenshotTooLarge) {
		t.Fatalf("err = %v, want ErrScreenshotTooLarge", err)
	}
}

func TestSubmitPaymentUniquePerUserAndCourse(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)
	ctx := context.Background()

	first, err := env.enrollment.SubmitPayment(ctx, 1, course.ID, makeScreenshot(t, "a.png"))
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := env.enrollment.SubmitPayment(ctx, 1, course.ID, makeScreenshot(t, "b.png"))
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("resubmission created a new row: %d then %d", first.ID, second.ID)
	}

	var count int64
	env.db.Model(&model.Enrollment{}).Where("user_id = ? AND course_id = ?", 1, course.ID).Count(&count)
	if count != 1 {
		t.Errorf("enrollment rows = %d, want 1", count)
	}
}

func TestResubmissionResetsVerification(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)
	ctx := context.Background()

	approved := env.submitAndApprove(t, 1, course.ID, 99)
	previous := approved.PaymentScreenshot

	resubmitted, err := env.enrollment.SubmitPayment(ctx, 1, course.ID, makeScreenshot(t, "new.png"))
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	if resubmitted.PaymentVerified {
		t.Error("resubmission must reset payment_verified")
	}
	if resubmitted.PaymentVerifiedAt != nil {
		t.Error("resubmission must clear payment_verified_at")
	}
	if resubmitted.VerifiedBy != nil {
		t.Error("resubmission must clear verified_by")
	}
	if resubmitted.IsPaid {
		t.Error("resubmission must clear is_paid")
	}
	if resubmitted.PaymentScreenshot == previous {
		t.Error("screenshot was not replaced")
	}
	if !env.storage.hasDeleted(previous) {
		t.Errorf("stale screenshot %q was not cleaned up", previous)
	}
}

func TestVerifyApproveIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)

	first := env.submitAndApprove(t, 1, course.ID, 99)
	if !first.PaymentVerified {
		t.Fatal("approve did not set payment_verified")
	}
	if first.PaymentVerifiedAt == nil || first.VerifiedBy == nil {
		t.Fatal("approve did not record timestamp and admin")
	}

	// 第二个管理员重复审核，时间戳和审核人保持首次的值
	second, err := env.enrollment.Verify(first.ID, 100, DecisionApprove, "")
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}
	if !second.PaymentVerifiedAt.Equal(*first.PaymentVerifiedAt) {
		t.Errorf("verified_at changed on repeat approve: %v -> %v", first.PaymentVerifiedAt, second.PaymentVerifiedAt)
	}
	if *second.VerifiedBy != *first.VerifiedBy {
		t.Errorf("verified_by changed on repeat approve: %d -> %d", *first.VerifiedBy, *second.VerifiedBy)
	}
}

func TestVerifyRejectKeepsScreenshot(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)

	approved := env.submitAndApprove(t, 1, course.ID, 99)

	rejected, err := env.enrollment.Verify(approved.ID, 99, DecisionReject, "截图模糊")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	if rejected.PaymentVerified {
		t.Error("reject must clear payment_verified")
	}
	if rejected.PaymentVerifiedAt != nil || rejected.VerifiedBy != nil {
		t.Error("reject must clear verification metadata")
	}
	if rejected.RejectReason != "截图模糊" {
		t.Errorf("reject_reason = %q", rejected.RejectReason)
	}
	if rejected.PaymentScreenshot != approved.PaymentScreenshot {
		t.Error("reject must keep the submitted screenshot")
	}
}

func TestVerifyErrors(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)

	if _, err := env.enrollment.Verify(404, 99, DecisionApprove, ""); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Errorf("unknown enrollment: err = %v, want ErrEnrollmentNotFound", err)
	}

	enrollment, err := env.enrollment.SubmitPayment(context.Background(), 1, course.ID, makeScreenshot(t, "pay.png"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.enrollment.Verify(enrollment.ID, 99, "maybe", ""); !errors.Is(err, util.ErrInvalidDecision) {
		t.Errorf("bad decision: err = %v, want ErrInvalidDecision", err)
	}
}

func TestGetEnrollmentOwnership(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 1)

	enrollment, err := env.enrollment.SubmitPayment(context.Background(), 1, course.ID, makeScreenshot(t, "pay.png"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := env.enrollment.GetEnrollment(enrollment.ID, 1); err != nil {
		t.Errorf("owner read: %v", err)
	}
	if _, err := env.enrollment.GetEnrollment(enrollment.ID, 2); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("stranger read: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := env.enrollment.GetEnrollment(404, 1); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Errorf("missing read: err = %v, want ErrEnrollmentNotFound", err)
	}
}

func TestDeleteCascadesAndFreesSlot(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)
	ctx := context.Background()

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)
	if _, err := env.progress.StartTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("start topic: %v", err)
	}
	screenshot := enrollment.PaymentScreenshot

	if err := env.enrollment.Delete(ctx, enrollment.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var progressCount int64
	env.db.Model(&model.TopicProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&progressCount)
	if progressCount != 0 {
		t.Errorf("progress rows left after delete: %d", progressCount)
	}
	if !env.storage.hasDeleted(screenshot) {
		t.Errorf("screenshot %q not cleaned up", screenshot)
	}

	// (user, course) 槽位已释放，可以重新报名
	fresh, err := env.enrollment.SubmitPayment(ctx, 1, course.ID, makeScreenshot(t, "again.png"))
	if err != nil {
		t.Fatalf("re-enroll after delete: %v", err)
	}
	if fresh.PaymentVerified {
		t.Error("fresh enrollment must start unverified")
	}

	if err := env.enrollment.Delete(ctx, 404); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Errorf("delete missing: err = %v, want ErrEnrollmentNotFound", err)
	}
}
