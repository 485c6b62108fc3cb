package service

import (
	"context"
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/util"
	"testing"
)

func TestStartTopicRequiresVerifiedPayment(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)

	enrollment, err := env.enrollment.SubmitPayment(context.Background(), 1, course.ID, makeScreenshot(t, "pay.png"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := env.progress.StartTopic(enrollment.ID, 1, 1); !errors.Is(err, util.ErrContentLocked) {
		t.Fatalf("unverified start: err = %v, want ErrContentLocked", err)
	}
}

func TestStartTopicMarksInProgress(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 3)

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)

	summary, err := env.progress.StartTopic(enrollment.ID, 1, 2)
	if err != nil {
		t.Fatalf("start topic: %v", err)
	}

	rows, err := env.progressRepo.ListByEnrollment(enrollment.ID)
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(rows) != 1 || rows[0].TopicOrder != 2 || rows[0].Status != model.TopicInProgress {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rows[0].LastViewedAt == nil {
		t.Error("last_viewed_at not set")
	}

	if summary.CompletedCount != 0 || summary.TopicCount != 3 || summary.PercentComplete != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.NextTopic == nil || summary.NextTopic.Order != 1 {
		t.Errorf("next topic = %+v, want order 1", summary.NextTopic)
	}
}

func TestCompleteTopicKeepsFirstCompletionTime(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)

	if _, err := env.progress.CompleteTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	rows, _ := env.progressRepo.ListByEnrollment(enrollment.ID)
	if len(rows) != 1 || rows[0].CompletedAt == nil {
		t.Fatalf("completed_at not recorded: %+v", rows)
	}
	first := *rows[0].CompletedAt

	if _, err := env.progress.CompleteTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	rows, _ = env.progressRepo.ListByEnrollment(enrollment.ID)
	if len(rows) != 1 {
		t.Fatalf("repeat complete created duplicate rows: %d", len(rows))
	}
	if !rows[0].CompletedAt.Equal(first) {
		t.Errorf("completed_at changed on repeat: %v -> %v", first, rows[0].CompletedAt)
	}
}

func TestStartDoesNotRegressCompletedTopic(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)

	if _, err := env.progress.CompleteTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := env.progress.StartTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("start after complete: %v", err)
	}

	rows, _ := env.progressRepo.ListByEnrollment(enrollment.ID)
	if rows[0].Status != model.TopicCompleted {
		t.Errorf("status regressed to %q", rows[0].Status)
	}
	if rows[0].CompletedAt == nil {
		t.Error("completed_at lost after re-start")
	}
}

func TestSummaryDerivedFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 4)

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)

	summary, err := env.progress.CompleteTopic(enrollment.ID, 1, 2)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if summary.TopicCount != 4 {
		t.Errorf("topic count = %d, want 4", summary.TopicCount)
	}
	if summary.CompletedCount != 1 {
		t.Errorf("completed count = %d, want 1", summary.CompletedCount)
	}
	if summary.PercentComplete != 25 {
		t.Errorf("percent = %d, want 25", summary.PercentComplete)
	}
	// 目录序最小的未完成章节
	if summary.NextTopic == nil || summary.NextTopic.Order != 1 {
		t.Errorf("next topic = %+v, want order 1", summary.NextTopic)
	}
}

func TestSummaryRoundsPercent(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 3)

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)

	summary, err := env.progress.CompleteTopic(enrollment.ID, 1, 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	// 1/3 -> 33.33 四舍五入
	if summary.PercentComplete != 33 {
		t.Errorf("percent = %d, want 33", summary.PercentComplete)
	}

	summary, err = env.progress.CompleteTopic(enrollment.ID, 1, 2)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if summary.PercentComplete != 67 {
		t.Errorf("percent = %d, want 67", summary.PercentComplete)
	}
}

func TestTopicOrderOutsideCatalog(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)

	if _, err := env.progress.StartTopic(enrollment.ID, 1, 5); !errors.Is(err, util.ErrTopicNotFound) {
		t.Errorf("out of range start: err = %v, want ErrTopicNotFound", err)
	}
	if _, err := env.progress.CompleteTopic(enrollment.ID, 1, 0); !errors.Is(err, util.ErrTopicNotFound) {
		t.Errorf("zero order complete: err = %v, want ErrTopicNotFound", err)
	}
}

func TestProgressOwnershipAndCourseType(t *testing.T) {
	env := newTestEnv(t)
	selfPaced := env.createSelfPacedCourse(t, 1)
	guided := env.createGuidedCourse(t)

	enrollment := env.submitAndApprove(t, 1, selfPaced.ID, 99)
	if _, err := env.progress.StartTopic(enrollment.ID, 2, 1); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("stranger start: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := env.progress.StartTopic(404, 1, 1); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Errorf("missing enrollment: err = %v, want ErrEnrollmentNotFound", err)
	}

	guidedEnrollment := env.submitAndApprove(t, 1, guided.ID, 99)
	if _, err := env.progress.StartTopic(guidedEnrollment.ID, 1, 1); !errors.Is(err, util.ErrCourseNotSelfPaced) {
		t.Errorf("guided start: err = %v, want ErrCourseNotSelfPaced", err)
	}
}

func TestCompletingAllTopicsFinishesEnrollment(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)

	if _, err := env.progress.CompleteTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("complete 1: %v", err)
	}
	current, _ := env.enrollRepo.FindByID(enrollment.ID)
	if current.Status != model.EnrollmentActive {
		t.Fatalf("status = %q before finishing, want active", current.Status)
	}

	summary, err := env.progress.CompleteTopic(enrollment.ID, 1, 2)
	if err != nil {
		t.Fatalf("complete 2: %v", err)
	}
	if summary.PercentComplete != 100 || summary.NextTopic != nil {
		t.Errorf("summary = %+v", summary)
	}

	current, _ = env.enrollRepo.FindByID(enrollment.ID)
	if current.Status != model.EnrollmentCompleted {
		t.Errorf("status = %q, want completed", current.Status)
	}
}

func TestResubmissionPreservesProgress(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)
	ctx := context.Background()

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)
	if _, err := env.progress.CompleteTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// 重新提交凭证回到未验证，但已有进度不丢
	if _, err := env.enrollment.SubmitPayment(ctx, 1, course.ID, makeScreenshot(t, "new.png")); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	if _, err := env.progress.StartTopic(enrollment.ID, 1, 2); !errors.Is(err, util.ErrContentLocked) {
		t.Fatalf("locked start: err = %v, want ErrContentLocked", err)
	}

	summary, err := env.progress.Summarize(enrollment.ID)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.CompletedCount != 1 {
		t.Errorf("completed count after resubmit = %d, want 1", summary.CompletedCount)
	}
}
