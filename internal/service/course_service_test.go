package service

import (
	"context"
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/util"
	"testing"
)

func TestViewForEnrollmentLockedHidesContent(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)
	ctx := context.Background()

	enrollment, err := env.enrollment.SubmitPayment(ctx, 1, course.ID, makeScreenshot(t, "pay.png"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	view, err := env.course.ViewForEnrollment(ctx, enrollment)
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if !view.ContentLocked {
		t.Fatal("unverified self-paced view must be locked")
	}
	if view.LockReason == "" {
		t.Error("locked view missing lock reason")
	}
	if view.Title != course.Title || view.Description != course.Description {
		t.Error("course metadata must stay visible when locked")
	}
	if len(view.Topics) != 2 {
		t.Fatalf("topic count = %d, want 2", len(view.Topics))
	}
	for _, topic := range view.Topics {
		if topic.Content != "" {
			t.Errorf("topic %d leaked content while locked", topic.Order)
		}
		if topic.Subtopics != nil {
			t.Errorf("topic %d leaked subtopics while locked", topic.Order)
		}
		if topic.Title == "" {
			t.Errorf("topic %d title must stay visible", topic.Order)
		}
	}
	if view.Progress != nil {
		t.Error("locked view must not expose progress")
	}
}

func TestViewForEnrollmentUnlockedMergesProgress(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 3)
	ctx := context.Background()

	enrollment := env.submitAndApprove(t, 1, course.ID, 99)
	if _, err := env.progress.CompleteTopic(enrollment.ID, 1, 1); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := env.progress.StartTopic(enrollment.ID, 1, 2); err != nil {
		t.Fatalf("start: %v", err)
	}
	enrollment, _ = env.enrollRepo.FindByID(enrollment.ID)

	view, err := env.course.ViewForEnrollment(ctx, enrollment)
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if view.ContentLocked {
		t.Fatal("verified view must be unlocked")
	}
	if len(view.Topics) != 3 {
		t.Fatalf("topic count = %d, want 3", len(view.Topics))
	}

	wantStatus := map[int]model.ProgressStatus{
		1: model.TopicCompleted,
		2: model.TopicInProgress,
		3: model.TopicNotStarted,
	}
	for _, topic := range view.Topics {
		if topic.Content == "" {
			t.Errorf("topic %d missing content in unlocked view", topic.Order)
		}
		if topic.Status != wantStatus[topic.Order] {
			t.Errorf("topic %d status = %q, want %q", topic.Order, topic.Status, wantStatus[topic.Order])
		}
	}

	if view.Progress == nil {
		t.Fatal("unlocked view missing progress summary")
	}
	if view.Progress.CompletedCount != 1 || view.Progress.PercentComplete != 33 {
		t.Errorf("progress = %+v", view.Progress)
	}
}

func TestViewGuidedCourseBypassesGate(t *testing.T) {
	env := newTestEnv(t)
	course := env.createGuidedCourse(t)
	ctx := context.Background()

	enrollment, err := env.enrollment.SubmitPayment(ctx, 1, course.ID, makeScreenshot(t, "pay.png"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// 未验证也不锁定，带教课程没有被门禁的内容体
	view, err := env.course.ViewForEnrollment(ctx, enrollment)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.ContentLocked {
		t.Error("guided course must never lock")
	}
	if len(view.Syllabus) != 2 {
		t.Errorf("syllabus entries = %d, want 2", len(view.Syllabus))
	}
	if view.Topics != nil {
		t.Error("guided view must not carry topics")
	}
}

func TestPublicViewLocksSelfPacedContent(t *testing.T) {
	env := newTestEnv(t)
	selfPaced := env.createSelfPacedCourse(t, 2)
	guided := env.createGuidedCourse(t)
	ctx := context.Background()

	view, err := env.course.PublicView(ctx, selfPaced.ID)
	if err != nil {
		t.Fatalf("public view: %v", err)
	}
	if !view.ContentLocked {
		t.Error("public self-paced view must be locked")
	}
	for _, topic := range view.Topics {
		if topic.Content != "" {
			t.Errorf("public view leaked content of topic %d", topic.Order)
		}
	}

	guidedView, err := env.course.PublicView(ctx, guided.ID)
	if err != nil {
		t.Fatalf("public guided view: %v", err)
	}
	if guidedView.ContentLocked {
		t.Error("public guided view must not be locked")
	}
	if len(guidedView.Syllabus) != 2 {
		t.Errorf("syllabus entries = %d, want 2", len(guidedView.Syllabus))
	}

	if _, err := env.course.PublicView(ctx, 404); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("missing course: err = %v, want ErrCourseNotFound", err)
	}
}

func TestUpdateCourseReplacesTopics(t *testing.T) {
	env := newTestEnv(t)
	course := env.createSelfPacedCourse(t, 2)
	ctx := context.Background()

	updated := &model.Course{
		BaseModel: model.BaseModel{ID: course.ID},
		Title:     "改版课程",
		Type:      model.SelfPaced,
		Published: true,
		Topics: []model.Topic{
			{Order: 1, Title: "新章节", Content: "新正文"},
		},
	}
	if err := env.course.UpdateCourse(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	fresh, err := env.courseRepo.FindByID(course.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.Title != "改版课程" {
		t.Errorf("title = %q", fresh.Title)
	}
	if len(fresh.Topics) != 1 || fresh.Topics[0].Title != "新章节" {
		t.Errorf("topics = %+v", fresh.Topics)
	}
}
