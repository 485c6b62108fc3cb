package service

import (
	"bytes"
	"context"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/pkg/logger"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeStorage 内存存储实现，记录上传和删除的文件名
type fakeStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[filename] = data
	return filename, nil
}

func (f *fakeStorage) UploadFile(ctx context.Context, filename string, localPath string, contentType string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[filename] = data
	return filename, nil
}

func (f *fakeStorage) Delete(ctx context.Context, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, filename)
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeStorage) GetURL(filename string) string {
	return "/uploads/" + filename
}

func (f *fakeStorage) hasDeleted(filename string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.deleted {
		if d == filename {
			return true
		}
	}
	return false
}

type testEnv struct {
	db           *gorm.DB
	storage      *fakeStorage
	courseRepo   *repository.CourseRepository
	enrollRepo   *repository.EnrollmentRepository
	progressRepo *repository.TopicProgressRepository
	course       *CourseService
	enrollment   *EnrollmentService
	progress     *ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// 内存库绑定单连接，避免连接池拿到空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Topic{},
		&model.Subtopic{},
		&model.SyllabusSession{},
		&model.Enrollment{},
		&model.TopicProgress{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	storage := newFakeStorage()
	storageSvc := &StorageService{Provider: storage}

	courseRepo := repository.NewCourseRepository(db)
	enrollRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewTopicProgressRepository(db)

	courseSvc := NewCourseService(courseRepo, progressRepo, nil)

	return &testEnv{
		db:           db,
		storage:      storage,
		courseRepo:   courseRepo,
		enrollRepo:   enrollRepo,
		progressRepo: progressRepo,
		course:       courseSvc,
		enrollment:   NewEnrollmentService(enrollRepo, courseRepo, storageSvc),
		progress:     NewProgressService(enrollRepo, progressRepo, courseSvc),
	}
}

func (env *testEnv) createSelfPacedCourse(t *testing.T, topicCount int) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:     "自学测试课程",
		Type:      model.SelfPaced,
		Published: true,
	}
	for i := 1; i <= topicCount; i++ {
		course.Topics = append(course.Topics, model.Topic{
			Order:   i,
			Title:   fmt.Sprintf("章节 %d", i),
			Content: fmt.Sprintf("章节 %d 的正文", i),
			Subtopics: []model.Subtopic{
				{Order: 1, Title: fmt.Sprintf("小节 %d.1", i)},
			},
		})
	}
	if err := env.db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func (env *testEnv) createGuidedCourse(t *testing.T) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:     "带教测试课程",
		Type:      model.Guided,
		Published: true,
		Syllabus: []model.SyllabusSession{
			{Order: 1, Title: "第一周", Learnings: "评估", Hours: 2},
			{Order: 2, Title: "第二周", Learnings: "训练", Hours: 2},
		},
	}
	if err := env.db.Create(course).Error; err != nil {
		t.Fatalf("create guided course: %v", err)
	}
	return course
}

// pngBytes 最小 PNG 文件头，http.DetectContentType 识别为 image/png
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
}

func makeScreenshot(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("screenshot", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(pngBytes); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["screenshot"][0]
}

func (env *testEnv) submitAndApprove(t *testing.T, userID, courseID, adminID uint) *model.Enrollment {
	t.Helper()

	enrollment, err := env.enrollment.SubmitPayment(context.Background(), userID, courseID, makeScreenshot(t, "pay.png"))
	if err != nil {
		t.Fatalf("submit payment: %v", err)
	}
	enrollment, err = env.enrollment.Verify(enrollment.ID, adminID, DecisionApprove, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	return enrollment
}
