package service

import (
	"context"
	"errors"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/internal/util"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"gorm.io/gorm"
)

type BlogService struct {
	BlogRepo *repository.BlogRepository
	Storage  *StorageService
}

func NewBlogService(blogRepo *repository.BlogRepository, storage *StorageService) *BlogService {
	return &BlogService{
		BlogRepo: blogRepo,
		Storage:  storage,
	}
}

func (s *BlogService) List(page, limit int, publishedOnly bool, search string) ([]model.Blog, int64, error) {
	return s.BlogRepo.List(page, limit, publishedOnly, search)
}

// Get publishedOnly 为 true 时未发布的文章对外表现为不存在
func (s *BlogService) Get(id uint, publishedOnly bool) (*model.Blog, error) {
	blog, err := s.BlogRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if publishedOnly && !blog.Published {
		return nil, gorm.ErrRecordNotFound
	}
	return blog, nil
}

func (s *BlogService) Create(blog *model.Blog) error {
	return s.BlogRepo.Create(blog)
}

func (s *BlogService) Update(blog *model.Blog) error {
	return s.BlogRepo.Update(blog)
}

func (s *BlogService) Delete(id uint) error {
	return s.BlogRepo.Delete(id)
}

// UploadCover 上传文章封面图，返回可访问的 URL
func (s *BlogService) UploadCover(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", fmt.Errorf("非法的文件内容: %w", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := filepath.Ext(file.Filename)
	filename := "blogs/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext

	stored, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}
	return s.Storage.GetURL(stored), nil
}
