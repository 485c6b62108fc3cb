package service

import (
	"context"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/internal/util"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"
)

type TrainerService struct {
	TrainerRepo *repository.TrainerRepository
	Storage     *StorageService
}

func NewTrainerService(trainerRepo *repository.TrainerRepository, storage *StorageService) *TrainerService {
	return &TrainerService{
		TrainerRepo: trainerRepo,
		Storage:     storage,
	}
}

func (s *TrainerService) List(page, limit int, visibleOnly bool) ([]model.Trainer, int64, error) {
	return s.TrainerRepo.List(page, limit, visibleOnly)
}

func (s *TrainerService) Get(id uint) (*model.Trainer, error) {
	return s.TrainerRepo.FindByID(id)
}

func (s *TrainerService) Create(trainer *model.Trainer) error {
	return s.TrainerRepo.Create(trainer)
}

func (s *TrainerService) Update(trainer *model.Trainer) error {
	return s.TrainerRepo.Update(trainer)
}

func (s *TrainerService) Delete(id uint) error {
	return s.TrainerRepo.Delete(id)
}

// UploadPhoto 上传教练照片
func (s *TrainerService) UploadPhoto(ctx context.Context, file *multipart.FileHeader) (string, error) {
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
	filename := "trainers/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext

	stored, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}
	return s.Storage.GetURL(stored), nil
}
