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

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

type ProfileUpdate struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	user.Phone = update.Phone

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 上传头像，旧头像尽力清理
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}

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
	filename := fmt.Sprintf("avatars/%d_%s%s", userID, time.Now().Format("20060102150405"), ext)

	stored, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}

	previous := user.Avatar
	user.Avatar = stored
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}

	if previous != "" {
		s.Storage.Delete(ctx, previous)
	}

	return s.Storage.GetURL(stored), nil
}
