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
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GalleryService struct {
	GalleryRepo *repository.GalleryRepository
	Storage     *StorageService
}

func NewGalleryService(galleryRepo *repository.GalleryRepository, storage *StorageService) *GalleryService {
	return &GalleryService{
		GalleryRepo: galleryRepo,
		Storage:     storage,
	}
}

func (s *GalleryService) List(page, limit int, mediaType string) ([]model.GalleryItem, int64, error) {
	return s.GalleryRepo.List(page, limit, mediaType)
}

// UploadMedia 上传图库媒体。图片直接入库；视频先落临时文件，
// 用 ffmpeg 读取时长并抓帧生成封面
func (s *GalleryService) UploadMedia(ctx context.Context, title string, file *multipart.FileHeader) (*model.GalleryItem, error) {
	if file.Size > util.MaxGalleryMediaSize {
		return nil, util.ErrMediaTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	isVideo := util.HasAllowedExtension(ext, util.AllowedVideoExtensions)
	if !isVideo && !util.HasAllowedExtension(ext, util.AllowedImageExtensions) {
		return nil, util.ErrInvalidMediaExt
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, []string{util.MimeImage, util.MimeVideo, "application/octet-stream"})
	if err != nil {
		return nil, fmt.Errorf("非法的文件内容: %w", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	base := time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6)

	if !isVideo {
		stored, err := s.Storage.Upload(ctx, "gallery/"+base+ext, src, file.Size, contentType)
		if err != nil {
			return nil, err
		}
		item := &model.GalleryItem{
			Title: title,
			Type:  model.MediaImage,
			URL:   stored,
		}
		return item, s.GalleryRepo.Create(item)
	}

	// 视频：先写到临时文件，ffmpeg 需要一个本地路径
	tmp, err := os.CreateTemp("", "gallery_*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	stored, err := s.Storage.UploadFile(ctx, "gallery/"+base+ext, tmpPath, contentType)
	if err != nil {
		return nil, err
	}

	item := &model.GalleryItem{
		Title: title,
		Type:  model.MediaVideo,
		URL:   stored,
	}

	if info, err := util.GetVideoInfo(tmpPath); err == nil {
		item.Duration = info.Duration
	} else {
		logger.Log.Warn("failed to probe gallery video", zap.Error(err))
	}

	thumbPath := tmpPath + ".jpg"
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "3"); err != nil {
		logger.Log.Warn("failed to generate gallery thumbnail", zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		thumb, err := s.Storage.UploadFile(ctx, "gallery/"+base+"_thumb.jpg", thumbPath, "image/jpeg")
		if err == nil {
			item.Thumbnail = thumb
		}
	}

	return item, s.GalleryRepo.Create(item)
}

// Delete 删除媒体记录并尽力清理存储里的文件
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	item, err := s.GalleryRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrMediaNotFound
	}
	if err != nil {
		return err
	}

	if err := s.GalleryRepo.Delete(id); err != nil {
		return err
	}

	if item.URL != "" {
		s.Storage.Delete(ctx, item.URL)
	}
	if item.Thumbnail != "" {
		s.Storage.Delete(ctx, item.Thumbnail)
	}
	return nil
}
