package service

import (
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
	"fitacademy_backend/pkg/logger"

	"go.uber.org/zap"
)

type ContactService struct {
	ContactRepo *repository.ContactRepository
}

func NewContactService(contactRepo *repository.ContactRepository) *ContactService {
	return &ContactService{ContactRepo: contactRepo}
}

func (s *ContactService) Submit(message *model.ContactMessage) error {
	if err := s.ContactRepo.Create(message); err != nil {
		return err
	}
	logger.Log.Info("contact message received",
		zap.String("email", message.Email), zap.String("subject", message.Subject))
	return nil
}

func (s *ContactService) List(page, limit int, unreadOnly bool) ([]model.ContactMessage, int64, error) {
	return s.ContactRepo.List(page, limit, unreadOnly)
}

func (s *ContactService) MarkRead(id uint) error {
	return s.ContactRepo.MarkRead(id)
}

func (s *ContactService) Delete(id uint) error {
	return s.ContactRepo.Delete(id)
}
