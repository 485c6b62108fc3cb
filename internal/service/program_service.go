package service

import (
	"fitacademy_backend/internal/model"
	"fitacademy_backend/internal/repository"
)

type ProgramService struct {
	ProgramRepo *repository.ProgramRepository
}

func NewProgramService(programRepo *repository.ProgramRepository) *ProgramService {
	return &ProgramService{ProgramRepo: programRepo}
}

func (s *ProgramService) List(page, limit int, activeOnly bool) ([]model.Program, int64, error) {
	return s.ProgramRepo.List(page, limit, activeOnly)
}

func (s *ProgramService) Get(id uint) (*model.Program, error) {
	return s.ProgramRepo.FindByID(id)
}

func (s *ProgramService) Create(program *model.Program) error {
	return s.ProgramRepo.Create(program)
}

func (s *ProgramService) Update(program *model.Program) error {
	return s.ProgramRepo.Update(program)
}

func (s *ProgramService) Delete(id uint) error {
	return s.ProgramRepo.Delete(id)
}
