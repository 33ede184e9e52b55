package service

import (
	"podquest_backend/internal/model"
	"podquest_backend/internal/repository"
)

type FAQService struct {
	FAQRepo *repository.FAQRepository
}

func NewFAQService(faqRepo *repository.FAQRepository) *FAQService {
	return &FAQService{FAQRepo: faqRepo}
}

func (s *FAQService) GetFAQ() ([]model.FAQ, error) {
	return s.FAQRepo.FindAll()
}
