package repository

import (
	"podquest_backend/internal/model"

	"gorm.io/gorm"
)

type FAQRepository struct {
	DB *gorm.DB
}

func NewFAQRepository(db *gorm.DB) *FAQRepository {
	return &FAQRepository{DB: db}
}

func (r *FAQRepository) FindAll() ([]model.FAQ, error) {
	var entries []model.FAQ
	err := r.DB.Order("`order` asc").Find(&entries).Error
	return entries, err
}
