package repository

import (
	"time"

	"podquest_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

// IncrementLevel 原子递增用户累计积分。除此之外没有任何代码修改 level 字段。
func (r *UserRepository) IncrementLevel(tx *gorm.DB, userID uint, amount int) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("level", gorm.Expr("level + ?", amount)).
		Error
}

// FindAllByLevel 返回所有用户，按积分降序。稳定排序：积分相同按创建顺序。
func (r *UserRepository) FindAllByLevel() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("level DESC, id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}
