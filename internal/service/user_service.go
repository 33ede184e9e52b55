package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"podquest_backend/internal/model"
	"podquest_backend/internal/repository"
	"podquest_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo   *repository.UserRepository
	TrophyRepo *repository.TrophyRepository
	Storage    StorageProvider
}

func NewUserService(userRepo *repository.UserRepository, trophyRepo *repository.TrophyRepository, storage StorageProvider) *UserService {
	return &UserService{UserRepo: userRepo, TrophyRepo: trophyRepo, Storage: storage}
}

// ProfileRequest 资料更新请求
type ProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required,min=2,max=64"`
}

// Profile 用户资料，附带累计积分与已解锁奖杯数
type Profile struct {
	*model.User
	TrophiesCount int `json:"trophiesCount"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	solved, err := s.TrophyRepo.FindSolvedByUserID(userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, TrophiesCount: len(solved)}, nil
}

func (s *UserService) UpdateProfile(userID uint, req ProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	user.DisplayName = req.DisplayName
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 上传头像并更新用户资料
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.Storage == nil {
		return "", errors.New("storage not configured")
	}

	key := fmt.Sprintf("avatars/%d/%d%s", userID, time.Now().UnixNano(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	user.PhotoURL = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}
