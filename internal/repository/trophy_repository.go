package repository

import (
	"errors"

	"podquest_backend/internal/model"

	"gorm.io/gorm"
)

type TrophyRepository struct {
	DB *gorm.DB
}

func NewTrophyRepository(db *gorm.DB) *TrophyRepository {
	return &TrophyRepository{DB: db}
}

func (r *TrophyRepository) Create(trophy *model.Trophy) error {
	return r.DB.Create(trophy).Error
}

func (r *TrophyRepository) FindByID(id uint) (*model.Trophy, error) {
	var trophy model.Trophy
	err := r.DB.First(&trophy, id).Error
	return &trophy, err
}

func (r *TrophyRepository) FindByEpisodeID(episodeID uint) ([]model.Trophy, error) {
	var trophies []model.Trophy
	err := r.DB.Where("episode_id = ?", episodeID).Order("level desc").Find(&trophies).Error
	return trophies, err
}

func (r *TrophyRepository) FindIDsByEpisodeIDs(episodeIDs []uint) ([]uint, error) {
	var ids []uint
	if len(episodeIDs) == 0 {
		return ids, nil
	}
	err := r.DB.Model(&model.Trophy{}).
		Where("episode_id IN ?", episodeIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *TrophyRepository) Update(trophy *model.Trophy) error {
	return r.DB.Save(trophy).Error
}

// FindAttempt 查找用户对某奖杯的作答记录，不存在时返回 (nil, nil)
func (r *TrophyRepository) FindAttempt(tx *gorm.DB, trophyID, userID uint) (*model.UserTrophyAttempt, error) {
	if tx == nil {
		tx = r.DB
	}
	var attempt model.UserTrophyAttempt
	err := tx.Where("trophy_id = ? AND user_id = ?", trophyID, userID).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SaveAttempt 创建或覆盖 (trophyId, userId) 的作答记录
func (r *TrophyRepository) SaveAttempt(tx *gorm.DB, attempt *model.UserTrophyAttempt) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(attempt).Error
}

func (r *TrophyRepository) FindAttemptsByUserAndTrophyIDs(userID uint, trophyIDs []uint) ([]model.UserTrophyAttempt, error) {
	var attempts []model.UserTrophyAttempt
	if len(trophyIDs) == 0 {
		return attempts, nil
	}
	err := r.DB.Where("user_id = ? AND trophy_id IN ?", userID, trophyIDs).Find(&attempts).Error
	return attempts, err
}

// FindSolvedByUserID 返回用户所有已答对的作答记录
func (r *TrophyRepository) FindSolvedByUserID(userID uint) ([]model.UserTrophyAttempt, error) {
	var attempts []model.UserTrophyAttempt
	err := r.DB.Where("user_id = ? AND answer >= 0", userID).Find(&attempts).Error
	return attempts, err
}

// SolvedCountRow 单个用户在一组奖杯内的答对数量
type SolvedCountRow struct {
	UserID uint
	Count  int
}

// CountSolvedByTrophyIDs 统计每个用户在给定奖杯集合内答对的数量。
// 答错的记录 answer 恒为 -1，所以 answer >= 0 即为答对。
func (r *TrophyRepository) CountSolvedByTrophyIDs(trophyIDs []uint) ([]SolvedCountRow, error) {
	var rows []SolvedCountRow
	if len(trophyIDs) == 0 {
		return rows, nil
	}
	err := r.DB.Model(&model.UserTrophyAttempt{}).
		Select("user_id, count(*) as count").
		Where("trophy_id IN ? AND answer >= 0", trophyIDs).
		Group("user_id").
		Scan(&rows).Error
	return rows, err
}

func (r *TrophyRepository) FindByIDs(ids []uint) ([]model.Trophy, error) {
	var trophies []model.Trophy
	if len(ids) == 0 {
		return trophies, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&trophies).Error
	return trophies, err
}
