package repository

import (
	"podquest_backend/internal/model"

	"gorm.io/gorm"
)

type EpisodeRepository struct {
	DB *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{DB: db}
}

func (r *EpisodeRepository) Create(episode *model.Episode) error {
	return r.DB.Create(episode).Error
}

func (r *EpisodeRepository) FindByID(id uint) (*model.Episode, error) {
	var episode model.Episode
	err := r.DB.First(&episode, id).Error
	return &episode, err
}

func (r *EpisodeRepository) FindByPodcastID(podcastID uint) ([]model.Episode, error) {
	var episodes []model.Episode
	err := r.DB.Where("podcast_id = ?", podcastID).Order("date desc").Find(&episodes).Error
	return episodes, err
}

func (r *EpisodeRepository) FindIDsByPodcastID(podcastID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Episode{}).
		Where("podcast_id = ?", podcastID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *EpisodeRepository) FindByIDs(ids []uint) ([]model.Episode, error) {
	var episodes []model.Episode
	if len(ids) == 0 {
		return episodes, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&episodes).Error
	return episodes, err
}

func (r *EpisodeRepository) Update(episode *model.Episode) error {
	return r.DB.Save(episode).Error
}

// Like 重复点赞保持幂等
func (r *EpisodeRepository) Like(userID, episodeID uint) error {
	like := model.EpisodeLike{UserID: userID, EpisodeID: episodeID}
	err := r.DB.Create(&like).Error
	if err != nil && r.DB.Where("user_id = ? AND episode_id = ?", userID, episodeID).
		First(&model.EpisodeLike{}).Error == nil {
		return nil
	}
	return err
}

func (r *EpisodeRepository) Unlike(userID, episodeID uint) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND episode_id = ?", userID, episodeID).
		Delete(&model.EpisodeLike{}).Error
}

func (r *EpisodeRepository) IsLiked(userID, episodeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.EpisodeLike{}).
		Where("user_id = ? AND episode_id = ?", userID, episodeID).
		Count(&count).Error
	return count > 0, err
}

func (r *EpisodeRepository) FindLikedEpisodeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.EpisodeLike{}).
		Where("user_id = ?", userID).
		Pluck("episode_id", &ids).Error
	return ids, err
}
