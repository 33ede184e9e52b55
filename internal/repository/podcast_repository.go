package repository

import (
	"podquest_backend/internal/model"

	"gorm.io/gorm"
)

type PodcastRepository struct {
	DB *gorm.DB
}

func NewPodcastRepository(db *gorm.DB) *PodcastRepository {
	return &PodcastRepository{DB: db}
}

func (r *PodcastRepository) Create(podcast *model.Podcast) error {
	return r.DB.Create(podcast).Error
}

func (r *PodcastRepository) FindByID(id uint) (*model.Podcast, error) {
	var podcast model.Podcast
	err := r.DB.First(&podcast, id).Error
	return &podcast, err
}

func (r *PodcastRepository) FindAll() ([]model.Podcast, error) {
	var podcasts []model.Podcast
	err := r.DB.Order("created_at desc").Find(&podcasts).Error
	return podcasts, err
}

func (r *PodcastRepository) FindByUserID(userID uint) ([]model.Podcast, error) {
	var podcasts []model.Podcast
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&podcasts).Error
	return podcasts, err
}

func (r *PodcastRepository) FindByIDs(ids []uint) ([]model.Podcast, error) {
	var podcasts []model.Podcast
	if len(ids) == 0 {
		return podcasts, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&podcasts).Error
	return podcasts, err
}

func (r *PodcastRepository) Update(podcast *model.Podcast) error {
	return r.DB.Save(podcast).Error
}

// Subscribe 重复订阅保持幂等：唯一索引冲突时忽略
func (r *PodcastRepository) Subscribe(userID, podcastID uint) error {
	sub := model.PodcastSubscription{UserID: userID, PodcastID: podcastID}
	err := r.DB.Create(&sub).Error
	if err != nil && r.DB.Where("user_id = ? AND podcast_id = ?", userID, podcastID).
		First(&model.PodcastSubscription{}).Error == nil {
		return nil
	}
	return err
}

func (r *PodcastRepository) Unsubscribe(userID, podcastID uint) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND podcast_id = ?", userID, podcastID).
		Delete(&model.PodcastSubscription{}).Error
}

func (r *PodcastRepository) IsSubscribed(userID, podcastID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PodcastSubscription{}).
		Where("user_id = ? AND podcast_id = ?", userID, podcastID).
		Count(&count).Error
	return count > 0, err
}

func (r *PodcastRepository) FindSubscribedPodcastIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.PodcastSubscription{}).
		Where("user_id = ?", userID).
		Pluck("podcast_id", &ids).Error
	return ids, err
}

func (r *PodcastRepository) CountSubscriptions(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PodcastSubscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
