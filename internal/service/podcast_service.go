package service

import (
	"context"
	"errors"
	"fmt"

	"podquest_backend/internal/model"
	"podquest_backend/internal/repository"
	"podquest_backend/internal/util"
	"podquest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PodcastService struct {
	PodcastRepo *repository.PodcastRepository
	EpisodeRepo *repository.EpisodeRepository
	TrophyRepo  *repository.TrophyRepository
	Storage     StorageProvider
	DB          *gorm.DB
}

func NewPodcastService(
	podcastRepo *repository.PodcastRepository,
	episodeRepo *repository.EpisodeRepository,
	trophyRepo *repository.TrophyRepository,
	storage StorageProvider,
	db *gorm.DB,
) *PodcastService {
	return &PodcastService{
		PodcastRepo: podcastRepo,
		EpisodeRepo: episodeRepo,
		TrophyRepo:  trophyRepo,
		Storage:     storage,
		DB:          db,
	}
}

// PodcastRequest 播客创建/更新请求
type PodcastRequest struct {
	Title       string `json:"title" binding:"required"`
	Host        string `json:"host"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

func (s *PodcastService) CreatePodcast(userID uint, req PodcastRequest) (*model.Podcast, error) {
	podcast := &model.Podcast{
		UserID:      userID,
		Title:       req.Title,
		Host:        req.Host,
		Description: req.Description,
		Photo:       req.Photo,
	}
	if err := s.PodcastRepo.Create(podcast); err != nil {
		return nil, err
	}
	return podcast, nil
}

func (s *PodcastService) GetPodcast(podcastID uint) (*model.Podcast, error) {
	podcast, err := s.PodcastRepo.FindByID(podcastID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPodcastNotFound
		}
		return nil, err
	}
	return podcast, nil
}

func (s *PodcastService) GetPodcasts() ([]model.Podcast, error) {
	return s.PodcastRepo.FindAll()
}

func (s *PodcastService) UpdatePodcast(userID, podcastID uint, req PodcastRequest) (*model.Podcast, error) {
	podcast, err := s.GetPodcast(podcastID)
	if err != nil {
		return nil, err
	}
	if podcast.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	podcast.Title = req.Title
	podcast.Host = req.Host
	podcast.Description = req.Description
	if req.Photo != "" {
		podcast.Photo = req.Photo
	}

	if err := s.PodcastRepo.Update(podcast); err != nil {
		return nil, err
	}
	return podcast, nil
}

// DeletePodcast 级联删除播客及其单集、奖杯、作答记录、点赞、订阅。
// 数据库记录在一个事务里删干净；媒体文件事后尽力清理，失败只记日志。
func (s *PodcastService) DeletePodcast(userID, podcastID uint) error {
	podcast, err := s.GetPodcast(podcastID)
	if err != nil {
		return err
	}
	if podcast.UserID != userID {
		return util.ErrPermissionDenied
	}

	episodeIDs, err := s.EpisodeRepo.FindIDsByPodcastID(podcastID)
	if err != nil {
		return err
	}
	trophyIDs, err := s.TrophyRepo.FindIDsByEpisodeIDs(episodeIDs)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if len(trophyIDs) > 0 {
			if err := tx.Unscoped().Where("trophy_id IN ?", trophyIDs).Delete(&model.UserTrophyAttempt{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", trophyIDs).Delete(&model.Trophy{}).Error; err != nil {
				return err
			}
		}
		if len(episodeIDs) > 0 {
			if err := tx.Unscoped().Where("episode_id IN ?", episodeIDs).Delete(&model.EpisodeLike{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", episodeIDs).Delete(&model.Episode{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("podcast_id = ?", podcastID).Delete(&model.PodcastSubscription{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Podcast{}, podcastID).Error
	})
	if err != nil {
		return err
	}

	s.cleanupPodcastMedia(podcastID, episodeIDs, trophyIDs)
	return nil
}

func (s *PodcastService) Subscribe(userID, podcastID uint) error {
	if _, err := s.GetPodcast(podcastID); err != nil {
		return err
	}
	return s.PodcastRepo.Subscribe(userID, podcastID)
}

func (s *PodcastService) Unsubscribe(userID, podcastID uint) error {
	return s.PodcastRepo.Unsubscribe(userID, podcastID)
}

func (s *PodcastService) IsSubscribed(userID, podcastID uint) (bool, error) {
	return s.PodcastRepo.IsSubscribed(userID, podcastID)
}

// GetSubscribedPodcasts 返回用户订阅的全部播客
func (s *PodcastService) GetSubscribedPodcasts(userID uint) ([]model.Podcast, error) {
	ids, err := s.PodcastRepo.FindSubscribedPodcastIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.PodcastRepo.FindByIDs(ids)
}

func (s *PodcastService) cleanupPodcastMedia(podcastID uint, episodeIDs, trophyIDs []uint) {
	if s.Storage == nil {
		return
	}
	ctx := context.Background()
	prefixes := []string{fmt.Sprintf("podcasts/%d", podcastID)}
	for _, id := range episodeIDs {
		prefixes = append(prefixes, fmt.Sprintf("episodes/%d", id))
	}
	for _, id := range trophyIDs {
		prefixes = append(prefixes, fmt.Sprintf("trophies/%d", id))
	}
	for _, prefix := range prefixes {
		if err := s.Storage.DeletePrefix(ctx, prefix); err != nil {
			logger.Log.Warn("media cleanup failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}
