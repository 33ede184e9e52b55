package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"podquest_backend/internal/model"
	"podquest_backend/internal/repository"
	"podquest_backend/internal/util"
	"podquest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EpisodeService struct {
	EpisodeRepo *repository.EpisodeRepository
	PodcastRepo *repository.PodcastRepository
	TrophyRepo  *repository.TrophyRepository
	Storage     StorageProvider
	DB          *gorm.DB
}

func NewEpisodeService(
	episodeRepo *repository.EpisodeRepository,
	podcastRepo *repository.PodcastRepository,
	trophyRepo *repository.TrophyRepository,
	storage StorageProvider,
	db *gorm.DB,
) *EpisodeService {
	return &EpisodeService{
		EpisodeRepo: episodeRepo,
		PodcastRepo: podcastRepo,
		TrophyRepo:  trophyRepo,
		Storage:     storage,
		DB:          db,
	}
}

// EpisodeRequest 单集创建/更新请求
type EpisodeRequest struct {
	PodcastID        uint      `json:"podcastId" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	Date             time.Time `json:"date" binding:"required"`
	Description      string    `json:"description"`
	LongDescription  string    `json:"longDescription"`
	Photo            string    `json:"photo"`
	AudioURL         string    `json:"audioURL"`
	DurationSeconds  int       `json:"durationSeconds"`
	SpotifyURL       string    `json:"spotifyURL"`
	ApplePodcastsURL string    `json:"applePodcastsURL"`
	YTMusicURL       string    `json:"ytMusicURL"`
}

func (s *EpisodeService) CreateEpisode(userID uint, req EpisodeRequest) (*model.Episode, error) {
	if req.Date.After(time.Now()) {
		return nil, errors.New("episode date cannot be in the future")
	}

	podcast, err := s.PodcastRepo.FindByID(req.PodcastID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPodcastNotFound
		}
		return nil, err
	}
	if podcast.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	episode := &model.Episode{
		PodcastID:        req.PodcastID,
		Title:            req.Title,
		Date:             req.Date,
		Description:      req.Description,
		LongDescription:  req.LongDescription,
		Photo:            req.Photo,
		AudioURL:         req.AudioURL,
		DurationSeconds:  req.DurationSeconds,
		SpotifyURL:       req.SpotifyURL,
		ApplePodcastsURL: req.ApplePodcastsURL,
		YTMusicURL:       req.YTMusicURL,
	}
	if err := s.EpisodeRepo.Create(episode); err != nil {
		return nil, err
	}
	return episode, nil
}

func (s *EpisodeService) GetEpisode(episodeID uint) (*model.Episode, error) {
	episode, err := s.EpisodeRepo.FindByID(episodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEpisodeNotFound
		}
		return nil, err
	}
	return episode, nil
}

func (s *EpisodeService) GetPodcastEpisodes(podcastID uint) ([]model.Episode, error) {
	return s.EpisodeRepo.FindByPodcastID(podcastID)
}

func (s *EpisodeService) UpdateEpisode(userID, episodeID uint, req EpisodeRequest) (*model.Episode, error) {
	episode, err := s.GetEpisode(episodeID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(episode.PodcastID, userID); err != nil {
		return nil, err
	}
	if req.Date.After(time.Now()) {
		return nil, errors.New("episode date cannot be in the future")
	}

	episode.Title = req.Title
	episode.Date = req.Date
	episode.Description = req.Description
	episode.LongDescription = req.LongDescription
	episode.SpotifyURL = req.SpotifyURL
	episode.ApplePodcastsURL = req.ApplePodcastsURL
	episode.YTMusicURL = req.YTMusicURL
	if req.Photo != "" {
		episode.Photo = req.Photo
	}
	if req.AudioURL != "" {
		episode.AudioURL = req.AudioURL
		episode.DurationSeconds = req.DurationSeconds
	}

	if err := s.EpisodeRepo.Update(episode); err != nil {
		return nil, err
	}
	return episode, nil
}

// DeleteEpisode 级联删除单集及其奖杯、作答记录、点赞
func (s *EpisodeService) DeleteEpisode(userID, episodeID uint) error {
	episode, err := s.GetEpisode(episodeID)
	if err != nil {
		return err
	}
	if err := s.checkOwner(episode.PodcastID, userID); err != nil {
		return err
	}

	trophyIDs, err := s.TrophyRepo.FindIDsByEpisodeIDs([]uint{episodeID})
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
		if err := tx.Unscoped().Where("episode_id = ?", episodeID).Delete(&model.EpisodeLike{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Episode{}, episodeID).Error
	})
	if err != nil {
		return err
	}

	s.cleanupEpisodeMedia(episodeID, trophyIDs)
	return nil
}

func (s *EpisodeService) Like(userID, episodeID uint) error {
	if _, err := s.GetEpisode(episodeID); err != nil {
		return err
	}
	return s.EpisodeRepo.Like(userID, episodeID)
}

func (s *EpisodeService) Unlike(userID, episodeID uint) error {
	return s.EpisodeRepo.Unlike(userID, episodeID)
}

func (s *EpisodeService) IsLiked(userID, episodeID uint) (bool, error) {
	return s.EpisodeRepo.IsLiked(userID, episodeID)
}

// GetLikedEpisodes 返回用户点赞过的全部单集
func (s *EpisodeService) GetLikedEpisodes(userID uint) ([]model.Episode, error) {
	ids, err := s.EpisodeRepo.FindLikedEpisodeIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.EpisodeRepo.FindByIDs(ids)
}

func (s *EpisodeService) checkOwner(podcastID, userID uint) error {
	podcast, err := s.PodcastRepo.FindByID(podcastID)
	if err != nil {
		return err
	}
	if podcast.UserID != userID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *EpisodeService) cleanupEpisodeMedia(episodeID uint, trophyIDs []uint) {
	if s.Storage == nil {
		return
	}
	ctx := context.Background()
	prefixes := []string{fmt.Sprintf("episodes/%d", episodeID)}
	for _, id := range trophyIDs {
		prefixes = append(prefixes, fmt.Sprintf("trophies/%d", id))
	}
	for _, prefix := range prefixes {
		if err := s.Storage.DeletePrefix(ctx, prefix); err != nil {
			logger.Log.Warn("media cleanup failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}
