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
	"podquest_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnswerLockoutWindow 答错后的封锁时长。固定24小时，无递增退避。
const AnswerLockoutWindow = 24 * time.Hour

// AnswerOutcome 一次答题提交的结果
type AnswerOutcome string

const (
	OutcomeCorrect   AnswerOutcome = "correct"
	OutcomeIncorrect AnswerOutcome = "incorrect"
	OutcomeLocked    AnswerOutcome = "locked"
	OutcomeAchieved  AnswerOutcome = "achieved" // 此前已答对，不重复评分
)

// AnswerResult 返回给控制器的答题结果
type AnswerResult struct {
	Outcome      AnswerOutcome `json:"outcome"`
	AwardedLevel int           `json:"awardedLevel"` // 仅 correct 时非零
	BlockedUntil *time.Time    `json:"blockedUntil,omitempty"`
}

// IsAttemptLocked 封锁策略：答错记录的 BlockedTime 起24小时内不允许再次作答。
// attempt 为 nil（从未作答）时不封锁。
func IsAttemptLocked(attempt *model.UserTrophyAttempt, now time.Time) bool {
	if attempt == nil || attempt.BlockedTime == nil {
		return false
	}
	return now.Before(attempt.BlockedTime.Add(AnswerLockoutWindow))
}

type TrophyService struct {
	TrophyRepo  *repository.TrophyRepository
	EpisodeRepo *repository.EpisodeRepository
	PodcastRepo *repository.PodcastRepository
	UserRepo    *repository.UserRepository
	Ranking     *RankingService
	Storage     StorageProvider
	DB          *gorm.DB
}

func NewTrophyService(
	trophyRepo *repository.TrophyRepository,
	episodeRepo *repository.EpisodeRepository,
	podcastRepo *repository.PodcastRepository,
	userRepo *repository.UserRepository,
	ranking *RankingService,
	storage StorageProvider,
	db *gorm.DB,
) *TrophyService {
	return &TrophyService{
		TrophyRepo:  trophyRepo,
		EpisodeRepo: episodeRepo,
		PodcastRepo: podcastRepo,
		UserRepo:    userRepo,
		Ranking:     ranking,
		Storage:     storage,
		DB:          db,
	}
}

// SubmitAnswer 处理一次答题提交。作答记录的覆盖写和积分递增在同一个
// 事务里完成，保证同一奖杯最多发放一次积分。
func (s *TrophyService) SubmitAnswer(trophyID, userID uint, selected int) (*AnswerResult, error) {
	trophy, err := s.TrophyRepo.FindByID(trophyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrophyNotFound
		}
		return nil, err
	}

	now := time.Now()
	result := &AnswerResult{}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.TrophyRepo.FindAttempt(tx, trophyID, userID)
		if err != nil {
			return err
		}

		// 已答对的奖杯不再评分，也不受封锁影响
		if attempt.Solved() {
			result.Outcome = OutcomeAchieved
			return nil
		}

		if IsAttemptLocked(attempt, now) {
			blockedUntil := attempt.BlockedTime.Add(AnswerLockoutWindow)
			result.Outcome = OutcomeLocked
			result.BlockedUntil = &blockedUntil
			return nil
		}

		if attempt == nil {
			attempt = &model.UserTrophyAttempt{TrophyID: trophyID, UserID: userID}
		}

		if selected == trophy.GoodAnswerIndex {
			attempt.Answer = selected
			attempt.BlockedTime = nil
			if err := s.TrophyRepo.SaveAttempt(tx, attempt); err != nil {
				return err
			}
			// 走到这里必然是首次答对：已答对的记录在上面提前返回了
			if err := s.UserRepo.IncrementLevel(tx, userID, trophy.Level); err != nil {
				return err
			}
			result.Outcome = OutcomeCorrect
			result.AwardedLevel = trophy.Level
			return nil
		}

		attempt.Answer = model.WrongAnswerSentinel
		attempt.BlockedTime = &now
		if err := s.TrophyRepo.SaveAttempt(tx, attempt); err != nil {
			return err
		}
		blockedUntil := now.Add(AnswerLockoutWindow)
		result.Outcome = OutcomeIncorrect
		result.BlockedUntil = &blockedUntil
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.TrophyAnswerCounter.WithLabelValues(string(result.Outcome)).Inc()

	if result.Outcome == OutcomeCorrect {
		s.Ranking.InvalidateCache()
	}

	return result, nil
}

// TrophyRequest 奖杯创建/更新请求
type TrophyRequest struct {
	EpisodeID       uint     `json:"episodeId" binding:"required"`
	Title           string   `json:"title" binding:"required"`
	Photo           string   `json:"photo"`
	Description     string   `json:"description"`
	Level           int      `json:"level" binding:"required,min=1,max=3"`
	TaskType        string   `json:"taskType" binding:"required"`
	Question        string   `json:"question" binding:"required"`
	RadioOptions    []string `json:"radioOptions" binding:"required,min=2"`
	GoodAnswerIndex *int     `json:"goodAnswerIndex" binding:"required"`
}

// validateTask 在边界上拒绝未知任务类型和越界的正确答案下标，
// 保证答题时不会出现配置错误的奖杯
func validateTask(req *TrophyRequest) error {
	if req.TaskType != model.TaskTypeRadio {
		return util.ErrUnknownTaskType
	}
	if req.GoodAnswerIndex == nil || *req.GoodAnswerIndex < 0 || *req.GoodAnswerIndex >= len(req.RadioOptions) {
		return util.ErrAnswerIndexOutOfRange
	}
	return nil
}

func (s *TrophyService) CreateTrophy(userID uint, req TrophyRequest) (*model.Trophy, error) {
	if err := validateTask(&req); err != nil {
		return nil, err
	}

	if err := s.checkEpisodeOwner(req.EpisodeID, userID); err != nil {
		return nil, err
	}

	trophy := &model.Trophy{
		EpisodeID:       req.EpisodeID,
		Title:           req.Title,
		Photo:           req.Photo,
		Description:     req.Description,
		Level:           req.Level,
		TaskType:        req.TaskType,
		Question:        req.Question,
		GoodAnswerIndex: *req.GoodAnswerIndex,
	}
	if err := trophy.SetRadioOptions(req.RadioOptions); err != nil {
		return nil, err
	}

	if err := s.TrophyRepo.Create(trophy); err != nil {
		return nil, err
	}
	return trophy, nil
}

func (s *TrophyService) UpdateTrophy(userID, trophyID uint, req TrophyRequest) (*model.Trophy, error) {
	if err := validateTask(&req); err != nil {
		return nil, err
	}

	trophy, err := s.TrophyRepo.FindByID(trophyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrophyNotFound
		}
		return nil, err
	}

	if err := s.checkEpisodeOwner(trophy.EpisodeID, userID); err != nil {
		return nil, err
	}

	trophy.Title = req.Title
	trophy.Description = req.Description
	trophy.Level = req.Level
	trophy.TaskType = req.TaskType
	trophy.Question = req.Question
	trophy.GoodAnswerIndex = *req.GoodAnswerIndex
	if req.Photo != "" {
		trophy.Photo = req.Photo
	}
	if err := trophy.SetRadioOptions(req.RadioOptions); err != nil {
		return nil, err
	}

	if err := s.TrophyRepo.Update(trophy); err != nil {
		return nil, err
	}
	return trophy, nil
}

// DeleteTrophy 删除奖杯及其全部作答记录，媒体文件尽力清理
func (s *TrophyService) DeleteTrophy(userID, trophyID uint) error {
	trophy, err := s.TrophyRepo.FindByID(trophyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTrophyNotFound
		}
		return err
	}

	if err := s.checkEpisodeOwner(trophy.EpisodeID, userID); err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("trophy_id = ?", trophyID).Delete(&model.UserTrophyAttempt{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Trophy{}, trophyID).Error
	})
	if err != nil {
		return err
	}

	s.cleanupMedia(fmt.Sprintf("trophies/%d", trophyID))
	return nil
}

// TrophyView 奖杯详情，附带请求用户的作答状态。GoodAnswerIndex 不下发。
type TrophyView struct {
	model.Trophy
	RadioOptions []string   `json:"radioOptions"`
	Achieved     bool       `json:"achieved"`
	Locked       bool       `json:"locked"`
	BlockedUntil *time.Time `json:"blockedUntil,omitempty"`
	UserAnswer   *int       `json:"userAnswer,omitempty"`
}

// GetEpisodeTrophies 返回单集的全部奖杯，并标注用户的作答状态。
// 已答对的排在最前，其余按等级降序（与原排序规则一致）。
func (s *TrophyService) GetEpisodeTrophies(episodeID, userID uint) ([]TrophyView, error) {
	trophies, err := s.TrophyRepo.FindByEpisodeID(episodeID)
	if err != nil {
		return nil, err
	}

	trophyIDs := make([]uint, len(trophies))
	for i, t := range trophies {
		trophyIDs[i] = t.ID
	}

	attempts, err := s.TrophyRepo.FindAttemptsByUserAndTrophyIDs(userID, trophyIDs)
	if err != nil {
		return nil, err
	}
	attemptByTrophy := make(map[uint]*model.UserTrophyAttempt, len(attempts))
	for i := range attempts {
		attemptByTrophy[attempts[i].TrophyID] = &attempts[i]
	}

	now := time.Now()
	views := make([]TrophyView, 0, len(trophies))
	solved := make([]TrophyView, 0, len(trophies))
	for _, t := range trophies {
		view := TrophyView{Trophy: t, RadioOptions: t.RadioOptions()}
		if attempt := attemptByTrophy[t.ID]; attempt != nil {
			answer := attempt.Answer
			view.UserAnswer = &answer
			view.Achieved = attempt.Solved()
			if !view.Achieved && IsAttemptLocked(attempt, now) {
				until := attempt.BlockedTime.Add(AnswerLockoutWindow)
				view.Locked = true
				view.BlockedUntil = &until
			}
		}
		if view.Achieved {
			solved = append(solved, view)
		} else {
			views = append(views, view)
		}
	}

	return append(solved, views...), nil
}

// Achievement 用户已获得的奖杯
type Achievement struct {
	Trophy   model.Trophy `json:"trophy"`
	SolvedAt time.Time    `json:"solvedAt"`
}

// GetUserAchievements 返回用户答对的全部奖杯
func (s *TrophyService) GetUserAchievements(userID uint) ([]Achievement, error) {
	attempts, err := s.TrophyRepo.FindSolvedByUserID(userID)
	if err != nil {
		return nil, err
	}

	trophyIDs := make([]uint, len(attempts))
	solvedAt := make(map[uint]time.Time, len(attempts))
	for i, a := range attempts {
		trophyIDs[i] = a.TrophyID
		solvedAt[a.TrophyID] = a.UpdatedAt
	}

	trophies, err := s.TrophyRepo.FindByIDs(trophyIDs)
	if err != nil {
		return nil, err
	}

	achievements := make([]Achievement, 0, len(trophies))
	for _, t := range trophies {
		achievements = append(achievements, Achievement{Trophy: t, SolvedAt: solvedAt[t.ID]})
	}
	return achievements, nil
}

// checkEpisodeOwner 校验用户是否拥有单集所属的播客
func (s *TrophyService) checkEpisodeOwner(episodeID, userID uint) error {
	episode, err := s.EpisodeRepo.FindByID(episodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEpisodeNotFound
		}
		return err
	}
	podcast, err := s.PodcastRepo.FindByID(episode.PodcastID)
	if err != nil {
		return err
	}
	if podcast.UserID != userID {
		return util.ErrPermissionDenied
	}
	return nil
}

// cleanupMedia 尽力删除媒体文件，失败只记日志
func (s *TrophyService) cleanupMedia(prefix string) {
	if s.Storage == nil {
		return
	}
	if err := s.Storage.DeletePrefix(context.Background(), prefix); err != nil {
		logger.Log.Warn("media cleanup failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
