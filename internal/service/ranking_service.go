package service

import (
	"context"
	"encoding/json"
	"time"

	"podquest_backend/internal/repository"
	"podquest_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const rankingCacheKey = "ranking:global"

// RankingEntry 排行榜条目
type RankingEntry struct {
	UserID      uint   `json:"userId"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Level       int    `json:"level"`
	Rank        int    `json:"rank"`
}

// PodcastRankingEntry 单个播客内的排行榜条目，按答对奖杯数排名
type PodcastRankingEntry struct {
	UserID        uint   `json:"userId"`
	DisplayName   string `json:"displayName"`
	PhotoURL      string `json:"photoURL,omitempty"`
	TrophiesCount int    `json:"trophiesCount"`
	Rank          int    `json:"rank"`
}

type RankingService struct {
	UserRepo    *repository.UserRepository
	EpisodeRepo *repository.EpisodeRepository
	TrophyRepo  *repository.TrophyRepository
	Redis       *redis.Client
	CacheTTL    time.Duration
}

func NewRankingService(
	userRepo *repository.UserRepository,
	episodeRepo *repository.EpisodeRepository,
	trophyRepo *repository.TrophyRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *RankingService {
	return &RankingService{
		UserRepo:    userRepo,
		EpisodeRepo: episodeRepo,
		TrophyRepo:  trophyRepo,
		Redis:       rdb,
		CacheTTL:    cacheTTL,
	}
}

// assignRanks 竞赛排名：并列共享名次，其后出现空档（如 1,1,3,4）。
// 输入必须已按降序排好。
func assignRanks(scores []int) []int {
	ranks := make([]int, len(scores))
	previous := -1
	currentRank := 1
	for i, score := range scores {
		if score != previous {
			currentRank = i + 1
			previous = score
		}
		ranks[i] = currentRank
	}
	return ranks
}

// GetRanking 全站排行榜：全部用户按累计积分降序，空榜返回空切片。
// 结果短暂缓存在Redis，积分发放时失效。
func (s *RankingService) GetRanking() ([]RankingEntry, error) {
	if cached := s.readCache(); cached != nil {
		return cached, nil
	}

	users, err := s.UserRepo.FindAllByLevel()
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, len(users))
	scores := make([]int, len(users))
	for i, u := range users {
		scores[i] = u.Level
		entries[i] = RankingEntry{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			PhotoURL:    u.PhotoURL,
			Level:       u.Level,
		}
	}
	for i, rank := range assignRanks(scores) {
		entries[i].Rank = rank
	}

	s.writeCache(entries)
	return entries, nil
}

// GetPodcastRanking 单个播客的排行榜：统计每个用户在该播客所有单集内
// 答对的奖杯数量，按数量降序，平手规则与全站榜一致。
// 没有任何人答对时返回空切片。
func (s *RankingService) GetPodcastRanking(podcastID uint) ([]PodcastRankingEntry, error) {
	episodeIDs, err := s.EpisodeRepo.FindIDsByPodcastID(podcastID)
	if err != nil {
		return nil, err
	}
	if len(episodeIDs) == 0 {
		return []PodcastRankingEntry{}, nil
	}

	trophyIDs, err := s.TrophyRepo.FindIDsByEpisodeIDs(episodeIDs)
	if err != nil {
		return nil, err
	}
	if len(trophyIDs) == 0 {
		return []PodcastRankingEntry{}, nil
	}

	rows, err := s.TrophyRepo.CountSolvedByTrophyIDs(trophyIDs)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []PodcastRankingEntry{}, nil
	}

	userIDs := make([]uint, len(rows))
	countByUser := make(map[uint]int, len(rows))
	for i, row := range rows {
		userIDs[i] = row.UserID
		countByUser[row.UserID] = row.Count
	}

	users, err := s.UserRepo.FindByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]PodcastRankingEntry, len(users))
	for i, u := range users {
		entries[i] = PodcastRankingEntry{
			UserID:        u.ID,
			DisplayName:   u.DisplayName,
			PhotoURL:      u.PhotoURL,
			TrophiesCount: countByUser[u.ID],
		}
	}

	// 稳定排序：数量相同保持用户ID顺序
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].TrophiesCount < entries[j].TrophiesCount; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}

	scores := make([]int, len(entries))
	for i, e := range entries {
		scores[i] = e.TrophiesCount
	}
	for i, rank := range assignRanks(scores) {
		entries[i].Rank = rank
	}

	return entries, nil
}

// InvalidateCache 在积分变化后让全站榜缓存失效
func (s *RankingService) InvalidateCache() {
	if s == nil || s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), rankingCacheKey).Err(); err != nil {
		logger.Log.Warn("ranking cache invalidation failed", zap.Error(err))
	}
}

func (s *RankingService) readCache() []RankingEntry {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(context.Background(), rankingCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var entries []RankingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func (s *RankingService) writeCache(entries []RankingEntry) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if err := s.Redis.Set(context.Background(), rankingCacheKey, data, ttl).Err(); err != nil {
		logger.Log.Warn("ranking cache write failed", zap.Error(err))
	}
}
