package service

import (
	"reflect"
	"testing"
	"time"

	"podquest_backend/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func TestAssignRanks(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		want   []int
	}{
		{"empty", []int{}, []int{}},
		{"single", []int{5}, []int{1}},
		{"ties share rank with gap", []int{10, 10, 7, 5}, []int{1, 1, 3, 4}},
		{"all tied", []int{4, 4, 4}, []int{1, 1, 1}},
		{"distinct", []int{9, 8, 7}, []int{1, 2, 3}},
		{"tie in the middle", []int{9, 7, 7, 7, 2}, []int{1, 2, 2, 2, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := assignRanks(tc.scores)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("assignRanks(%v) = %v, want %v", tc.scores, got, tc.want)
			}
		})
	}
}

func (e *testEnv) rankingService(rdb *redis.Client, ttl time.Duration) *RankingService {
	return NewRankingService(e.users, e.episodes, e.trophies, rdb, ttl)
}

func TestGetRankingOrdersAndRanks(t *testing.T) {
	env := newTestEnv(t)
	svc := env.rankingService(nil, 0)

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	dave := env.createUser(t, "dave")

	env.db.Model(&model.User{}).Where("id = ?", alice.ID).Update("level", 10)
	env.db.Model(&model.User{}).Where("id = ?", bob.ID).Update("level", 10)
	env.db.Model(&model.User{}).Where("id = ?", carol.ID).Update("level", 7)
	env.db.Model(&model.User{}).Where("id = ?", dave.ID).Update("level", 5)

	entries, err := svc.GetRanking()
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}

	wantRanks := []int{1, 1, 3, 4}
	wantUsers := []uint{alice.ID, bob.ID, carol.ID, dave.ID}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	for i, entry := range entries {
		if entry.UserID != wantUsers[i] {
			t.Fatalf("entry[%d].UserID = %d, want %d", i, entry.UserID, wantUsers[i])
		}
		if entry.Rank != wantRanks[i] {
			t.Fatalf("entry[%d].Rank = %d, want %d", i, entry.Rank, wantRanks[i])
		}
	}
}

func TestGetRankingEmpty(t *testing.T) {
	env := newTestEnv(t)
	svc := env.rankingService(nil, 0)

	entries, err := svc.GetRanking()
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("empty ranking should be an empty slice, got %v", entries)
	}
}

func TestGetRankingUsesCache(t *testing.T) {
	env := newTestEnv(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := env.rankingService(rdb, time.Minute)

	alice := env.createUser(t, "alice")
	env.db.Model(&model.User{}).Where("id = ?", alice.ID).Update("level", 4)

	first, err := svc.GetRanking()
	if err != nil {
		t.Fatalf("first GetRanking: %v", err)
	}
	if len(first) != 1 || first[0].Level != 4 {
		t.Fatalf("unexpected first ranking: %v", first)
	}

	// 数据库变了但缓存还在，结果保持不变
	env.db.Model(&model.User{}).Where("id = ?", alice.ID).Update("level", 9)
	cached, err := svc.GetRanking()
	if err != nil {
		t.Fatalf("cached GetRanking: %v", err)
	}
	if cached[0].Level != 4 {
		t.Fatalf("expected cached level 4, got %d", cached[0].Level)
	}

	// 失效后重新读库
	svc.InvalidateCache()
	fresh, err := svc.GetRanking()
	if err != nil {
		t.Fatalf("fresh GetRanking: %v", err)
	}
	if fresh[0].Level != 9 {
		t.Fatalf("expected fresh level 9, got %d", fresh[0].Level)
	}
}

func TestAnswerAwardInvalidatesRankingCache(t *testing.T) {
	env := newTestEnv(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ranking := env.rankingService(rdb, time.Minute)
	svc := NewTrophyService(env.trophies, env.episodes, env.podcasts, env.users, ranking, nil, env.db)

	owner := env.createUser(t, "owner")
	player := env.createUser(t, "player")
	podcast := env.createPodcast(t, owner.ID, "Show")
	episode := env.createEpisode(t, podcast.ID, "Ep 1")
	trophy := env.createTrophy(t, episode.ID, 3, 0)

	before, err := ranking.GetRanking()
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	for _, entry := range before {
		if entry.Level != 0 {
			t.Fatalf("expected all levels 0 before answering, got %v", before)
		}
	}

	if _, err := svc.SubmitAnswer(trophy.ID, player.ID, 0); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	after, err := ranking.GetRanking()
	if err != nil {
		t.Fatalf("GetRanking after award: %v", err)
	}
	if after[0].UserID != player.ID || after[0].Level != 3 {
		t.Fatalf("expected player on top with level 3, got %v", after[0])
	}
}

func TestGetPodcastRanking(t *testing.T) {
	env := newTestEnv(t)
	svc := env.trophyService()
	ranking := env.rankingService(nil, 0)

	owner := env.createUser(t, "owner")
	ann := env.createUser(t, "ann")
	ben := env.createUser(t, "ben")
	podcast := env.createPodcast(t, owner.ID, "Show")
	other := env.createPodcast(t, owner.ID, "Other Show")

	ep1 := env.createEpisode(t, podcast.ID, "Ep 1")
	ep2 := env.createEpisode(t, podcast.ID, "Ep 2")
	otherEp := env.createEpisode(t, other.ID, "Other Ep")

	t1 := env.createTrophy(t, ep1.ID, 1, 0)
	t2 := env.createTrophy(t, ep2.ID, 2, 0)
	t3 := env.createTrophy(t, otherEp.ID, 3, 0)

	// ann 在目标播客里答对2个，ben 答对1个；ben 另在别的播客答对1个（不计入）
	for _, trophyID := range []uint{t1.ID, t2.ID} {
		if _, err := svc.SubmitAnswer(trophyID, ann.ID, 0); err != nil {
			t.Fatalf("ann solve %d: %v", trophyID, err)
		}
	}
	if _, err := svc.SubmitAnswer(t1.ID, ben.ID, 0); err != nil {
		t.Fatalf("ben solve: %v", err)
	}
	if _, err := svc.SubmitAnswer(t3.ID, ben.ID, 0); err != nil {
		t.Fatalf("ben solve other: %v", err)
	}

	entries, err := ranking.GetPodcastRanking(podcast.ID)
	if err != nil {
		t.Fatalf("GetPodcastRanking: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].UserID != ann.ID || entries[0].TrophiesCount != 2 || entries[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
	if entries[1].UserID != ben.ID || entries[1].TrophiesCount != 1 || entries[1].Rank != 2 {
		t.Fatalf("unexpected runner-up: %+v", entries[1])
	}
}

func TestGetPodcastRankingEmpty(t *testing.T) {
	env := newTestEnv(t)
	ranking := env.rankingService(nil, 0)

	owner := env.createUser(t, "owner")
	podcast := env.createPodcast(t, owner.ID, "Show")
	env.createEpisode(t, podcast.ID, "Ep 1")

	entries, err := ranking.GetPodcastRanking(podcast.ID)
	if err != nil {
		t.Fatalf("GetPodcastRanking: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty slice, got %v", entries)
	}
}
