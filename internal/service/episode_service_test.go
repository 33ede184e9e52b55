package service

import (
	"errors"
	"testing"
	"time"

	"podquest_backend/internal/model"
	"podquest_backend/internal/util"
)

func TestCreateEpisode(t *testing.T) {
	env := newTestEnv(t)
	episodes := env.episodeService()

	owner := env.createUser(t, "owner")
	stranger := env.createUser(t, "stranger")
	podcast := env.createPodcast(t, owner.ID, "Show")

	req := EpisodeRequest{
		PodcastID: podcast.ID,
		Title:     "Ep 1",
		Date:      time.Now().Add(-24 * time.Hour),
	}

	t.Run("owner creates", func(t *testing.T) {
		episode, err := episodes.CreateEpisode(owner.ID, req)
		if err != nil {
			t.Fatalf("CreateEpisode: %v", err)
		}
		if episode.PodcastID != podcast.ID {
			t.Fatalf("podcast id = %d, want %d", episode.PodcastID, podcast.ID)
		}
	})

	t.Run("stranger denied", func(t *testing.T) {
		if _, err := episodes.CreateEpisode(stranger.ID, req); !errors.Is(err, util.ErrPermissionDenied) {
			t.Fatalf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("future date rejected", func(t *testing.T) {
		bad := req
		bad.Date = time.Now().Add(48 * time.Hour)
		if _, err := episodes.CreateEpisode(owner.ID, bad); err == nil {
			t.Fatal("expected error for future date")
		}
	})

	t.Run("missing podcast", func(t *testing.T) {
		bad := req
		bad.PodcastID = 99
		if _, err := episodes.CreateEpisode(owner.ID, bad); !errors.Is(err, util.ErrPodcastNotFound) {
			t.Fatalf("err = %v, want ErrPodcastNotFound", err)
		}
	})
}

func TestEpisodeLikes(t *testing.T) {
	env := newTestEnv(t)
	episodes := env.episodeService()

	owner := env.createUser(t, "owner")
	listener := env.createUser(t, "listener")
	podcast := env.createPodcast(t, owner.ID, "Show")
	ep1 := env.createEpisode(t, podcast.ID, "Ep 1")
	ep2 := env.createEpisode(t, podcast.ID, "Ep 2")

	for i := 0; i < 2; i++ {
		if err := episodes.Like(listener.ID, ep1.ID); err != nil {
			t.Fatalf("like #%d: %v", i+1, err)
		}
	}
	if err := episodes.Like(listener.ID, ep2.ID); err != nil {
		t.Fatalf("like ep2: %v", err)
	}

	var count int64
	env.db.Model(&model.EpisodeLike{}).Where("user_id = ? AND episode_id = ?", listener.ID, ep1.ID).Count(&count)
	if count != 1 {
		t.Fatalf("likes = %d, want 1", count)
	}

	liked, err := episodes.GetLikedEpisodes(listener.ID)
	if err != nil {
		t.Fatalf("GetLikedEpisodes: %v", err)
	}
	if len(liked) != 2 {
		t.Fatalf("liked episodes = %d, want 2", len(liked))
	}

	if err := episodes.Unlike(listener.ID, ep1.ID); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	liked, err = episodes.GetLikedEpisodes(listener.ID)
	if err != nil {
		t.Fatalf("GetLikedEpisodes after unlike: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != ep2.ID {
		t.Fatalf("liked after unlike = %v", liked)
	}
}

func TestLikeMissingEpisode(t *testing.T) {
	env := newTestEnv(t)
	episodes := env.episodeService()
	listener := env.createUser(t, "listener")

	if err := episodes.Like(listener.ID, 42); !errors.Is(err, util.ErrEpisodeNotFound) {
		t.Fatalf("err = %v, want ErrEpisodeNotFound", err)
	}
}

func TestDeleteEpisodeCascades(t *testing.T) {
	env := newTestEnv(t)
	episodes := env.episodeService()
	trophies := env.trophyService()

	owner := env.createUser(t, "owner")
	player := env.createUser(t, "player")
	podcast := env.createPodcast(t, owner.ID, "Show")
	episode := env.createEpisode(t, podcast.ID, "Ep 1")
	trophy := env.createTrophy(t, episode.ID, 2, 0)

	if _, err := trophies.SubmitAnswer(trophy.ID, player.ID, 0); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if err := episodes.Like(player.ID, episode.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := episodes.DeleteEpisode(owner.ID, episode.ID); err != nil {
		t.Fatalf("DeleteEpisode: %v", err)
	}

	var trophiesLeft, attemptsLeft, likesLeft int64
	env.db.Model(&model.Trophy{}).Where("episode_id = ?", episode.ID).Count(&trophiesLeft)
	env.db.Model(&model.UserTrophyAttempt{}).Where("trophy_id = ?", trophy.ID).Count(&attemptsLeft)
	env.db.Model(&model.EpisodeLike{}).Where("episode_id = ?", episode.ID).Count(&likesLeft)
	if trophiesLeft+attemptsLeft+likesLeft != 0 {
		t.Fatalf("dependents left: trophies=%d attempts=%d likes=%d", trophiesLeft, attemptsLeft, likesLeft)
	}

	if _, err := episodes.GetEpisode(episode.ID); !errors.Is(err, util.ErrEpisodeNotFound) {
		t.Fatalf("deleted episode lookup err = %v, want ErrEpisodeNotFound", err)
	}

	// 积分不回收
	if got := env.userLevel(t, player.ID); got != 2 {
		t.Fatalf("player level = %d, want 2", got)
	}
}

func TestGetPodcastEpisodesOrdering(t *testing.T) {
	env := newTestEnv(t)
	episodes := env.episodeService()

	owner := env.createUser(t, "owner")
	podcast := env.createPodcast(t, owner.ID, "Show")

	old := &model.Episode{PodcastID: podcast.ID, Title: "Old", Date: time.Now().Add(-48 * time.Hour)}
	recent := &model.Episode{PodcastID: podcast.ID, Title: "Recent", Date: time.Now().Add(-1 * time.Hour)}
	env.db.Create(old)
	env.db.Create(recent)

	list, err := episodes.GetPodcastEpisodes(podcast.ID)
	if err != nil {
		t.Fatalf("GetPodcastEpisodes: %v", err)
	}
	if len(list) != 2 || list[0].Title != "Recent" {
		t.Fatalf("expected newest first, got %v", list)
	}
}
