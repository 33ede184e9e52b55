package service

import (
	"errors"
	"testing"

	"podquest_backend/internal/model"
	"podquest_backend/internal/util"
)

func TestDeletePodcastCascades(t *testing.T) {
	env := newTestEnv(t)
	podcasts := env.podcastService()
	episodes := env.episodeService()
	trophies := env.trophyService()

	owner := env.createUser(t, "owner")
	listener := env.createUser(t, "listener")
	podcast := env.createPodcast(t, owner.ID, "Show")
	keep := env.createPodcast(t, owner.ID, "Other Show")

	ep1 := env.createEpisode(t, podcast.ID, "Ep 1")
	ep2 := env.createEpisode(t, podcast.ID, "Ep 2")
	keepEp := env.createEpisode(t, keep.ID, "Keep Ep")

	t1 := env.createTrophy(t, ep1.ID, 2, 0)
	keepTrophy := env.createTrophy(t, keepEp.ID, 1, 0)

	if _, err := trophies.SubmitAnswer(t1.ID, listener.ID, 0); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if _, err := trophies.SubmitAnswer(keepTrophy.ID, listener.ID, 0); err != nil {
		t.Fatalf("solve keep: %v", err)
	}
	if err := episodes.Like(listener.ID, ep2.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := podcasts.Subscribe(listener.ID, podcast.ID); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := podcasts.DeletePodcast(owner.ID, podcast.ID); err != nil {
		t.Fatalf("DeletePodcast: %v", err)
	}

	var episodesLeft, trophiesLeft, attemptsLeft, likesLeft, subsLeft int64
	env.db.Model(&model.Episode{}).Where("podcast_id = ?", podcast.ID).Count(&episodesLeft)
	env.db.Model(&model.Trophy{}).Where("episode_id IN ?", []uint{ep1.ID, ep2.ID}).Count(&trophiesLeft)
	env.db.Model(&model.UserTrophyAttempt{}).Where("trophy_id = ?", t1.ID).Count(&attemptsLeft)
	env.db.Model(&model.EpisodeLike{}).Where("episode_id IN ?", []uint{ep1.ID, ep2.ID}).Count(&likesLeft)
	env.db.Model(&model.PodcastSubscription{}).Where("podcast_id = ?", podcast.ID).Count(&subsLeft)

	if episodesLeft+trophiesLeft+attemptsLeft+likesLeft+subsLeft != 0 {
		t.Fatalf("dependents left after cascade delete: episodes=%d trophies=%d attempts=%d likes=%d subscriptions=%d",
			episodesLeft, trophiesLeft, attemptsLeft, likesLeft, subsLeft)
	}

	if _, err := podcasts.GetPodcast(podcast.ID); !errors.Is(err, util.ErrPodcastNotFound) {
		t.Fatalf("deleted podcast lookup err = %v, want ErrPodcastNotFound", err)
	}

	// 其他播客及其数据不受影响，已发放的积分保留
	if _, err := podcasts.GetPodcast(keep.ID); err != nil {
		t.Fatalf("other podcast must survive: %v", err)
	}
	var keepAttempts int64
	env.db.Model(&model.UserTrophyAttempt{}).Where("trophy_id = ?", keepTrophy.ID).Count(&keepAttempts)
	if keepAttempts != 1 {
		t.Fatalf("other podcast attempts = %d, want 1", keepAttempts)
	}
	if got := env.userLevel(t, listener.ID); got != 3 {
		t.Fatalf("listener level = %d, want 3", got)
	}
}

func TestDeletePodcastRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	podcasts := env.podcastService()

	owner := env.createUser(t, "owner")
	stranger := env.createUser(t, "stranger")
	podcast := env.createPodcast(t, owner.ID, "Show")

	if err := podcasts.DeletePodcast(stranger.ID, podcast.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if _, err := podcasts.GetPodcast(podcast.ID); err != nil {
		t.Fatalf("podcast must survive: %v", err)
	}
}

func TestUpdatePodcastRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	podcasts := env.podcastService()

	owner := env.createUser(t, "owner")
	stranger := env.createUser(t, "stranger")
	podcast := env.createPodcast(t, owner.ID, "Show")

	req := PodcastRequest{Title: "Hijacked"}
	if _, err := podcasts.UpdatePodcast(stranger.ID, podcast.ID, req); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestSubscribeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	podcasts := env.podcastService()

	owner := env.createUser(t, "owner")
	listener := env.createUser(t, "listener")
	podcast := env.createPodcast(t, owner.ID, "Show")

	for i := 0; i < 3; i++ {
		if err := podcasts.Subscribe(listener.ID, podcast.ID); err != nil {
			t.Fatalf("subscribe #%d: %v", i+1, err)
		}
	}

	var count int64
	env.db.Model(&model.PodcastSubscription{}).
		Where("user_id = ? AND podcast_id = ?", listener.ID, podcast.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("subscriptions = %d, want 1", count)
	}

	subscribed, err := podcasts.IsSubscribed(listener.ID, podcast.ID)
	if err != nil {
		t.Fatalf("IsSubscribed: %v", err)
	}
	if !subscribed {
		t.Fatal("expected subscribed")
	}

	if err := podcasts.Unsubscribe(listener.ID, podcast.ID); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	subscribed, err = podcasts.IsSubscribed(listener.ID, podcast.ID)
	if err != nil {
		t.Fatalf("IsSubscribed after unsubscribe: %v", err)
	}
	if subscribed {
		t.Fatal("expected unsubscribed")
	}
}

func TestGetSubscribedPodcasts(t *testing.T) {
	env := newTestEnv(t)
	podcasts := env.podcastService()

	owner := env.createUser(t, "owner")
	listener := env.createUser(t, "listener")
	first := env.createPodcast(t, owner.ID, "First")
	env.createPodcast(t, owner.ID, "Second")
	third := env.createPodcast(t, owner.ID, "Third")

	for _, id := range []uint{first.ID, third.ID} {
		if err := podcasts.Subscribe(listener.ID, id); err != nil {
			t.Fatalf("subscribe %d: %v", id, err)
		}
	}

	subscribed, err := podcasts.GetSubscribedPodcasts(listener.ID)
	if err != nil {
		t.Fatalf("GetSubscribedPodcasts: %v", err)
	}
	if len(subscribed) != 2 {
		t.Fatalf("got %d podcasts, want 2", len(subscribed))
	}
}

func TestSubscribeMissingPodcast(t *testing.T) {
	env := newTestEnv(t)
	podcasts := env.podcastService()
	listener := env.createUser(t, "listener")

	if err := podcasts.Subscribe(listener.ID, 99); !errors.Is(err, util.ErrPodcastNotFound) {
		t.Fatalf("err = %v, want ErrPodcastNotFound", err)
	}
}
