package service

import (
	"errors"
	"testing"

	"podquest_backend/internal/util"
)

func TestGetProfileCountsTrophies(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.users, env.trophies, nil)
	trophies := env.trophyService()

	owner := env.createUser(t, "owner")
	player := env.createUser(t, "player")
	podcast := env.createPodcast(t, owner.ID, "Show")
	episode := env.createEpisode(t, podcast.ID, "Ep 1")
	t1 := env.createTrophy(t, episode.ID, 1, 0)
	t2 := env.createTrophy(t, episode.ID, 3, 0)
	missed := env.createTrophy(t, episode.ID, 2, 0)

	for _, id := range []uint{t1.ID, t2.ID} {
		if _, err := trophies.SubmitAnswer(id, player.ID, 0); err != nil {
			t.Fatalf("solve %d: %v", id, err)
		}
	}
	if _, err := trophies.SubmitAnswer(missed.ID, player.ID, 1); err != nil {
		t.Fatalf("miss: %v", err)
	}

	profile, err := users.GetProfile(player.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.TrophiesCount != 2 {
		t.Fatalf("trophies count = %d, want 2", profile.TrophiesCount)
	}
	if profile.Level != 4 {
		t.Fatalf("level = %d, want 4", profile.Level)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	users := NewUserService(env.users, env.trophies, nil)

	user := env.createUser(t, "alice")
	updated, err := users.UpdateProfile(user.ID, ProfileRequest{DisplayName: "Alice Cooper"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.DisplayName != "Alice Cooper" {
		t.Fatalf("display name = %q", updated.DisplayName)
	}

	if _, err := users.GetProfile(999); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
