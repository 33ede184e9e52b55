package service

import (
	"os"
	"testing"

	"podquest_backend/internal/model"
	"podquest_backend/internal/repository"
	"podquest_backend/pkg/database"
	"podquest_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	users    *repository.UserRepository
	podcasts *repository.PodcastRepository
	episodes *repository.EpisodeRepository
	trophies *repository.TrophyRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	return &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		podcasts: repository.NewPodcastRepository(db),
		episodes: repository.NewEpisodeRepository(db),
		trophies: repository.NewTrophyRepository(db),
	}
}

func (e *testEnv) trophyService() *TrophyService {
	return NewTrophyService(e.trophies, e.episodes, e.podcasts, e.users, nil, nil, e.db)
}

func (e *testEnv) podcastService() *PodcastService {
	return NewPodcastService(e.podcasts, e.episodes, e.trophies, nil, e.db)
}

func (e *testEnv) episodeService() *EpisodeService {
	return NewEpisodeService(e.episodes, e.podcasts, e.trophies, nil, e.db)
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	user := &model.User{DisplayName: name, Email: name + "@example.com", Password: "hash"}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) createPodcast(t *testing.T, ownerID uint, title string) *model.Podcast {
	t.Helper()
	podcast := &model.Podcast{UserID: ownerID, Title: title, Host: "Host"}
	if err := e.db.Create(podcast).Error; err != nil {
		t.Fatalf("failed to create podcast: %v", err)
	}
	return podcast
}

func (e *testEnv) createEpisode(t *testing.T, podcastID uint, title string) *model.Episode {
	t.Helper()
	episode := &model.Episode{PodcastID: podcastID, Title: title}
	if err := e.db.Create(episode).Error; err != nil {
		t.Fatalf("failed to create episode: %v", err)
	}
	return episode
}

func (e *testEnv) createTrophy(t *testing.T, episodeID uint, level, goodAnswer int) *model.Trophy {
	t.Helper()
	trophy := &model.Trophy{
		EpisodeID:       episodeID,
		Title:           "Trophy",
		Level:           level,
		TaskType:        model.TaskTypeRadio,
		Question:        "Which option is correct?",
		GoodAnswerIndex: goodAnswer,
	}
	if err := trophy.SetRadioOptions([]string{"A", "B", "C"}); err != nil {
		t.Fatalf("failed to set options: %v", err)
	}
	if err := e.db.Create(trophy).Error; err != nil {
		t.Fatalf("failed to create trophy: %v", err)
	}
	return trophy
}

func (e *testEnv) userLevel(t *testing.T, userID uint) int {
	t.Helper()
	var user model.User
	if err := e.db.First(&user, userID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	return user.Level
}
