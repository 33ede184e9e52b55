package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podquest_backend/internal/config"
	"podquest_backend/internal/controller"
	"podquest_backend/internal/repository"
	"podquest_backend/internal/service"
	"podquest_backend/pkg/database"
	"podquest_backend/pkg/logger"
	"podquest_backend/pkg/monitoring"
	"podquest_backend/pkg/security"
	"podquest_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user    *repository.UserRepository
	podcast *repository.PodcastRepository
	episode *repository.EpisodeRepository
	trophy  *repository.TrophyRepository
	faq     *repository.FAQRepository
}

type services struct {
	storage service.StorageProvider
	auth    *service.AuthService
	user    *service.UserService
	podcast *service.PodcastService
	episode *service.EpisodeService
	trophy  *service.TrophyService
	ranking *service.RankingService
	media   *service.MediaService
	faq     *service.FAQService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	podcast *controller.PodcastController
	episode *controller.EpisodeController
	trophy  *controller.TrophyController
	ranking *controller.RankingController
	media   *controller.MediaController
	faq     *controller.FAQController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由配置监听器在文件变更后调用
func (a *App) ApplyConfig(cfg *config.Config) {
	logger.Log.Info("Applying reloaded configuration")
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		podcast: repository.NewPodcastRepository(db),
		episode: repository.NewEpisodeRepository(db),
		trophy:  repository.NewTrophyRepository(db),
		faq:     repository.NewFAQRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.trophy, s.storage)
	s.ranking = service.NewRankingService(repos.user, repos.episode, repos.trophy, rdb, time.Duration(cfg.Ranking.CacheTTLSeconds)*time.Second)
	s.podcast = service.NewPodcastService(repos.podcast, repos.episode, repos.trophy, s.storage, db)
	s.episode = service.NewEpisodeService(repos.episode, repos.podcast, repos.trophy, s.storage, db)
	s.trophy = service.NewTrophyService(repos.trophy, repos.episode, repos.podcast, repos.user, s.ranking, s.storage, db)
	s.media = service.NewMediaService(s.storage)
	s.faq = service.NewFAQService(repos.faq)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		user:    controller.NewUserController(s.user, s.trophy),
		podcast: controller.NewPodcastController(s.podcast, s.episode, s.ranking),
		episode: controller.NewEpisodeController(s.episode, s.trophy),
		trophy:  controller.NewTrophyController(s.trophy),
		ranking: controller.NewRankingController(s.ranking),
		media:   controller.NewMediaController(s.media),
		faq:     controller.NewFAQController(s.faq),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("podcast-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.ranking.CacheTTL = time.Duration(newCfg.Ranking.CacheTTLSeconds) * time.Second
		logger.Log.Info("Ranking cache TTL updated", zap.Int("seconds", newCfg.Ranking.CacheTTLSeconds))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
