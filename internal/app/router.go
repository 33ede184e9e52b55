package app

import (
	"podquest_backend/docs"
	"podquest_backend/internal/config"
	"podquest_backend/internal/middleware"
	"podquest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/faq", c.faq.List)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 播客
		authGroup.GET("/podcasts", c.podcast.List)
		authGroup.POST("/podcasts", c.podcast.Create)
		authGroup.GET("/podcasts/subscriptions", c.podcast.ListSubscriptions)
		authGroup.GET("/podcasts/:podcastId", c.podcast.Get)
		authGroup.PUT("/podcasts/:podcastId", c.podcast.Update)
		authGroup.DELETE("/podcasts/:podcastId", c.podcast.Delete)
		authGroup.GET("/podcasts/:podcastId/episodes", c.podcast.ListEpisodes)
		authGroup.POST("/podcasts/:podcastId/subscribe", c.podcast.Subscribe)
		authGroup.DELETE("/podcasts/:podcastId/subscribe", c.podcast.Unsubscribe)
		authGroup.GET("/podcasts/:podcastId/ranking", c.podcast.Ranking)

		// 单集
		authGroup.POST("/episodes", c.episode.Create)
		authGroup.GET("/episodes/liked", c.episode.ListLiked)
		authGroup.GET("/episodes/:episodeId", c.episode.Get)
		authGroup.PUT("/episodes/:episodeId", c.episode.Update)
		authGroup.DELETE("/episodes/:episodeId", c.episode.Delete)
		authGroup.POST("/episodes/:episodeId/like", c.episode.Like)
		authGroup.DELETE("/episodes/:episodeId/like", c.episode.Unlike)
		authGroup.GET("/episodes/:episodeId/trophies", c.episode.ListTrophies)

		// 奖杯
		authGroup.POST("/trophies", c.trophy.Create)
		authGroup.PUT("/trophies/:trophyId", c.trophy.Update)
		authGroup.DELETE("/trophies/:trophyId", c.trophy.Delete)
		authGroup.POST("/trophies/:trophyId/answer", c.trophy.SubmitAnswer)

		// 排行榜
		authGroup.GET("/ranking", c.ranking.Get)

		// 用户
		authGroup.GET("/users/me", c.user.GetProfile)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)
		authGroup.GET("/users/me/trophies", c.user.GetAchievements)

		// 媒体上传
		authGroup.POST("/media/image", c.media.UploadImage)
		authGroup.POST("/media/audio", c.media.UploadAudio)
	}
}
