package controller

import (
	"podquest_backend/internal/service"
	"podquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PodcastController struct {
	PodcastService *service.PodcastService
	EpisodeService *service.EpisodeService
	RankingService *service.RankingService
}

func NewPodcastController(
	podcastService *service.PodcastService,
	episodeService *service.EpisodeService,
	rankingService *service.RankingService,
) *PodcastController {
	return &PodcastController{
		PodcastService: podcastService,
		EpisodeService: episodeService,
		RankingService: rankingService,
	}
}

// @Summary 获取播客列表
// @Description 获取全部播客
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/podcasts [get]
func (c *PodcastController) List(ctx *gin.Context) {
	podcasts, err := c.PodcastService.GetPodcasts()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, podcasts)
}

// @Summary 获取播客详情
// @Description 获取单个播客及当前用户的订阅状态
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Param podcastId path int true "播客ID"
// @Success 200 {object} util.Response
// @Router /api/podcasts/{podcastId} [get]
func (c *PodcastController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	podcastID := util.MustParseUint(ctx.Param("podcastId"))
	podcast, err := c.PodcastService.GetPodcast(podcastID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	subscribed, err := c.PodcastService.IsSubscribed(user.UserID, podcastID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"podcast": podcast, "subscribed": subscribed})
}

// @Summary 创建播客
// @Description 创建新播客，创建者即所有者
// @Tags 播客
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param podcast body service.PodcastRequest true "播客信息"
// @Success 201 {object} util.Response
// @Router /api/podcasts [post]
func (c *PodcastController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PodcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	podcast, err := c.PodcastService.CreatePodcast(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, podcast)
}

// @Summary 更新播客
// @Description 更新播客信息，仅所有者可操作
// @Tags 播客
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param podcastId path int true "播客ID"
// @Param podcast body service.PodcastRequest true "播客信息"
// @Success 200 {object} util.Response
// @Router /api/podcasts/{podcastId} [put]
func (c *PodcastController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PodcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	podcast, err := c.PodcastService.UpdatePodcast(user.UserID, util.MustParseUint(ctx.Param("podcastId")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, podcast)
}

// @Summary 删除播客
// @Description 级联删除播客及其单集、奖杯、作答记录、点赞和订阅
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Param podcastId path int true "播客ID"
// @Success 200 {object} util.Response
// @Router /api/podcasts/{podcastId} [delete]
func (c *PodcastController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.PodcastService.DeletePodcast(user.UserID, util.MustParseUint(ctx.Param("podcastId"))); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Podcast deleted"})
}

// @Summary 获取播客单集列表
// @Description 获取播客下的全部单集，按发布日期降序
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Param podcastId path int true "播客ID"
// @Success 200 {object} util.Response
// @Router /api/podcasts/{podcastId}/episodes [get]
func (c *PodcastController) ListEpisodes(ctx *gin.Context) {
	episodes, err := c.EpisodeService.GetPodcastEpisodes(util.MustParseUint(ctx.Param("podcastId")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, episodes)
}

// @Summary 订阅播客
// @Description 订阅播客，重复订阅不报错
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Param podcastId path int true "播客ID"
// @Success 200 {object} util.Response
// @Router /api/podcasts/{podcastId}/subscribe [post]
func (c *PodcastController) Subscribe(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.PodcastService.Subscribe(user.UserID, util.MustParseUint(ctx.Param("podcastId"))); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Subscribed"})
}

// @Summary 取消订阅
// @Description 取消订阅播客
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Param podcastId path int true "播客ID"
// @Success 200 {object} util.Response
// @Router /api/podcasts/{podcastId}/subscribe [delete]
func (c *PodcastController) Unsubscribe(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.PodcastService.Unsubscribe(user.UserID, util.MustParseUint(ctx.Param("podcastId"))); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Unsubscribed"})
}

// @Summary 获取我的订阅
// @Description 获取当前用户订阅的全部播客
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/podcasts/subscriptions [get]
func (c *PodcastController) ListSubscriptions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	podcasts, err := c.PodcastService.GetSubscribedPodcasts(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, podcasts)
}

// @Summary 播客内排行榜
// @Description 按答对奖杯数统计该播客内的用户排名
// @Tags 播客
// @Produce json
// @Security BearerAuth
// @Param podcastId path int true "播客ID"
// @Success 200 {object} util.Response
// @Router /api/podcasts/{podcastId}/ranking [get]
func (c *PodcastController) Ranking(ctx *gin.Context) {
	entries, err := c.RankingService.GetPodcastRanking(util.MustParseUint(ctx.Param("podcastId")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
