package controller

import (
	"podquest_backend/internal/service"
	"podquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EpisodeController struct {
	EpisodeService *service.EpisodeService
	TrophyService  *service.TrophyService
}

func NewEpisodeController(episodeService *service.EpisodeService, trophyService *service.TrophyService) *EpisodeController {
	return &EpisodeController{EpisodeService: episodeService, TrophyService: trophyService}
}

// @Summary 获取单集详情
// @Description 获取单集信息及当前用户的点赞状态
// @Tags 单集
// @Produce json
// @Security BearerAuth
// @Param episodeId path int true "单集ID"
// @Success 200 {object} util.Response
// @Router /api/episodes/{episodeId} [get]
func (c *EpisodeController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	episodeID := util.MustParseUint(ctx.Param("episodeId"))
	episode, err := c.EpisodeService.GetEpisode(episodeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	liked, err := c.EpisodeService.IsLiked(user.UserID, episodeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"episode": episode, "liked": liked})
}

// @Summary 创建单集
// @Description 在自己的播客下创建新单集
// @Tags 单集
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param episode body service.EpisodeRequest true "单集信息"
// @Success 201 {object} util.Response
// @Router /api/episodes [post]
func (c *EpisodeController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.EpisodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	episode, err := c.EpisodeService.CreateEpisode(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, episode)
}

// @Summary 更新单集
// @Description 更新单集信息，仅播客所有者可操作
// @Tags 单集
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param episodeId path int true "单集ID"
// @Param episode body service.EpisodeRequest true "单集信息"
// @Success 200 {object} util.Response
// @Router /api/episodes/{episodeId} [put]
func (c *EpisodeController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.EpisodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	episode, err := c.EpisodeService.UpdateEpisode(user.UserID, util.MustParseUint(ctx.Param("episodeId")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, episode)
}

// @Summary 删除单集
// @Description 级联删除单集及其奖杯、作答记录和点赞
// @Tags 单集
// @Produce json
// @Security BearerAuth
// @Param episodeId path int true "单集ID"
// @Success 200 {object} util.Response
// @Router /api/episodes/{episodeId} [delete]
func (c *EpisodeController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.EpisodeService.DeleteEpisode(user.UserID, util.MustParseUint(ctx.Param("episodeId"))); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Episode deleted"})
}

// @Summary 点赞单集
// @Description 点赞单集，重复点赞不报错
// @Tags 单集
// @Produce json
// @Security BearerAuth
// @Param episodeId path int true "单集ID"
// @Success 200 {object} util.Response
// @Router /api/episodes/{episodeId}/like [post]
func (c *EpisodeController) Like(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.EpisodeService.Like(user.UserID, util.MustParseUint(ctx.Param("episodeId"))); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Liked"})
}

// @Summary 取消点赞
// @Description 取消对单集的点赞
// @Tags 单集
// @Produce json
// @Security BearerAuth
// @Param episodeId path int true "单集ID"
// @Success 200 {object} util.Response
// @Router /api/episodes/{episodeId}/like [delete]
func (c *EpisodeController) Unlike(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.EpisodeService.Unlike(user.UserID, util.MustParseUint(ctx.Param("episodeId"))); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Unliked"})
}

// @Summary 获取我点赞的单集
// @Description 获取当前用户点赞过的全部单集
// @Tags 单集
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/episodes/liked [get]
func (c *EpisodeController) ListLiked(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	episodes, err := c.EpisodeService.GetLikedEpisodes(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, episodes)
}

// @Summary 获取单集奖杯列表
// @Description 获取单集的全部奖杯及当前用户的作答状态，已答对的排前
// @Tags 单集
// @Produce json
// @Security BearerAuth
// @Param episodeId path int true "单集ID"
// @Success 200 {object} util.Response
// @Router /api/episodes/{episodeId}/trophies [get]
func (c *EpisodeController) ListTrophies(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	trophies, err := c.TrophyService.GetEpisodeTrophies(util.MustParseUint(ctx.Param("episodeId")), user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, trophies)
}
