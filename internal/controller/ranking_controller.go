package controller

import (
	"podquest_backend/internal/service"
	"podquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

// @Summary 全站排行榜
// @Description 全部用户按累计积分降序，并列共享名次
// @Tags 排行榜
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/ranking [get]
func (c *RankingController) Get(ctx *gin.Context) {
	entries, err := c.RankingService.GetRanking()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
