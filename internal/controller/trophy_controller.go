package controller

import (
	"podquest_backend/internal/service"
	"podquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrophyController struct {
	TrophyService *service.TrophyService
}

func NewTrophyController(trophyService *service.TrophyService) *TrophyController {
	return &TrophyController{TrophyService: trophyService}
}

// @Summary 创建奖杯
// @Description 在自己播客的单集下创建答题奖杯
// @Tags 奖杯
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trophy body service.TrophyRequest true "奖杯信息"
// @Success 201 {object} util.Response
// @Router /api/trophies [post]
func (c *TrophyController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TrophyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	trophy, err := c.TrophyService.CreateTrophy(user.UserID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, trophy)
}

// @Summary 更新奖杯
// @Description 更新奖杯信息，仅播客所有者可操作
// @Tags 奖杯
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trophyId path int true "奖杯ID"
// @Param trophy body service.TrophyRequest true "奖杯信息"
// @Success 200 {object} util.Response
// @Router /api/trophies/{trophyId} [put]
func (c *TrophyController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TrophyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	trophy, err := c.TrophyService.UpdateTrophy(user.UserID, util.MustParseUint(ctx.Param("trophyId")), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, trophy)
}

// @Summary 删除奖杯
// @Description 删除奖杯及其全部作答记录
// @Tags 奖杯
// @Produce json
// @Security BearerAuth
// @Param trophyId path int true "奖杯ID"
// @Success 200 {object} util.Response
// @Router /api/trophies/{trophyId} [delete]
func (c *TrophyController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.TrophyService.DeleteTrophy(user.UserID, util.MustParseUint(ctx.Param("trophyId"))); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Trophy deleted"})
}

// @Summary 提交答案
// @Description 提交奖杯答题答案。答对记入积分；答错后24小时内不允许再次作答；已答对的奖杯重复提交不重复计分
// @Tags 奖杯
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trophyId path int true "奖杯ID"
// @Param answer body controller.AnswerRequest true "选中的选项下标"
// @Success 200 {object} util.Response
// @Router /api/trophies/{trophyId}/answer [post]
func (c *TrophyController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TrophyService.SubmitAnswer(util.MustParseUint(ctx.Param("trophyId")), user.UserID, *req.Answer)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// AnswerRequest 答题请求。选项下标从0开始，指针类型区分缺省和0。
type AnswerRequest struct {
	Answer *int `json:"answer" binding:"required,min=0"`
}
