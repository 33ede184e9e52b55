package controller

import (
	"errors"
	"net/http"

	"podquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 将服务层的哨兵错误映射为HTTP状态码
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrPodcastNotFound),
		errors.Is(err, util.ErrEpisodeNotFound),
		errors.Is(err, util.ErrTrophyNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrUnknownTaskType),
		errors.Is(err, util.ErrAnswerIndexOutOfRange):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
