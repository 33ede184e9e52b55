package controller

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"podquest_backend/internal/service"
	"podquest_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// scopePattern 限定上传归属：资源类型/资源ID
var scopePattern = regexp.MustCompile(`^(podcasts|episodes|trophies)/\d+$`)

type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// @Summary 上传图片
// @Description 上传播客/单集/奖杯封面图片
// @Tags 媒体
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片文件"
// @Param scope formData string true "归属，如 podcasts/3"
// @Success 200 {object} util.Response
// @Router /api/media/image [post]
func (c *MediaController) UploadImage(ctx *gin.Context) {
	c.upload(ctx, util.MaxImageSize, c.MediaService.UploadImage)
}

// @Summary 上传音频
// @Description 上传单集音频，返回URL和ffprobe探测到的时长
// @Tags 媒体
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "音频文件"
// @Param scope formData string true "归属，如 episodes/7"
// @Success 200 {object} util.Response
// @Router /api/media/audio [post]
func (c *MediaController) UploadAudio(ctx *gin.Context) {
	c.upload(ctx, util.MaxAudioSize, c.MediaService.UploadAudio)
}

type uploadFunc func(ctx context.Context, scope, localPath, originalName string) (*service.UploadResult, error)

// upload 把multipart文件落到临时目录，交给服务层校验和上传
func (c *MediaController) upload(ctx *gin.Context, maxSize int64, fn uploadFunc) {
	if user := util.GetUserFromContext(ctx); user == nil {
		util.Unauthorized(ctx)
		return
	}

	scope := ctx.PostForm("scope")
	if !scopePattern.MatchString(scope) {
		util.BadRequest(ctx, "invalid scope")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > maxSize {
		util.BadRequest(ctx, fmt.Sprintf("file exceeds %d bytes", maxSize))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	result, err := fn(ctx.Request.Context(), scope, tmpPath, fileHeader.Filename)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, result)
}
