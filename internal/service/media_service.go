package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"podquest_backend/internal/util"
	"podquest_backend/pkg/logger"

	"go.uber.org/zap"
)

// MediaService 处理媒体文件上传：校验、音频时长探测、落存储。
type MediaService struct {
	Storage StorageProvider
}

func NewMediaService(storage StorageProvider) *MediaService {
	return &MediaService{Storage: storage}
}

// UploadResult 上传结果，音频附带ffprobe探测到的时长
type UploadResult struct {
	URL             string `json:"url"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
}

// UploadImage 校验并上传图片，返回可访问URL。
// scope 形如 "podcasts/3"、"episodes/7"、"trophies/12"，删除时按前缀清理。
func (s *MediaService) UploadImage(ctx context.Context, scope, localPath, originalName string) (*UploadResult, error) {
	mimeType, err := s.detectMime(localPath, []string{util.MimeImage})
	if err != nil {
		return nil, err
	}
	if !util.HasAllowedExtension(originalName, util.AllowedImageExtensions) {
		return nil, fmt.Errorf("unsupported image extension: %s", filepath.Ext(originalName))
	}

	key := fmt.Sprintf("%s/%d%s", scope, time.Now().UnixNano(), filepath.Ext(originalName))
	url, err := s.Storage.UploadFile(ctx, key, localPath, mimeType)
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: url}, nil
}

// UploadAudio 校验并上传音频，探测时长写回结果。
// 探测失败不阻断上传，时长记0。
func (s *MediaService) UploadAudio(ctx context.Context, scope, localPath, originalName string) (*UploadResult, error) {
	mimeType, err := s.detectMime(localPath, []string{util.MimeAudio, util.MimeMpeg})
	if err != nil {
		return nil, err
	}
	if !util.HasAllowedExtension(originalName, util.AllowedAudioExtensions) {
		return nil, fmt.Errorf("unsupported audio extension: %s", filepath.Ext(originalName))
	}

	duration := 0
	if info, err := util.GetAudioInfo(localPath); err != nil {
		logger.Log.Warn("audio probe failed", zap.String("file", originalName), zap.Error(err))
	} else {
		duration = int(info.Duration)
	}

	key := fmt.Sprintf("%s/%d%s", scope, time.Now().UnixNano(), filepath.Ext(originalName))
	url, err := s.Storage.UploadFile(ctx, key, localPath, mimeType)
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: url, DurationSeconds: duration}, nil
}

func (s *MediaService) detectMime(localPath string, allowed []string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return util.ValidateMimeType(f, allowed)
}
