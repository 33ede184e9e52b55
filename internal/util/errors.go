package util

import "errors"

var (
	ErrUserNotFound          = errors.New("用户不存在")
	ErrEmailRegistered       = errors.New("该邮箱已被注册")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrPodcastNotFound       = errors.New("podcast not found")
	ErrEpisodeNotFound       = errors.New("episode not found")
	ErrTrophyNotFound        = errors.New("trophy not found")
	ErrUnknownTaskType       = errors.New("unknown task type")
	ErrAnswerIndexOutOfRange = errors.New("good answer index out of range")
)
