package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeAudio = "audio/"
	MimeImage = "image/"
	MimeMpeg  = "video/mpeg" // 部分浏览器把 mp3 识别成 video/mpeg

	MaxImageSize = 5 << 20   // 5MB
	MaxAudioSize = 200 << 20 // 200MB
)

var (
	AllowedAudioExtensions = []string{".mp3", ".m4a", ".aac", ".ogg", ".wav", ".flac"}
	AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
)
