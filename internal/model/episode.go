package model

import "time"

// swagger:model Episode
type Episode struct {
	BaseModel
	PodcastID        uint      `gorm:"index;not null" json:"podcastId"`
	Title            string    `gorm:"size:200;not null" json:"title"`
	Date             time.Time `json:"date"` // 发布日期，不允许未来时间
	Description      string    `gorm:"type:text" json:"description"`
	LongDescription  string    `gorm:"type:text" json:"longDescription"`
	Photo            string    `gorm:"size:255" json:"photo"`
	AudioURL         string    `gorm:"size:255" json:"audioURL"`
	DurationSeconds  int       `gorm:"default:0" json:"durationSeconds"` // 由 ffprobe 探测
	SpotifyURL       string    `gorm:"size:255" json:"spotifyURL,omitempty"`
	ApplePodcastsURL string    `gorm:"size:255" json:"applePodcastsURL,omitempty"`
	YTMusicURL       string    `gorm:"size:255" json:"ytMusicURL,omitempty"`
}

func (Episode) TableName() string {
	return "episodes"
}
