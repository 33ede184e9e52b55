package model

// swagger:model PodcastSubscription
type PodcastSubscription struct {
	BaseModel
	UserID    uint `gorm:"uniqueIndex:idx_user_podcast;not null" json:"userId"`
	PodcastID uint `gorm:"uniqueIndex:idx_user_podcast;not null" json:"podcastId"`
}

func (PodcastSubscription) TableName() string {
	return "podcast_subscriptions"
}
