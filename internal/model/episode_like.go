package model

// swagger:model EpisodeLike
type EpisodeLike struct {
	BaseModel
	UserID    uint `gorm:"uniqueIndex:idx_user_episode;not null" json:"userId"`
	EpisodeID uint `gorm:"uniqueIndex:idx_user_episode;not null" json:"episodeId"`
}

func (EpisodeLike) TableName() string {
	return "episode_likes"
}
