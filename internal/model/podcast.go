package model

// swagger:model Podcast
type Podcast struct {
	BaseModel
	UserID      uint   `gorm:"index;not null" json:"userId"` // 播客所有者
	Title       string `gorm:"size:200;not null" json:"title"`
	Host        string `gorm:"size:100" json:"host"`
	Description string `gorm:"type:text" json:"description"`
	Photo       string `gorm:"size:255" json:"photo"`
}

func (Podcast) TableName() string {
	return "podcasts"
}
