package model

// swagger:model FAQ
type FAQ struct {
	BaseModel
	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`
	Order    int    `gorm:"default:0" json:"order"`
}

func (FAQ) TableName() string {
	return "faq"
}
