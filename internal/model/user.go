package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	DisplayName string     `gorm:"size:100;not null" json:"displayName"`
	Email       string     `gorm:"size:100;unique;not null" json:"email"`
	Password    string     `gorm:"size:100;not null" json:"-"`
	PhotoURL    string     `gorm:"size:255" json:"photoURL"`
	Level       int        `gorm:"default:0" json:"level"` // 累计积分，只增不减，由奖杯奖励原子递增
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
