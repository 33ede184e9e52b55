package model

import "encoding/json"

// 奖杯任务目前只支持单选题
const TaskTypeRadio = "radio"

// swagger:model Trophy
type Trophy struct {
	BaseModel
	EpisodeID   uint   `gorm:"index;not null" json:"episodeId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Photo       string `gorm:"size:255" json:"photo"`
	Description string `gorm:"type:text" json:"description"`
	// Level 既是奖杯等级（铜/银/金）也是首次答对时的积分值
	Level           int    `gorm:"not null;default:1" json:"level"`
	TaskType        string `gorm:"size:20;not null;default:'radio'" json:"taskType"`
	Question        string `gorm:"type:text;not null" json:"question"`
	Options         string `gorm:"type:text;not null" json:"-"` // JSON 编码的选项数组
	GoodAnswerIndex int    `gorm:"not null" json:"-"`           // 不下发给听众
}

func (Trophy) TableName() string {
	return "trophies"
}

func (t *Trophy) RadioOptions() []string {
	var options []string
	if err := json.Unmarshal([]byte(t.Options), &options); err != nil {
		return nil
	}
	return options
}

func (t *Trophy) SetRadioOptions(options []string) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	t.Options = string(data)
	return nil
}
