package model

import "time"

// WrongAnswerSentinel 表示该用户最近一次提交答错了
const WrongAnswerSentinel = -1

// UserTrophyAttempt 记录用户对某个奖杯的最近一次作答。
// (TrophyID, UserID) 唯一，重新提交时覆盖旧记录，只随祖先级联删除。
// 不变式: BlockedTime 非空 ⇔ Answer == -1 ⇔ 用户处于封锁期内。
// swagger:model UserTrophyAttempt
type UserTrophyAttempt struct {
	BaseModel
	TrophyID    uint       `gorm:"uniqueIndex:idx_trophy_user;not null" json:"trophyId"`
	UserID      uint       `gorm:"uniqueIndex:idx_trophy_user;not null" json:"userId"`
	Answer      int        `gorm:"not null" json:"answer"`
	BlockedTime *time.Time `json:"blockedTime,omitempty"`
}

func (UserTrophyAttempt) TableName() string {
	return "user_trophies"
}

// Solved 判断该记录是否为已答对状态。答错会把 Answer 强制写成 -1，
// 所以非负的 Answer 一定等于正确选项下标。
func (a *UserTrophyAttempt) Solved() bool {
	return a != nil && a.Answer >= 0
}
