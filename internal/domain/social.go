package domain

import "time"

// FollowModel is the GORM model for the follows table. The unique index
// over the ordered pair is what makes the follow toggle safe under
// concurrent requests.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  uint      `gorm:"uniqueIndex:uidx_follow_pair;not null"`
	FollowingID uint      `gorm:"uniqueIndex:uidx_follow_pair;index;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for FollowModel.
func (FollowModel) TableName() string { return "follows" }

// FollowState is the outcome of a follow toggle: the resulting edge
// state plus the target's recomputed counts.
type FollowState struct {
	IsFollowing    bool  `json:"is_following"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}
