package domain

import "time"

// LikeModel is the GORM model for the likes table. A like either exists
// or it does not; the unique index over (user_id, post_id) enforces that
// even when two toggles race.
type LikeModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"uniqueIndex:uidx_like_pair;not null"`
	PostID    uint      `gorm:"uniqueIndex:uidx_like_pair;index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for LikeModel.
func (LikeModel) TableName() string { return "likes" }

// CommentModel is the GORM model for the comments table. Comments are
// append-only and never edited or deleted.
type CommentModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	PostID      uint      `gorm:"index;not null"`
	UserID      uint      `gorm:"not null"`
	CommentText string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for CommentModel.
func (CommentModel) TableName() string { return "comments" }

// LikeState is the outcome of a like toggle.
type LikeState struct {
	IsLiked    bool  `json:"is_liked"`
	LikesCount int64 `json:"likes_count"`
}

// CommentPreview is a comment as embedded in a feed entry.
type CommentPreview struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentView is a freshly created comment joined with the commenter's
// display fields.
type CommentView struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	ProfilePic  string    `json:"profile_pic"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentResult pairs a created comment with the post's new total.
type CommentResult struct {
	Comment       CommentView `json:"comment"`
	CommentsCount int64       `json:"comments_count"`
}

// CommentRequest is the request body for adding a comment.
type CommentRequest struct {
	CommentText string `json:"comment_text"`
}
