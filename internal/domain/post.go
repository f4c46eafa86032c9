package domain

import "time"

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	UserID        uint      `gorm:"index;not null"`
	ImageURL      string    `gorm:"type:varchar(255);not null"`
	Caption       string    `gorm:"type:text"`
	Location      string    `gorm:"type:varchar(100)"`
	AllowComments bool      `gorm:"default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for PostModel.
func (PostModel) TableName() string { return "posts" }

// StoryModel is the GORM model for the stories table. Stories are never
// deleted here; expiry is a read-time filter on expires_at.
type StoryModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"index;not null"`
	ImageURL  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName specifies the table name for StoryModel.
func (StoryModel) TableName() string { return "stories" }

// FeedPost is a fully assembled feed entry: the post, its owner's
// display fields, engagement counts, the viewer's like state, and a
// preview of the most recent comments.
type FeedPost struct {
	ID            uint             `json:"id"`
	UserID        uint             `json:"user_id"`
	Username      string           `json:"username"`
	FullName      string           `json:"full_name"`
	ProfilePic    string           `json:"profile_pic"`
	ImageURL      string           `json:"image_url"`
	Caption       string           `json:"caption"`
	LikesCount    int64            `json:"likes_count"`
	CommentsCount int64            `json:"comments_count"`
	IsLiked       bool             `json:"is_liked"`
	CreatedAt     time.Time        `json:"created_at"`
	Comments      []CommentPreview `json:"comments"`
}

// StoryItem is a single entry of the stories tray.
type StoryItem struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	ProfilePic string    `json:"profile_pic"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// GalleryPost is a post as shown in a profile gallery, without owner
// display fields.
type GalleryPost struct {
	ID            uint      `json:"id"`
	ImageURL      string    `json:"image_url"`
	Caption       string    `json:"caption"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatedPost is returned after creating a post.
type CreatedPost struct {
	ID        uint      `json:"id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedStory is returned after creating a story.
type CreatedStory struct {
	ID        uint      `json:"id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
