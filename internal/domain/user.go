package domain

import "time"

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(100)"`
	Bio          string    `gorm:"type:text"`
	ProfilePic   string    `gorm:"type:varchar(255)"`
	IsPrivate    bool      `gorm:"default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string { return "users" }

// User is the domain representation of an account.
type User struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profile_pic"`
	IsPrivate  bool      `json:"is_private"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:         m.ID,
		Username:   m.Username,
		Email:      m.Email,
		FullName:   m.FullName,
		Bio:        m.Bio,
		ProfilePic: m.ProfilePic,
		IsPrivate:  m.IsPrivate,
		CreatedAt:  m.CreatedAt,
	}
}

// Profile is a user enriched with graph and content counts, as shown on
// a profile page.
type Profile struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	ProfilePic     string `json:"profile_pic"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	PostsCount     int64  `json:"posts_count"`
	IsFollowing    bool   `json:"is_following"`
	IsSelf         bool   `json:"is_self"`
}

// SuggestedUser is an entry of the people-you-may-know listing.
type SuggestedUser struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	ProfilePic     string `json:"profile_pic"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	PostsCount     int64  `json:"posts_count"`
	IsFollowing    bool   `json:"is_following"`
}

// SignupRequest is the request body for account registration.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
}

// LoginRequest is the request body for login. Identifier accepts a
// username or an email address.
type LoginRequest struct {
	Identifier string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Bio        string
	IsPrivate  bool
	ProfilePic string // storage key of a freshly uploaded image, empty to keep
}
