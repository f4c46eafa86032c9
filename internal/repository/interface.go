package repository

import (
	"context"
	"errors"
	"time"

	"github.com/TooEZtz/Instagram/internal/domain"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrAlreadyFollowing     = errors.New("already following")
	ErrFollowNotFound       = errors.New("follow relationship not found")
	ErrAlreadyLiked         = errors.New("already liked")
	ErrLikeNotFound         = errors.New("like not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationExists   = errors.New("conversation already exists")
	ErrMessageNotFound      = errors.New("message not found")
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.UserModel) error
	GetByID(ctx context.Context, id uint) (*domain.UserModel, error)
	// GetByIdentifier looks a user up by username or email.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.UserModel, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uint, bio string, isPrivate bool, profilePic string) error
	// Suggestions returns users the viewer does not follow, ordered by
	// follower count descending then username ascending.
	Suggestions(ctx context.Context, viewerID uint, limit, offset int) ([]SuggestedRow, error)
	// ProfileRow returns a user with follower/following/post counts.
	ProfileRow(ctx context.Context, id uint) (*SuggestedRow, error)
}

// SuggestedRow is a user row enriched with aggregate counts.
type SuggestedRow struct {
	ID             uint
	Username       string
	Email          string
	FullName       string
	Bio            string
	ProfilePic     string
	FollowersCount int64
	FollowingCount int64
	PostsCount     int64
}

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	// Insert creates the edge; a concurrent duplicate surfaces as
	// ErrAlreadyFollowing.
	Insert(ctx context.Context, followerID, followingID uint) error
	Delete(ctx context.Context, followerID, followingID uint) error
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	// FollowingIDs returns the ids the user follows (the feed scope,
	// minus the user itself).
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	FollowersCount(ctx context.Context, userID uint) (int64, error)
	FollowingCount(ctx context.Context, userID uint) (int64, error)
}

// PostWithAuthor is a post row joined with its owner's display fields.
type PostWithAuthor struct {
	ID         uint
	UserID     uint
	ImageURL   string
	Caption    string
	CreatedAt  time.Time
	Username   string
	FullName   string
	ProfilePic string
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.PostModel) error
	GetByID(ctx context.Context, id uint) (*domain.PostModel, error)
	// ListByOwners returns the newest posts owned by any of ownerIDs,
	// ordered by created_at descending with id descending as the
	// deterministic tie-break.
	ListByOwners(ctx context.Context, ownerIDs []uint, limit int) ([]PostWithAuthor, error)
	// ListByUser returns a single user's newest posts.
	ListByUser(ctx context.Context, userID uint, limit int) ([]domain.PostModel, error)
}

// StoryWithAuthor is a story row joined with its owner's display fields.
type StoryWithAuthor struct {
	ID         uint
	UserID     uint
	ImageURL   string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Username   string
	ProfilePic string
}

// StoryRepository defines persistence operations for stories.
type StoryRepository interface {
	Create(ctx context.Context, story *domain.StoryModel) error
	GetByID(ctx context.Context, id uint) (*domain.StoryModel, error)
	// ListActiveByOwners returns non-expired stories (expires_at > now)
	// owned by any of ownerIDs, newest first.
	ListActiveByOwners(ctx context.Context, ownerIDs []uint, now time.Time) ([]StoryWithAuthor, error)
}

// CommentWithAuthor is a comment row joined with the commenter's
// display fields.
type CommentWithAuthor struct {
	ID          uint
	PostID      uint
	UserID      uint
	CommentText string
	CreatedAt   time.Time
	Username    string
	ProfilePic  string
}

// EngagementRepository defines persistence operations for likes and
// comments. The batch methods take the fetched post id set and answer
// in a single query each, keeping feed assembly at O(1) round trips.
type EngagementRepository interface {
	InsertLike(ctx context.Context, userID, postID uint) error
	DeleteLike(ctx context.Context, userID, postID uint) error
	LikeExists(ctx context.Context, userID, postID uint) (bool, error)
	LikesCount(ctx context.Context, postID uint) (int64, error)

	// LikedPostIDs reports which of postIDs the user has liked.
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error)
	LikeCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	CommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	// RecentComments returns up to perPost newest comments for each of
	// postIDs, fetched in one query and truncated per post in memory.
	RecentComments(ctx context.Context, postIDs []uint, perPost int) (map[uint][]CommentWithAuthor, error)

	InsertComment(ctx context.Context, comment *domain.CommentModel) error
	GetComment(ctx context.Context, id uint) (*CommentWithAuthor, error)
	CommentsCount(ctx context.Context, postID uint) (int64, error)
}

// ConversationRepository defines persistence operations for
// conversations and their membership.
type ConversationRepository interface {
	// FindByPairKey resolves the single conversation for an unordered
	// user pair, or ErrConversationNotFound.
	FindByPairKey(ctx context.Context, pairKey string) (*domain.ConversationModel, error)
	// Create inserts the conversation and both membership rows in one
	// transaction. A concurrent duplicate of the pair key surfaces as
	// ErrConversationExists; callers re-resolve.
	Create(ctx context.Context, pairKey string, userA, userB uint) (*domain.ConversationModel, error)
	IsMember(ctx context.Context, conversationID, userID uint) (bool, error)
	// Members returns the participants joined with display fields.
	Members(ctx context.Context, conversationID uint) ([]MemberRow, error)
	// MembersByConversations returns the participants of every listed
	// conversation in one query.
	MembersByConversations(ctx context.Context, conversationIDs []uint) (map[uint][]MemberRow, error)
	IDsForUser(ctx context.Context, userID uint) ([]uint, error)
	// Contacts returns the users the viewer mutually follows, each with
	// any conversation the two already share.
	Contacts(ctx context.Context, viewerID uint) ([]ContactRow, error)
}

// MemberRow is a membership row joined with the member's display fields.
type MemberRow struct {
	ConversationID uint
	UserID         uint
	Username       string
	FullName       string
	ProfilePic     string
}

// ContactRow is a mutual-follow user with an optional shared
// conversation id.
type ContactRow struct {
	ID             uint
	Username       string
	FullName       string
	ProfilePic     string
	ConversationID *uint
}

// MessageWithSender is a message row joined with the sender's display
// fields.
type MessageWithSender struct {
	ID             uint
	ConversationID uint
	SenderID       uint
	MessageText    string
	ImageURL       *string
	CreatedAt      time.Time
	Username       string
	ProfilePic     string
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Insert(ctx context.Context, msg *domain.MessageModel) error
	GetByID(ctx context.Context, id uint) (*MessageWithSender, error)
	// Window returns the newest limit messages of a conversation,
	// ordered newest first by (created_at, id). Callers wanting
	// chronological order must reverse.
	Window(ctx context.Context, conversationID uint, limit int) ([]MessageWithSender, error)
	// LastByConversations returns the newest message per conversation,
	// fetched in one query.
	LastByConversations(ctx context.Context, conversationIDs []uint) (map[uint]MessageWithSender, error)
}
