package service

import (
	"context"
	"io"

	"github.com/TooEZtz/Instagram/internal/domain"
)

// AccountService defines registration, authentication, and profile
// management.
type AccountService interface {
	Signup(ctx context.Context, req *domain.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*domain.AuthResponse, error)
	Logout(ctx context.Context, userID uint) error
	// Me returns the caller's own profile with counts.
	Me(ctx context.Context, userID uint) (*domain.Profile, error)
	// Profile returns a profile as seen by the viewer, including the
	// viewer's follow state.
	Profile(ctx context.Context, viewerID, targetID uint) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, req *domain.UpdateProfileRequest) (*domain.Profile, error)
}

// SocialGraphService defines follow-graph operations.
type SocialGraphService interface {
	// ToggleFollow flips the actor→target edge and returns the new
	// state plus the target's recomputed counts.
	ToggleFollow(ctx context.Context, actorID, targetID uint) (*domain.FollowState, error)
	// FollowersCount reads through the cache with a database fallback.
	FollowersCount(ctx context.Context, userID uint) (int64, error)
	// Suggestions is the people-you-may-know listing: users the viewer
	// does not follow, ranked by raw follower count. Degrades to an
	// empty list on storage failure instead of propagating errors.
	Suggestions(ctx context.Context, viewerID uint, page, perPage int) []domain.SuggestedUser
}

// FeedService composes the follow graph, posts, and engagement into
// client-ready aggregations. Both methods degrade to empty results on
// storage failure instead of propagating errors.
type FeedService interface {
	GetFeed(ctx context.Context, viewerID uint, limit int) []domain.FeedPost
	GetStories(ctx context.Context, viewerID uint) []domain.StoryItem
}

// UploadInput carries an uploaded image.
type UploadInput struct {
	File     io.Reader
	Filename string
}

// CreatePostInput carries everything needed to create a post.
type CreatePostInput struct {
	Upload        UploadInput
	Caption       string
	Location      string
	AllowComments bool
}

// ContentService creates posts and stories and serves profile
// galleries.
type ContentService interface {
	CreatePost(ctx context.Context, userID uint, in *CreatePostInput) (*domain.CreatedPost, error)
	CreateStory(ctx context.Context, userID uint, in *UploadInput) (*domain.CreatedStory, error)
	// UserPosts returns a user's gallery with engagement counts. It
	// degrades to zero counts when the batch lookups fail and to an
	// empty gallery when the listing itself fails.
	UserPosts(ctx context.Context, targetID uint, limit int) []domain.GalleryPost
	// StoreProfilePic persists an uploaded profile image and returns
	// its storage reference.
	StoreProfilePic(ctx context.Context, in *UploadInput) (string, error)
}

// EngagementService defines like and comment operations.
type EngagementService interface {
	ToggleLike(ctx context.Context, userID, postID uint) (*domain.LikeState, error)
	AddComment(ctx context.Context, userID, postID uint, text string) (*domain.CommentResult, error)
}

// MessagingService defines 1:1 conversation and message operations.
type MessagingService interface {
	// StartConversation resolves the unique conversation for the pair,
	// creating it when absent.
	StartConversation(ctx context.Context, userID, targetID uint) (*domain.ConversationView, error)
	// ListConversations returns the caller's conversations sorted by
	// most recent message, message-less conversations last. Degrades to
	// an empty list on storage failure.
	ListConversations(ctx context.Context, userID uint) []domain.ConversationView
	// Contacts lists mutual-follow users eligible for messaging.
	// Degrades to an empty list on storage failure.
	Contacts(ctx context.Context, userID uint) []domain.Contact
	// GetMessages returns the newest window of messages in
	// chronological order together with the conversation view.
	GetMessages(ctx context.Context, conversationID, requesterID uint, limit int) ([]domain.MessageView, *domain.ConversationView, error)
	SendMessage(ctx context.Context, conversationID, senderID uint, text string) (*domain.MessageView, error)
}
