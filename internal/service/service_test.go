package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/internal/store"
	"github.com/TooEZtz/Instagram/pkg/database"
	"github.com/TooEZtz/Instagram/pkg/jwt"
	"github.com/TooEZtz/Instagram/pkg/storage"
)

// testEnv wires every service over a fresh sqlite database.
type testEnv struct {
	db         *gorm.DB
	tokens     *jwt.Manager
	accounts   AccountService
	social     SocialGraphService
	feed       FeedService
	content    ContentService
	engagement EngagementService
	messaging  MessagingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.FollowModel{},
		&domain.PostModel{},
		&domain.StoryModel{},
		&domain.LikeModel{},
		&domain.CommentModel{},
		&domain.ConversationModel{},
		&domain.ConversationMemberModel{},
		&domain.MessageModel{},
	))

	tokens, err := jwt.NewManager(time.Hour, "test")
	require.NoError(t, err)

	assets, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	users := repository.NewGormUserRepository(db)
	follows := repository.NewGormFollowRepository(db)
	posts := repository.NewGormPostRepository(db)
	stories := repository.NewGormStoryRepository(db)
	engagement := repository.NewGormEngagementRepository(db)
	conversations := repository.NewGormConversationRepository(db)
	messages := repository.NewGormMessageRepository(db)

	social := NewSocialGraphService(users, follows, store.NoopFollowStore{})

	return &testEnv{
		db:         db,
		tokens:     tokens,
		accounts:   NewAccountService(users, follows, social, tokens),
		social:     social,
		feed:       NewFeedService(follows, posts, stories, engagement),
		content:    NewContentService(posts, stories, engagement, assets),
		engagement: NewEngagementService(posts, engagement),
		messaging:  NewMessagingService(users, conversations, messages),
	}
}

func (e *testEnv) user(t *testing.T, username string) *domain.UserModel {
	t.Helper()
	user := &domain.UserModel{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FullName:     username,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) post(t *testing.T, userID uint, caption string, createdAt time.Time) *domain.PostModel {
	t.Helper()
	post := &domain.PostModel{
		UserID:        userID,
		ImageURL:      "img.jpg",
		Caption:       caption,
		AllowComments: true,
	}
	require.NoError(t, e.db.Create(post).Error)
	require.NoError(t, e.db.Model(post).Update("created_at", createdAt).Error)
	return post
}

func ctx() context.Context { return context.Background() }
