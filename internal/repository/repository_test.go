package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/pkg/database"
)

// testDB opens a fresh sqlite database for one test.
func testDB(t *testing.T) *gorm.DB {
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
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *domain.UserModel {
	t.Helper()
	user := &domain.UserModel{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FullName:     username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, caption string) *domain.PostModel {
	t.Helper()
	post := &domain.PostModel{
		UserID:        userID,
		ImageURL:      "img.jpg",
		Caption:       caption,
		AllowComments: true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func ctx() context.Context { return context.Background() }
