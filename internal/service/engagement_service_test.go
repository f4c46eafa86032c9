package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_ToggleLike(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	post := env.post(t, bob.ID, "photo", time.Now())

	state, err := env.engagement.ToggleLike(ctx(), alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, state.IsLiked)
	assert.Equal(t, int64(1), state.LikesCount)

	state, err = env.engagement.ToggleLike(ctx(), alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
	assert.Equal(t, int64(0), state.LikesCount)
}

func TestEngagementService_LikeCountsPerUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	post := env.post(t, alice.ID, "photo", time.Now())

	_, err := env.engagement.ToggleLike(ctx(), alice.ID, post.ID)
	require.NoError(t, err)
	state, err := env.engagement.ToggleLike(ctx(), bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), state.LikesCount)

	// Bob unliking leaves alice's like intact.
	state, err = env.engagement.ToggleLike(ctx(), bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
	assert.Equal(t, int64(1), state.LikesCount)
}

func TestEngagementService_LikeMissingPost(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	_, err := env.engagement.ToggleLike(ctx(), alice.ID, 12345)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestEngagementService_AddComment(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	post := env.post(t, bob.ID, "photo", time.Now())

	result, err := env.engagement.AddComment(ctx(), alice.ID, post.ID, "  nice photo  ")
	require.NoError(t, err)
	assert.Equal(t, "nice photo", result.Comment.CommentText)
	assert.Equal(t, "alice", result.Comment.Username)
	assert.Equal(t, int64(1), result.CommentsCount)

	result, err = env.engagement.AddComment(ctx(), bob.ID, post.ID, "thanks")
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.CommentsCount)
}

func TestEngagementService_CommentValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	post := env.post(t, alice.ID, "photo", time.Now())

	_, err := env.engagement.AddComment(ctx(), alice.ID, post.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.engagement.AddComment(ctx(), alice.ID, 9999, "hello")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
