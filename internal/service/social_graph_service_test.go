package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/repository"
)

func TestSocialGraphService_ToggleFollow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	state, err := env.social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, state.IsFollowing)
	assert.Equal(t, int64(1), state.FollowersCount)

	// The second toggle undoes the first.
	state, err = env.social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, state.IsFollowing)
	assert.Equal(t, int64(0), state.FollowersCount)
}

func TestSocialGraphService_SelfFollow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	_, err := env.social.ToggleFollow(ctx(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestSocialGraphService_FollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	_, err := env.social.ToggleFollow(ctx(), alice.ID, alice.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSocialGraphService_FollowIsDirected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	_, err := env.social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)

	// Bob following back creates an independent edge.
	state, err := env.social.ToggleFollow(ctx(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, state.IsFollowing)

	// Alice unfollowing does not touch Bob's edge.
	state, err = env.social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, state.IsFollowing)

	count, err := env.social.FollowersCount(ctx(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// memFollowStore is an in-memory store.FollowStore that records hits.
type memFollowStore struct {
	counts map[uint]int64
	hits   int
}

func newMemFollowStore() *memFollowStore {
	return &memFollowStore{counts: make(map[uint]int64)}
}

func (m *memFollowStore) GetFollowersCount(_ context.Context, userID uint) (int64, bool, error) {
	count, ok := m.counts[userID]
	if ok {
		m.hits++
	}
	return count, ok, nil
}

func (m *memFollowStore) SetFollowersCount(_ context.Context, userID uint, count int64) error {
	m.counts[userID] = count
	return nil
}

func (m *memFollowStore) Invalidate(_ context.Context, userID uint) error {
	delete(m.counts, userID)
	return nil
}

func (m *memFollowStore) Close() error { return nil }

func TestSocialGraphService_ToggleFollowPopulatesCache(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	cache := newMemFollowStore()
	social := NewSocialGraphService(
		repository.NewGormUserRepository(env.db),
		repository.NewGormFollowRepository(env.db),
		cache,
	)

	state, err := social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), state.FollowersCount)

	// The toggle repopulated the cache with the fresh count.
	assert.Equal(t, int64(1), cache.counts[bob.ID])

	// A stale cached value is served as-is, proving reads go through
	// the cache and not the database.
	cache.counts[bob.ID] = 42
	count, err := social.FollowersCount(ctx(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.Positive(t, cache.hits)

	// Unfollow drops the stale entry and caches the new count.
	state, err = social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), state.FollowersCount)
	assert.Equal(t, int64(0), cache.counts[bob.ID])
}

func TestSocialGraphService_Suggestions(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.user(t, "viewer")
	popular := env.user(t, "popular")
	env.user(t, "quiet")
	followed := env.user(t, "followed")
	fan := env.user(t, "fan")

	_, err := env.social.ToggleFollow(ctx(), fan.ID, popular.ID)
	require.NoError(t, err)
	_, err = env.social.ToggleFollow(ctx(), viewer.ID, followed.ID)
	require.NoError(t, err)

	suggested := env.social.Suggestions(ctx(), viewer.ID, 1, 10)
	require.NotEmpty(t, suggested)

	assert.Equal(t, "popular", suggested[0].Username)
	for _, s := range suggested {
		assert.NotEqual(t, viewer.ID, s.ID)
		assert.NotEqual(t, followed.ID, s.ID)
	}
}

func TestSocialGraphService_SuggestionsPagingClamps(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.user(t, "viewer")
	env.user(t, "other")

	// Nonsense paging values fall back to sane defaults.
	suggested := env.social.Suggestions(ctx(), viewer.ID, -3, 0)
	assert.Len(t, suggested, 1)

	suggested = env.social.Suggestions(ctx(), viewer.ID, 1, 1000)
	assert.Len(t, suggested, 1)
}

func TestSocialGraphService_SuggestionsDegradeOnStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.user(t, "viewer")
	env.user(t, "other")

	require.NoError(t, env.db.Migrator().DropTable(&domain.FollowModel{}))

	suggested := env.social.Suggestions(ctx(), viewer.ID, 1, 10)
	assert.NotNil(t, suggested)
	assert.Empty(t, suggested)
}
