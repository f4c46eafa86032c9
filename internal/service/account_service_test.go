package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/repository"
)

func TestAccountService_SignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.accounts.Signup(ctx(), &domain.SignupRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "supersecret",
		FullName: "Alice A",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	// Email is normalized to lower case.
	assert.Equal(t, "alice@example.com", user.Email)

	// Login works with the username and with the email.
	auth, err := env.accounts.Login(ctx(), "alice", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, auth.UserID)
	assert.NotEmpty(t, auth.AccessToken)

	auth, err = env.accounts.Login(ctx(), "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, auth.UserID)
}

func TestAccountService_SignupValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		req  domain.SignupRequest
	}{
		{"short username", domain.SignupRequest{Username: "ab", Email: "a@b.com", Password: "supersecret"}},
		{"bad username chars", domain.SignupRequest{Username: "bad name!", Email: "a@b.com", Password: "supersecret"}},
		{"bad email", domain.SignupRequest{Username: "alice", Email: "not-an-email", Password: "supersecret"}},
		{"short password", domain.SignupRequest{Username: "alice", Email: "a@b.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.accounts.Signup(ctx(), &tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAccountService_SignupConflicts(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Signup(ctx(), &domain.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = env.accounts.Signup(ctx(), &domain.SignupRequest{
		Username: "alice", Email: "other@example.com", Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = env.accounts.Signup(ctx(), &domain.SignupRequest{
		Username: "alice2", Email: "alice@example.com", Password: "supersecret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAccountService_LoginFailures(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Signup(ctx(), &domain.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = env.accounts.Login(ctx(), "alice", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.accounts.Login(ctx(), "nobody", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.accounts.Login(ctx(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountService_ProfileViews(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	env.post(t, bob.ID, "photo", time.Now())

	_, err := env.social.ToggleFollow(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)

	me, err := env.accounts.Me(ctx(), alice.ID)
	require.NoError(t, err)
	assert.True(t, me.IsSelf)
	assert.Equal(t, int64(1), me.FollowingCount)

	profile, err := env.accounts.Profile(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSelf)
	assert.True(t, profile.IsFollowing)
	assert.Equal(t, int64(1), profile.FollowersCount)
	assert.Equal(t, int64(1), profile.PostsCount)

	_, err = env.accounts.Profile(ctx(), alice.ID, bob.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type fixedFollowerCounter struct{ count int64 }

func (f fixedFollowerCounter) FollowersCount(context.Context, uint) (int64, error) {
	return f.count, nil
}

func TestAccountService_ProfileServesCachedFollowerCount(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	users := repository.NewGormUserRepository(env.db)
	follows := repository.NewGormFollowRepository(env.db)
	accounts := NewAccountService(users, follows, fixedFollowerCounter{count: 7}, env.tokens)

	profile, err := accounts.Profile(ctx(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), profile.FollowersCount)

	me, err := accounts.Me(ctx(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), me.FollowersCount)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")

	profile, err := env.accounts.UpdateProfile(ctx(), alice.ID, &domain.UpdateProfileRequest{
		Bio:       "  hello world  ",
		IsPrivate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", profile.Bio)

	var model domain.UserModel
	require.NoError(t, env.db.First(&model, alice.ID).Error)
	assert.True(t, model.IsPrivate)
}
