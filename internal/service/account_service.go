package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/media"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/pkg/jwt"
	"github.com/TooEZtz/Instagram/pkg/log"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// FollowerCounter reads a user's follower count, cache first. The
// social graph service satisfies it.
type FollowerCounter interface {
	FollowersCount(ctx context.Context, userID uint) (int64, error)
}

// accountServiceImpl implements AccountService.
type accountServiceImpl struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	counts  FollowerCounter
	tokens  *jwt.Manager
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserRepository, follows repository.FollowRepository, counts FollowerCounter, tokens *jwt.Manager) AccountService {
	return &accountServiceImpl{users: users, follows: follows, counts: counts, tokens: tokens}
}

var _ AccountService = (*accountServiceImpl)(nil)

// Signup registers a new user.
func (s *accountServiceImpl) Signup(ctx context.Context, req *domain.SignupRequest) (*domain.User, error) {
	l := log.Ctx(ctx)

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(username) < 3 || len(username) > 30 || !usernamePattern.MatchString(username) {
		return nil, validationError("username must be 3-30 characters using letters, digits, dots or underscores")
	}
	if !emailPattern.MatchString(email) {
		return nil, validationError("invalid email address")
	}
	if len(req.Password) < 8 || len(req.Password) > 128 {
		return nil, validationError("password must be between 8 and 128 characters")
	}

	// Cheap prechecks. The unique indexes are the real guard; a
	// concurrent duplicate still surfaces below as a conflict.
	if exists, err := s.users.UsernameExists(ctx, username); err != nil {
		l.Error().Err(err).Msg("failed to check username availability")
		return nil, err
	} else if exists {
		return nil, ErrUsernameTaken
	}
	if exists, err := s.users.EmailExists(ctx, email); err != nil {
		l.Error().Err(err).Msg("failed to check email availability")
		return nil, err
	} else if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.UserModel{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Bio:          strings.TrimSpace(req.Bio),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			// Lost a race; recheck which column collided.
			if exists, exErr := s.users.UsernameExists(ctx, username); exErr == nil && exists {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		l.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	l.Info().Uint(log.FieldUserID, user.ID).Str(log.FieldUsername, user.Username).Msg("user registered")
	return userFromModel(user), nil
}

// Login authenticates by username or email and issues an access token.
func (s *accountServiceImpl) Login(ctx context.Context, identifier, password string) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error().Err(err).Msg("failed to look up user for login")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		l.Error().Err(err).Uint(log.FieldUserID, user.ID).Msg("failed to generate access token")
		return nil, err
	}

	l.Info().Uint(log.FieldUserID, user.ID).Str(log.FieldUsername, user.Username).Msg("user logged in")
	return &domain.AuthResponse{
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout revokes all tokens issued to the user before now.
func (s *accountServiceImpl) Logout(ctx context.Context, userID uint) error {
	s.tokens.Revoke(userID)
	log.Ctx(ctx).Info().Uint(log.FieldUserID, userID).Msg("user logged out")
	return nil
}

// Me returns the caller's own profile, email included.
func (s *accountServiceImpl) Me(ctx context.Context, userID uint) (*domain.Profile, error) {
	row, err := s.users.ProfileRow(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		log.Ctx(ctx).Error().Err(err).Uint(log.FieldUserID, userID).Msg("failed to load own profile")
		return nil, err
	}
	p := profileFromRow(row)
	p.Email = row.Email
	p.IsSelf = true
	s.applyCachedFollowers(ctx, p)
	return p, nil
}

// Profile returns a user's profile as seen by the viewer.
func (s *accountServiceImpl) Profile(ctx context.Context, viewerID, targetID uint) (*domain.Profile, error) {
	l := log.Ctx(ctx)

	row, err := s.users.ProfileRow(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Uint(log.FieldTargetID, targetID).Msg("failed to load profile")
		return nil, err
	}

	p := profileFromRow(row)
	p.IsSelf = viewerID == targetID
	s.applyCachedFollowers(ctx, p)
	if !p.IsSelf && viewerID != 0 {
		following, err := s.follows.Exists(ctx, viewerID, targetID)
		if err != nil {
			l.Warn().Err(err).Msg("failed to resolve follow state for profile")
		} else {
			p.IsFollowing = following
		}
	}
	return p, nil
}

// UpdateProfile applies profile edits and returns the fresh profile.
func (s *accountServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *domain.UpdateProfileRequest) (*domain.Profile, error) {
	l := log.Ctx(ctx)

	bio := strings.TrimSpace(req.Bio)
	if len(bio) > 500 {
		return nil, validationError("bio must be at most 500 characters")
	}

	if err := s.users.UpdateProfile(ctx, userID, bio, req.IsPrivate, req.ProfilePic); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Uint(log.FieldUserID, userID).Msg("failed to update profile")
		return nil, err
	}

	return s.Me(ctx, userID)
}

// applyCachedFollowers swaps the profile's follower count for the
// cached one. The SQL count from the profile row stays when the cache
// path fails.
func (s *accountServiceImpl) applyCachedFollowers(ctx context.Context, p *domain.Profile) {
	count, err := s.counts.FollowersCount(ctx, p.ID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint(log.FieldUserID, p.ID).Msg("cached follower count unavailable")
		return
	}
	p.FollowersCount = count
}

func userFromModel(m *domain.UserModel) *domain.User {
	u := m.ToDomain()
	u.ProfilePic = media.ProfilePicURL(u.ProfilePic)
	return u
}

func profileFromRow(r *repository.SuggestedRow) *domain.Profile {
	return &domain.Profile{
		ID:             r.ID,
		Username:       r.Username,
		FullName:       r.FullName,
		Bio:            r.Bio,
		ProfilePic:     media.ProfilePicURL(r.ProfilePic),
		PostsCount:     r.PostsCount,
		FollowersCount: r.FollowersCount,
		FollowingCount: r.FollowingCount,
	}
}
