package service

import (
	"context"
	"errors"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/media"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/internal/store"
	"github.com/TooEZtz/Instagram/pkg/log"
)

const (
	defaultSuggestionsPerPage = 12
	maxSuggestionsPerPage     = 50
)

// socialGraphServiceImpl implements SocialGraphService.
type socialGraphServiceImpl struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	cache   store.FollowStore
}

// NewSocialGraphService creates a new social graph service.
func NewSocialGraphService(users repository.UserRepository, follows repository.FollowRepository, cache store.FollowStore) SocialGraphService {
	return &socialGraphServiceImpl{users: users, follows: follows, cache: cache}
}

var _ SocialGraphService = (*socialGraphServiceImpl)(nil)

// ToggleFollow flips the actor→target follow edge. Concurrent toggles
// of the same edge converge on the database's view: a duplicate insert
// and a missed delete both resolve to the state the winner left behind.
func (s *socialGraphServiceImpl) ToggleFollow(ctx context.Context, actorID, targetID uint) (*domain.FollowState, error) {
	l := log.Ctx(ctx)

	if actorID == targetID {
		return nil, ErrSelfFollow
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Uint(log.FieldTargetID, targetID).Msg("failed to load follow target")
		return nil, err
	}

	following, err := s.follows.Exists(ctx, actorID, targetID)
	if err != nil {
		l.Error().Err(err).Msg("failed to read follow edge")
		return nil, err
	}

	if following {
		err = s.follows.Delete(ctx, actorID, targetID)
		switch {
		case err == nil, errors.Is(err, repository.ErrFollowNotFound):
			// A concurrent unfollow already removed the edge.
			following = false
		default:
			l.Error().Err(err).Msg("failed to delete follow edge")
			return nil, err
		}
	} else {
		err = s.follows.Insert(ctx, actorID, targetID)
		switch {
		case err == nil, errors.Is(err, repository.ErrAlreadyFollowing):
			// A concurrent follow already created the edge.
			following = true
		default:
			l.Error().Err(err).Msg("failed to insert follow edge")
			return nil, err
		}
	}

	if err := s.cache.Invalidate(ctx, targetID); err != nil {
		l.Warn().Err(err).Uint(log.FieldTargetID, targetID).Msg("failed to invalidate followers cache")
	}

	// Read-through repopulates the cache with the post-toggle count.
	followers, err := s.FollowersCount(ctx, targetID)
	if err != nil {
		l.Error().Err(err).Msg("failed to count followers")
		return nil, err
	}
	followingCount, err := s.follows.FollowingCount(ctx, targetID)
	if err != nil {
		l.Error().Err(err).Msg("failed to count following")
		return nil, err
	}

	l.Info().
		Uint(log.FieldUserID, actorID).
		Uint(log.FieldTargetID, targetID).
		Bool("following", following).
		Msg("follow toggled")

	return &domain.FollowState{
		IsFollowing:    following,
		FollowersCount: followers,
		FollowingCount: followingCount,
	}, nil
}

// FollowersCount reads the follower count through the cache, falling
// back to the database and repopulating on a miss.
func (s *socialGraphServiceImpl) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	l := log.Ctx(ctx)

	if count, hit, err := s.cache.GetFollowersCount(ctx, userID); err != nil {
		l.Warn().Err(err).Msg("followers cache read failed")
	} else if hit {
		return count, nil
	}

	count, err := s.follows.FollowersCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetFollowersCount(ctx, userID, count); err != nil {
		l.Warn().Err(err).Msg("followers cache write failed")
	}
	return count, nil
}

// Suggestions returns users the viewer does not follow, most followed
// first. A storage failure yields an empty listing, not an error.
func (s *socialGraphServiceImpl) Suggestions(ctx context.Context, viewerID uint, page, perPage int) []domain.SuggestedUser {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultSuggestionsPerPage
	}
	if perPage > maxSuggestionsPerPage {
		perPage = maxSuggestionsPerPage
	}

	rows, err := s.users.Suggestions(ctx, viewerID, perPage, (page-1)*perPage)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list suggestions, serving empty")
		return []domain.SuggestedUser{}
	}

	suggested := make([]domain.SuggestedUser, 0, len(rows))
	for _, r := range rows {
		suggested = append(suggested, domain.SuggestedUser{
			ID:             r.ID,
			Username:       r.Username,
			FullName:       r.FullName,
			Bio:            r.Bio,
			ProfilePic:     media.ProfilePicURL(r.ProfilePic),
			FollowersCount: r.FollowersCount,
			FollowingCount: r.FollowingCount,
			PostsCount:     r.PostsCount,
		})
	}
	return suggested
}
