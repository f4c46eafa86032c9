package service

import (
	"context"
	"errors"
	"strings"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/media"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/pkg/log"
)

const maxCommentLength = 2200

// engagementServiceImpl implements EngagementService.
type engagementServiceImpl struct {
	posts      repository.PostRepository
	engagement repository.EngagementRepository
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(posts repository.PostRepository, engagement repository.EngagementRepository) EngagementService {
	return &engagementServiceImpl{posts: posts, engagement: engagement}
}

var _ EngagementService = (*engagementServiceImpl)(nil)

// ToggleLike flips the user's like on a post and returns the resulting
// state with a fresh count. Concurrent toggles of the same pair
// converge the same way follow toggles do.
func (s *engagementServiceImpl) ToggleLike(ctx context.Context, userID, postID uint) (*domain.LikeState, error) {
	l := log.Ctx(ctx)

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		l.Error().Err(err).Uint(log.FieldPostID, postID).Msg("failed to load post for like")
		return nil, err
	}

	liked, err := s.engagement.LikeExists(ctx, userID, postID)
	if err != nil {
		l.Error().Err(err).Msg("failed to read like")
		return nil, err
	}

	if liked {
		err = s.engagement.DeleteLike(ctx, userID, postID)
		switch {
		case err == nil, errors.Is(err, repository.ErrLikeNotFound):
			liked = false
		default:
			l.Error().Err(err).Msg("failed to delete like")
			return nil, err
		}
	} else {
		err = s.engagement.InsertLike(ctx, userID, postID)
		switch {
		case err == nil, errors.Is(err, repository.ErrAlreadyLiked):
			liked = true
		default:
			l.Error().Err(err).Msg("failed to insert like")
			return nil, err
		}
	}

	count, err := s.engagement.LikesCount(ctx, postID)
	if err != nil {
		l.Error().Err(err).Msg("failed to count likes")
		return nil, err
	}

	l.Info().
		Uint(log.FieldUserID, userID).
		Uint(log.FieldPostID, postID).
		Bool("liked", liked).
		Msg("like toggled")

	return &domain.LikeState{IsLiked: liked, LikesCount: count}, nil
}

// AddComment appends a comment to a post and returns it with the
// post's new comment total.
func (s *engagementServiceImpl) AddComment(ctx context.Context, userID, postID uint, text string) (*domain.CommentResult, error) {
	l := log.Ctx(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if len(text) > maxCommentLength {
		return nil, validationError("comment is too long")
	}

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		l.Error().Err(err).Uint(log.FieldPostID, postID).Msg("failed to load post for comment")
		return nil, err
	}

	comment := &domain.CommentModel{
		PostID:      postID,
		UserID:      userID,
		CommentText: text,
	}
	if err := s.engagement.InsertComment(ctx, comment); err != nil {
		l.Error().Err(err).Msg("failed to insert comment")
		return nil, err
	}

	row, err := s.engagement.GetComment(ctx, comment.ID)
	if err != nil {
		l.Error().Err(err).Msg("failed to read back comment")
		return nil, err
	}
	count, err := s.engagement.CommentsCount(ctx, postID)
	if err != nil {
		l.Error().Err(err).Msg("failed to count comments")
		return nil, err
	}

	l.Info().
		Uint(log.FieldUserID, userID).
		Uint(log.FieldPostID, postID).
		Msg("comment added")

	return &domain.CommentResult{
		Comment: domain.CommentView{
			ID:          row.ID,
			Username:    row.Username,
			ProfilePic:  media.ProfilePicURL(row.ProfilePic),
			CommentText: row.CommentText,
			CreatedAt:   row.CreatedAt,
		},
		CommentsCount: count,
	}, nil
}
