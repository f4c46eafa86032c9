package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/media"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/pkg/log"
)

const (
	defaultFeedLimit    = 50
	commentsPerFeedPost = 3
)

// feedServiceImpl implements FeedService.
type feedServiceImpl struct {
	follows    repository.FollowRepository
	posts      repository.PostRepository
	stories    repository.StoryRepository
	engagement repository.EngagementRepository
}

// NewFeedService creates a new feed service.
func NewFeedService(follows repository.FollowRepository, posts repository.PostRepository, stories repository.StoryRepository, engagement repository.EngagementRepository) FeedService {
	return &feedServiceImpl{follows: follows, posts: posts, stories: stories, engagement: engagement}
}

var _ FeedService = (*feedServiceImpl)(nil)

// GetFeed assembles the viewer's home feed: the newest posts from the
// viewer and everyone they follow, enriched with like state, counts,
// and comment previews. Any failure yields an empty feed, never an
// error page.
func (s *feedServiceImpl) GetFeed(ctx context.Context, viewerID uint, limit int) []domain.FeedPost {
	l := log.Ctx(ctx)

	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}

	owners, err := s.feedScope(ctx, viewerID)
	if err != nil {
		l.Error().Err(err).Msg("failed to resolve feed scope")
		return []domain.FeedPost{}
	}

	rows, err := s.posts.ListByOwners(ctx, owners, limit)
	if err != nil {
		l.Error().Err(err).Msg("failed to list feed posts")
		return []domain.FeedPost{}
	}
	if len(rows) == 0 {
		return []domain.FeedPost{}
	}

	postIDs := make([]uint, len(rows))
	for i, r := range rows {
		postIDs[i] = r.ID
	}

	// Enrichment is four independent batch queries; run them together.
	var (
		liked         map[uint]bool
		likeCounts    map[uint]int64
		commentCounts map[uint]int64
		previews      map[uint][]repository.CommentWithAuthor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		liked, err = s.engagement.LikedPostIDs(gctx, viewerID, postIDs)
		return err
	})
	g.Go(func() (err error) {
		likeCounts, err = s.engagement.LikeCounts(gctx, postIDs)
		return err
	})
	g.Go(func() (err error) {
		commentCounts, err = s.engagement.CommentCounts(gctx, postIDs)
		return err
	})
	g.Go(func() (err error) {
		previews, err = s.engagement.RecentComments(gctx, postIDs, commentsPerFeedPost)
		return err
	})
	if err := g.Wait(); err != nil {
		// The skeleton is still useful without engagement data.
		l.Warn().Err(err).Msg("feed enrichment failed, serving bare posts")
		liked, likeCounts, commentCounts, previews = nil, nil, nil, nil
	}

	feed := make([]domain.FeedPost, 0, len(rows))
	for _, r := range rows {
		post := domain.FeedPost{
			ID:            r.ID,
			UserID:        r.UserID,
			Username:      r.Username,
			FullName:      r.FullName,
			ProfilePic:    media.ProfilePicURL(r.ProfilePic),
			ImageURL:      media.PostImageURL(r.ImageURL),
			Caption:       r.Caption,
			LikesCount:    likeCounts[r.ID],
			CommentsCount: commentCounts[r.ID],
			IsLiked:       liked[r.ID],
			CreatedAt:     r.CreatedAt,
			Comments:      []domain.CommentPreview{},
		}
		for _, c := range previews[r.ID] {
			post.Comments = append(post.Comments, domain.CommentPreview{
				ID:          c.ID,
				Username:    c.Username,
				CommentText: c.CommentText,
				CreatedAt:   c.CreatedAt,
			})
		}
		feed = append(feed, post)
	}
	return feed
}

// GetStories returns the active stories tray for the viewer's scope,
// newest first. Failures degrade to an empty tray.
func (s *feedServiceImpl) GetStories(ctx context.Context, viewerID uint) []domain.StoryItem {
	l := log.Ctx(ctx)

	owners, err := s.feedScope(ctx, viewerID)
	if err != nil {
		l.Error().Err(err).Msg("failed to resolve stories scope")
		return []domain.StoryItem{}
	}

	rows, err := s.stories.ListActiveByOwners(ctx, owners, time.Now())
	if err != nil {
		l.Error().Err(err).Msg("failed to list stories")
		return []domain.StoryItem{}
	}

	items := make([]domain.StoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.StoryItem{
			ID:         r.ID,
			UserID:     r.UserID,
			Username:   r.Username,
			ProfilePic: media.ProfilePicURL(r.ProfilePic),
			ImageURL:   media.PostImageURL(r.ImageURL),
			CreatedAt:  r.CreatedAt,
		})
	}
	return items
}

// feedScope is the set of owners whose content the viewer sees: the
// viewer plus everyone they follow.
func (s *feedServiceImpl) feedScope(ctx context.Context, viewerID uint) ([]uint, error) {
	following, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return append(following, viewerID), nil
}
