package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/media"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/pkg/log"
	"github.com/TooEZtz/Instagram/pkg/storage"
)

const (
	defaultGalleryLimit = 60
	storyLifetime       = 24 * time.Hour
	maxCaptionLength    = 2200
)

// contentServiceImpl implements ContentService.
type contentServiceImpl struct {
	posts      repository.PostRepository
	stories    repository.StoryRepository
	engagement repository.EngagementRepository
	storage    storage.Storage
}

// NewContentService creates a new content service.
func NewContentService(posts repository.PostRepository, stories repository.StoryRepository, engagement repository.EngagementRepository, st storage.Storage) ContentService {
	return &contentServiceImpl{posts: posts, stories: stories, engagement: engagement, storage: st}
}

var _ ContentService = (*contentServiceImpl)(nil)

// CreatePost stores the uploaded image and inserts the post row.
func (s *contentServiceImpl) CreatePost(ctx context.Context, userID uint, in *CreatePostInput) (*domain.CreatedPost, error) {
	l := log.Ctx(ctx)

	caption := strings.TrimSpace(in.Caption)
	if len(caption) > maxCaptionLength {
		return nil, validationError("caption is too long")
	}

	filename, err := s.storeImage(ctx, "images/posts", &in.Upload)
	if err != nil {
		l.Error().Err(err).Msg("failed to store post image")
		return nil, err
	}

	post := &domain.PostModel{
		UserID:        userID,
		ImageURL:      filename,
		Caption:       caption,
		Location:      strings.TrimSpace(in.Location),
		AllowComments: in.AllowComments,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		l.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	l.Info().Uint(log.FieldUserID, userID).Uint(log.FieldPostID, post.ID).Msg("post created")
	return &domain.CreatedPost{
		ID:        post.ID,
		ImageURL:  media.PostImageURL(post.ImageURL),
		Caption:   post.Caption,
		CreatedAt: post.CreatedAt,
	}, nil
}

// CreateStory stores the uploaded image and inserts a story expiring
// 24 hours out. Story images live in the posts folder so their public
// URLs resolve under the same asset route.
func (s *contentServiceImpl) CreateStory(ctx context.Context, userID uint, in *UploadInput) (*domain.CreatedStory, error) {
	l := log.Ctx(ctx)

	filename, err := s.storeImage(ctx, "images/posts", in)
	if err != nil {
		l.Error().Err(err).Msg("failed to store story image")
		return nil, err
	}

	story := &domain.StoryModel{
		UserID:    userID,
		ImageURL:  filename,
		ExpiresAt: time.Now().Add(storyLifetime),
	}
	if err := s.stories.Create(ctx, story); err != nil {
		l.Error().Err(err).Msg("failed to create story")
		return nil, err
	}

	l.Info().Uint(log.FieldUserID, userID).Msg("story created")
	return &domain.CreatedStory{
		ID:        story.ID,
		ImageURL:  media.PostImageURL(story.ImageURL),
		CreatedAt: story.CreatedAt,
		ExpiresAt: story.ExpiresAt,
	}, nil
}

// UserPosts returns a user's gallery with engagement counts. A failed
// count batch degrades to zero counts and a failed listing to an empty
// gallery rather than an error.
func (s *contentServiceImpl) UserPosts(ctx context.Context, targetID uint, limit int) []domain.GalleryPost {
	l := log.Ctx(ctx)

	if limit <= 0 || limit > defaultGalleryLimit {
		limit = defaultGalleryLimit
	}

	rows, err := s.posts.ListByUser(ctx, targetID, limit)
	if err != nil {
		l.Error().Err(err).Uint(log.FieldTargetID, targetID).Msg("failed to list user posts, serving empty")
		return []domain.GalleryPost{}
	}
	if len(rows) == 0 {
		return []domain.GalleryPost{}
	}

	postIDs := make([]uint, len(rows))
	for i, r := range rows {
		postIDs[i] = r.ID
	}

	var likeCounts, commentCounts map[uint]int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		likeCounts, err = s.engagement.LikeCounts(gctx, postIDs)
		return err
	})
	g.Go(func() (err error) {
		commentCounts, err = s.engagement.CommentCounts(gctx, postIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		l.Warn().Err(err).Msg("gallery counts failed, serving zeroes")
		likeCounts, commentCounts = nil, nil
	}

	gallery := make([]domain.GalleryPost, 0, len(rows))
	for _, r := range rows {
		gallery = append(gallery, domain.GalleryPost{
			ID:            r.ID,
			ImageURL:      media.PostImageURL(r.ImageURL),
			Caption:       r.Caption,
			LikesCount:    likeCounts[r.ID],
			CommentsCount: commentCounts[r.ID],
			CreatedAt:     r.CreatedAt,
		})
	}
	return gallery
}

// StoreProfilePic persists an uploaded profile image and returns the
// stored filename for the profile_pic column.
func (s *contentServiceImpl) StoreProfilePic(ctx context.Context, in *UploadInput) (string, error) {
	filename, err := s.storeImage(ctx, "images/profiles", in)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to store profile image")
		return "", err
	}
	return filename, nil
}

// storeImage writes the upload under folder with a uuid-prefixed
// sanitized name and returns the bare filename, which is what the
// database stores.
func (s *contentServiceImpl) storeImage(ctx context.Context, folder string, in *UploadInput) (string, error) {
	if in == nil || in.File == nil {
		return "", validationError("image file is required")
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", validationError("unsupported image type")
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := s.storage.Write(ctx, folder+"/"+filename, in.File); err != nil {
		return "", err
	}
	return filename, nil
}
