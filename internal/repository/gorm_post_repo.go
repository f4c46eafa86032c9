package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
)

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-backed post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts a new post row.
func (r *GormPostRepository) Create(ctx context.Context, post *domain.PostModel) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID fetches a post by primary key.
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*domain.PostModel, error) {
	var post domain.PostModel
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListByOwners returns the newest posts owned by any of ownerIDs joined
// with the owners' display fields. Ordering is created_at descending
// with id descending as the deterministic tie-break for colliding
// timestamps.
func (r *GormPostRepository) ListByOwners(ctx context.Context, ownerIDs []uint, limit int) ([]PostWithAuthor, error) {
	if len(ownerIDs) == 0 {
		return []PostWithAuthor{}, nil
	}

	var rows []PostWithAuthor
	err := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Select(`posts.id, posts.user_id, posts.image_url, posts.caption, posts.created_at,
			users.username, users.full_name, users.profile_pic`).
		Joins("INNER JOIN users ON users.id = posts.user_id").
		Where("posts.user_id IN ?", ownerIDs).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByUser returns a single user's newest posts.
func (r *GormPostRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]domain.PostModel, error) {
	var posts []domain.PostModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

var _ PostRepository = (*GormPostRepository)(nil)

// GormStoryRepository implements StoryRepository using GORM.
type GormStoryRepository struct {
	db *gorm.DB
}

// NewGormStoryRepository creates a new GORM-backed story repository.
func NewGormStoryRepository(db *gorm.DB) *GormStoryRepository {
	return &GormStoryRepository{db: db}
}

// Create inserts a new story row.
func (r *GormStoryRepository) Create(ctx context.Context, story *domain.StoryModel) error {
	return r.db.WithContext(ctx).Create(story).Error
}

// GetByID fetches a story by primary key.
func (r *GormStoryRepository) GetByID(ctx context.Context, id uint) (*domain.StoryModel, error) {
	var story domain.StoryModel
	err := r.db.WithContext(ctx).First(&story, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &story, nil
}

// ListActiveByOwners returns non-expired stories owned by any of
// ownerIDs, newest first. Expiry is purely a read-time filter; expired
// rows stay in the table.
func (r *GormStoryRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uint, now time.Time) ([]StoryWithAuthor, error) {
	if len(ownerIDs) == 0 {
		return []StoryWithAuthor{}, nil
	}

	var rows []StoryWithAuthor
	err := r.db.WithContext(ctx).Model(&domain.StoryModel{}).
		Select(`stories.id, stories.user_id, stories.image_url, stories.created_at, stories.expires_at,
			users.username, users.profile_pic`).
		Joins("INNER JOIN users ON users.id = stories.user_id").
		Where("stories.user_id IN ?", ownerIDs).
		Where("stories.expires_at > ?", now).
		Order("stories.created_at DESC").
		Order("stories.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var _ StoryRepository = (*GormStoryRepository)(nil)
