package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-backed user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new account row. A username or email collision is
// reported as ErrUserExists.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.UserModel) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// GetByID fetches a user by primary key.
func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*domain.UserModel, error) {
	var user domain.UserModel
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByIdentifier fetches a user by username or email.
func (r *GormUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.UserModel, error) {
	var user domain.UserModel
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether the username is taken.
func (r *GormUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailExists reports whether the email is taken.
func (r *GormUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile updates the mutable profile fields. An empty profilePic
// keeps the existing image.
func (r *GormUserRepository) UpdateProfile(ctx context.Context, id uint, bio string, isPrivate bool, profilePic string) error {
	updates := map[string]interface{}{
		"bio":        bio,
		"is_private": isPrivate,
	}
	if profilePic != "" {
		updates["profile_pic"] = profilePic
	}

	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

const profileColumns = `
	users.id, users.username, users.email, users.full_name, users.bio, users.profile_pic,
	(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) AS followers_count,
	(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) AS following_count,
	(SELECT COUNT(*) FROM posts WHERE posts.user_id = users.id) AS posts_count`

// ProfileRow returns a user with follower, following, and post counts
// computed in a single query.
func (r *GormUserRepository) ProfileRow(ctx context.Context, id uint) (*SuggestedRow, error) {
	var row SuggestedRow
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Select(profileColumns).
		Where("users.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Suggestions returns users the viewer does not already follow, ranked
// by raw follower count with username as the stable tie-break.
func (r *GormUserRepository) Suggestions(ctx context.Context, viewerID uint, limit, offset int) ([]SuggestedRow, error) {
	var rows []SuggestedRow
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Select(profileColumns).
		Where("users.id != ?", viewerID).
		Where("users.id NOT IN (SELECT following_id FROM follows WHERE follower_id = ?)", viewerID).
		Order("followers_count DESC").
		Order("users.username ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var _ UserRepository = (*GormUserRepository)(nil)
