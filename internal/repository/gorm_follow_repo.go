package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
)

// isUniqueViolation reports whether err is a unique-constraint
// violation. With TranslateError enabled, GORM maps these to
// gorm.ErrDuplicatedKey on every supported driver.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Insert creates a follow edge. When a concurrent toggle already
// inserted the same pair, the unique index rejects the row and the
// caller learns the edge exists via ErrAlreadyFollowing.
func (r *GormFollowRepository) Insert(ctx context.Context, followerID, followingID uint) error {
	model := domain.FollowModel{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Delete removes a follow edge.
func (r *GormFollowRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.FollowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// Exists checks if followerID follows followingID.
func (r *GormFollowRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowingIDs returns every user id the given user follows.
func (r *GormFollowRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowersCount returns the number of followers for a user.
func (r *GormFollowRepository) FollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FollowingCount returns the number of users a user follows.
func (r *GormFollowRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

var _ FollowRepository = (*GormFollowRepository)(nil)
