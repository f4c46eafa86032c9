package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
)

// GormEngagementRepository implements EngagementRepository using GORM.
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewGormEngagementRepository creates a new GORM-backed engagement
// repository.
func NewGormEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{db: db}
}

// InsertLike creates a like row. A concurrent duplicate of the
// (user, post) pair surfaces as ErrAlreadyLiked.
func (r *GormEngagementRepository) InsertLike(ctx context.Context, userID, postID uint) error {
	model := domain.LikeModel{UserID: userID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// DeleteLike removes a like row.
func (r *GormEngagementRepository) DeleteLike(ctx context.Context, userID, postID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.LikeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// LikeExists checks whether the user has liked the post.
func (r *GormEngagementRepository) LikeExists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LikeModel{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LikesCount returns the total like count for a post.
func (r *GormEngagementRepository) LikesCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LikeModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// LikedPostIDs reports, in a single query, which of postIDs the user
// has liked.
func (r *GormEngagementRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		result[id] = false
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	var liked []uint
	err := r.db.WithContext(ctx).Model(&domain.LikeModel{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &liked).Error
	if err != nil {
		return nil, err
	}

	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

// countRow carries a GROUP BY aggregate.
type countRow struct {
	PostID uint
	Total  int64
}

// LikeCounts returns like totals for the given posts in one query.
func (r *GormEngagementRepository) LikeCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return r.groupedCounts(ctx, &domain.LikeModel{}, postIDs)
}

// CommentCounts returns comment totals for the given posts in one query.
func (r *GormEngagementRepository) CommentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return r.groupedCounts(ctx, &domain.CommentModel{}, postIDs)
}

func (r *GormEngagementRepository) groupedCounts(ctx context.Context, model interface{}, postIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var rows []countRow
	err := r.db.WithContext(ctx).Model(model).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.PostID] = row.Total
	}
	return result, nil
}

// RecentComments returns up to perPost newest comments for each post.
// One query fetches all candidates ordered within each post; the
// truncation to perPost happens in memory, per post rather than
// globally.
func (r *GormEngagementRepository) RecentComments(ctx context.Context, postIDs []uint, perPost int) (map[uint][]CommentWithAuthor, error) {
	result := make(map[uint][]CommentWithAuthor, len(postIDs))
	if len(postIDs) == 0 || perPost <= 0 {
		return result, nil
	}

	var rows []CommentWithAuthor
	err := r.db.WithContext(ctx).Model(&domain.CommentModel{}).
		Select(`comments.id, comments.post_id, comments.user_id, comments.comment_text,
			comments.created_at, users.username, users.profile_pic`).
		Joins("INNER JOIN users ON users.id = comments.user_id").
		Where("comments.post_id IN ?", postIDs).
		Order("comments.post_id").
		Order("comments.created_at DESC").
		Order("comments.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if len(result[row.PostID]) < perPost {
			result[row.PostID] = append(result[row.PostID], row)
		}
	}
	return result, nil
}

// InsertComment inserts a comment row.
func (r *GormEngagementRepository) InsertComment(ctx context.Context, comment *domain.CommentModel) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetComment fetches a comment joined with its author's display fields.
func (r *GormEngagementRepository) GetComment(ctx context.Context, id uint) (*CommentWithAuthor, error) {
	var row CommentWithAuthor
	err := r.db.WithContext(ctx).Model(&domain.CommentModel{}).
		Select(`comments.id, comments.post_id, comments.user_id, comments.comment_text,
			comments.created_at, users.username, users.profile_pic`).
		Joins("INNER JOIN users ON users.id = comments.user_id").
		Where("comments.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &row, nil
}

// CommentsCount returns the total comment count for a post.
func (r *GormEngagementRepository) CommentsCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CommentModel{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

var _ EngagementRepository = (*GormEngagementRepository)(nil)
