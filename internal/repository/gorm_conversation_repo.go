package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
)

// GormConversationRepository implements ConversationRepository using
// GORM.
type GormConversationRepository struct {
	db *gorm.DB
}

// NewGormConversationRepository creates a new GORM-backed conversation
// repository.
func NewGormConversationRepository(db *gorm.DB) *GormConversationRepository {
	return &GormConversationRepository{db: db}
}

// FindByPairKey resolves the conversation holding the canonical pair
// key, if one exists.
func (r *GormConversationRepository) FindByPairKey(ctx context.Context, pairKey string) (*domain.ConversationModel, error) {
	var conv domain.ConversationModel
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", pairKey).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// Create inserts the conversation and both membership rows in a single
// transaction. The unique index on pair_key makes this safe under
// concurrent resolve-or-create calls: the loser of the race gets
// ErrConversationExists and re-resolves.
func (r *GormConversationRepository) Create(ctx context.Context, pairKey string, userA, userB uint) (*domain.ConversationModel, error) {
	conv := domain.ConversationModel{PairKey: pairKey}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}
		members := []domain.ConversationMemberModel{
			{ConversationID: conv.ID, UserID: userA},
			{ConversationID: conv.ID, UserID: userB},
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConversationExists
		}
		return nil, err
	}
	return &conv, nil
}

// IsMember checks whether the user belongs to the conversation.
func (r *GormConversationRepository) IsMember(ctx context.Context, conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ConversationMemberModel{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

const memberColumns = `conversation_members.conversation_id, conversation_members.user_id,
	users.username, users.full_name, users.profile_pic`

// Members returns the conversation's participants joined with their
// display fields.
func (r *GormConversationRepository) Members(ctx context.Context, conversationID uint) ([]MemberRow, error) {
	var rows []MemberRow
	err := r.db.WithContext(ctx).Model(&domain.ConversationMemberModel{}).
		Select(memberColumns).
		Joins("INNER JOIN users ON users.id = conversation_members.user_id").
		Where("conversation_members.conversation_id = ?", conversationID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MembersByConversations returns all participants of the listed
// conversations in one query, grouped by conversation.
func (r *GormConversationRepository) MembersByConversations(ctx context.Context, conversationIDs []uint) (map[uint][]MemberRow, error) {
	result := make(map[uint][]MemberRow, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return result, nil
	}

	var rows []MemberRow
	err := r.db.WithContext(ctx).Model(&domain.ConversationMemberModel{}).
		Select(memberColumns).
		Joins("INNER JOIN users ON users.id = conversation_members.user_id").
		Where("conversation_members.conversation_id IN ?", conversationIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ConversationID] = append(result[row.ConversationID], row)
	}
	return result, nil
}

// IDsForUser returns every conversation id the user is a member of.
func (r *GormConversationRepository) IDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.ConversationMemberModel{}).
		Where("user_id = ?", userID).
		Pluck("conversation_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Contacts returns users the viewer mutually follows, each annotated
// with any conversation the two already share. The shared conversation
// is resolved through a membership set-intersection subquery, which is
// portable across the supported drivers.
func (r *GormConversationRepository) Contacts(ctx context.Context, viewerID uint) ([]ContactRow, error) {
	var rows []ContactRow
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Select(`users.id, users.username, users.full_name, users.profile_pic,
			(SELECT cm1.conversation_id
			 FROM conversation_members cm1
			 INNER JOIN conversation_members cm2 ON cm1.conversation_id = cm2.conversation_id
			 WHERE cm1.user_id = ? AND cm2.user_id = users.id
			 LIMIT 1) AS conversation_id`, viewerID).
		Joins("INNER JOIN users ON users.id = follows.following_id").
		Where("follows.follower_id = ?", viewerID).
		Where("EXISTS (SELECT 1 FROM follows f2 WHERE f2.follower_id = users.id AND f2.following_id = ?)", viewerID).
		Order("users.username ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var _ ConversationRepository = (*GormConversationRepository)(nil)
