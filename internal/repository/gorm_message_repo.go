package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TooEZtz/Instagram/internal/domain"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-backed message repository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

const messageColumns = `messages.id, messages.conversation_id, messages.sender_id,
	messages.message_text, messages.image_url, messages.created_at,
	users.username, users.profile_pic`

// Insert appends a message row.
func (r *GormMessageRepository) Insert(ctx context.Context, msg *domain.MessageModel) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetByID fetches a message joined with its sender's display fields.
func (r *GormMessageRepository) GetByID(ctx context.Context, id uint) (*MessageWithSender, error) {
	var row MessageWithSender
	err := r.db.WithContext(ctx).Model(&domain.MessageModel{}).
		Select(messageColumns).
		Joins("INNER JOIN users ON users.id = messages.sender_id").
		Where("messages.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Window returns the newest limit messages of a conversation in
// newest-first order, tie-broken by id so the order is deterministic
// when timestamps collide.
func (r *GormMessageRepository) Window(ctx context.Context, conversationID uint, limit int) ([]MessageWithSender, error) {
	var rows []MessageWithSender
	err := r.db.WithContext(ctx).Model(&domain.MessageModel{}).
		Select(messageColumns).
		Joins("INNER JOIN users ON users.id = messages.sender_id").
		Where("messages.conversation_id = ?", conversationID).
		Order("messages.created_at DESC").
		Order("messages.id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LastByConversations returns the newest message per conversation. All
// candidates come back in one query ordered newest first; the first row
// seen per conversation wins.
func (r *GormMessageRepository) LastByConversations(ctx context.Context, conversationIDs []uint) (map[uint]MessageWithSender, error) {
	result := make(map[uint]MessageWithSender, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return result, nil
	}

	var rows []MessageWithSender
	err := r.db.WithContext(ctx).Model(&domain.MessageModel{}).
		Select(messageColumns).
		Joins("INNER JOIN users ON users.id = messages.sender_id").
		Where("messages.conversation_id IN ?", conversationIDs).
		Order("messages.created_at DESC").
		Order("messages.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if _, seen := result[row.ConversationID]; !seen {
			result[row.ConversationID] = row
		}
	}
	return result, nil
}

var _ MessageRepository = (*GormMessageRepository)(nil)
