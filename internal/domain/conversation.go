package domain

import (
	"fmt"
	"time"
)

// ConversationModel is the GORM model for the conversations table.
// PairKey is the canonical, order-independent key of the two members;
// its unique index guarantees at most one conversation per user pair
// no matter how many resolve-or-create calls race.
type ConversationModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PairKey   string    `gorm:"type:varchar(41);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for ConversationModel.
func (ConversationModel) TableName() string { return "conversations" }

// PairKey builds the canonical key for an unordered pair of user ids.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// ConversationMemberModel is the GORM model for the conversation_members
// table. Membership is permanent once created; a 1:1 conversation has
// exactly two rows.
type ConversationMemberModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	ConversationID uint      `gorm:"uniqueIndex:uidx_member_pair;index;not null"`
	UserID         uint      `gorm:"uniqueIndex:uidx_member_pair;index;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for ConversationMemberModel.
func (ConversationMemberModel) TableName() string { return "conversation_members" }

// MessageModel is the GORM model for the messages table. Messages are
// append-only and strictly ordered by (created_at, id) within a
// conversation.
type MessageModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	ConversationID uint      `gorm:"index;not null"`
	SenderID       uint      `gorm:"not null"`
	MessageText    string    `gorm:"type:text;not null"`
	ImageURL       *string   `gorm:"type:varchar(255)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for MessageModel.
func (MessageModel) TableName() string { return "messages" }

// Participant is the display view of a conversation member.
type Participant struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
}

// MessageView is a message joined with its sender's display fields.
type MessageView struct {
	ID             uint      `json:"id"`
	SenderID       uint      `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	MessageText    string    `json:"message_text"`
	ImageURL       *string   `json:"image_url"`
	ProfilePic     string    `json:"profile_pic,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationView is the payload shown to a client for one
// conversation: the other participant and the latest message, if any.
type ConversationView struct {
	ID          uint         `json:"id"`
	OtherUser   Participant  `json:"other_user"`
	LastMessage *MessageView `json:"last_message"`
}

// Contact is a mutual-follow user eligible for messaging, carrying any
// conversation already shared with the viewer.
type Contact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	ProfilePic     string `json:"profile_pic"`
	ConversationID *uint  `json:"conversation_id"`
}

// StartConversationRequest is the request body for resolve-or-create.
type StartConversationRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// SendMessageRequest is the request body for appending a message.
type SendMessageRequest struct {
	MessageText string `json:"message_text"`
}
