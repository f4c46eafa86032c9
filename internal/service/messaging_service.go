package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/media"
	"github.com/TooEZtz/Instagram/internal/repository"
	"github.com/TooEZtz/Instagram/pkg/log"
)

const (
	defaultMessageWindow = 100
	maxMessageLength     = 2000
)

// messagingServiceImpl implements MessagingService.
type messagingServiceImpl struct {
	users         repository.UserRepository
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
}

// NewMessagingService creates a new messaging service.
func NewMessagingService(users repository.UserRepository, conversations repository.ConversationRepository, messages repository.MessageRepository) MessagingService {
	return &messagingServiceImpl{users: users, conversations: conversations, messages: messages}
}

var _ MessagingService = (*messagingServiceImpl)(nil)

// StartConversation resolves the single conversation for the pair,
// creating it when absent. A concurrent create of the same pair is
// resolved by re-reading the pair key, so both callers land on the
// same conversation.
func (s *messagingServiceImpl) StartConversation(ctx context.Context, userID, targetID uint) (*domain.ConversationView, error) {
	l := log.Ctx(ctx)

	if userID == targetID {
		return nil, ErrSelfConversation
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Uint(log.FieldTargetID, targetID).Msg("failed to load conversation target")
		return nil, err
	}

	pairKey := domain.PairKey(userID, targetID)
	conv, err := s.conversations.FindByPairKey(ctx, pairKey)
	if errors.Is(err, repository.ErrConversationNotFound) {
		conv, err = s.conversations.Create(ctx, pairKey, userID, targetID)
		if errors.Is(err, repository.ErrConversationExists) {
			// Lost the create race; the winner's row is ours too.
			conv, err = s.conversations.FindByPairKey(ctx, pairKey)
		}
	}
	if err != nil {
		l.Error().Err(err).Msg("failed to resolve conversation")
		return nil, err
	}

	l.Info().
		Uint(log.FieldUserID, userID).
		Uint(log.FieldConversationID, conv.ID).
		Msg("conversation resolved")

	return s.buildView(ctx, conv.ID, userID)
}

// ListConversations returns the caller's conversations sorted by most
// recent message, conversations without messages last. Failures
// degrade to an empty list.
func (s *messagingServiceImpl) ListConversations(ctx context.Context, userID uint) []domain.ConversationView {
	l := log.Ctx(ctx)

	ids, err := s.conversations.IDsForUser(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("failed to list conversation ids")
		return []domain.ConversationView{}
	}
	if len(ids) == 0 {
		return []domain.ConversationView{}
	}

	members, err := s.conversations.MembersByConversations(ctx, ids)
	if err != nil {
		l.Error().Err(err).Msg("failed to load conversation members")
		return []domain.ConversationView{}
	}
	lasts, err := s.messages.LastByConversations(ctx, ids)
	if err != nil {
		l.Error().Err(err).Msg("failed to load last messages")
		return []domain.ConversationView{}
	}

	views := make([]domain.ConversationView, 0, len(ids))
	for _, id := range ids {
		other, ok := otherMember(members[id], userID)
		if !ok {
			continue
		}
		view := domain.ConversationView{ID: id, OtherUser: other}
		if last, ok := lasts[id]; ok {
			mv := messageView(last)
			view.LastMessage = &mv
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].LastMessage, views[j].LastMessage
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
	return views
}

// Contacts lists mutual-follow users the caller can message. Failures
// degrade to an empty list.
func (s *messagingServiceImpl) Contacts(ctx context.Context, userID uint) []domain.Contact {
	rows, err := s.conversations.Contacts(ctx, userID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list contacts")
		return []domain.Contact{}
	}

	contacts := make([]domain.Contact, 0, len(rows))
	for _, r := range rows {
		contacts = append(contacts, domain.Contact{
			ID:             r.ID,
			Username:       r.Username,
			FullName:       r.FullName,
			ProfilePic:     media.ProfilePicURL(r.ProfilePic),
			ConversationID: r.ConversationID,
		})
	}
	return contacts
}

// GetMessages returns the newest window of a conversation's messages
// in chronological order, together with the conversation view. A
// non-member gets ErrNotMember, indistinguishable from a missing
// conversation.
func (s *messagingServiceImpl) GetMessages(ctx context.Context, conversationID, requesterID uint, limit int) ([]domain.MessageView, *domain.ConversationView, error) {
	l := log.Ctx(ctx)

	if limit <= 0 || limit > defaultMessageWindow {
		limit = defaultMessageWindow
	}

	if err := s.requireMember(ctx, conversationID, requesterID); err != nil {
		return nil, nil, err
	}

	rows, err := s.messages.Window(ctx, conversationID, limit)
	if err != nil {
		l.Error().Err(err).Uint(log.FieldConversationID, conversationID).Msg("failed to load messages")
		return nil, nil, err
	}

	// Window is newest first; clients render oldest first.
	msgs := make([]domain.MessageView, len(rows))
	for i, r := range rows {
		msgs[len(rows)-1-i] = messageView(r)
	}

	view, err := s.buildView(ctx, conversationID, requesterID)
	if err != nil {
		return nil, nil, err
	}
	return msgs, view, nil
}

// SendMessage appends a message to a conversation the sender belongs
// to.
func (s *messagingServiceImpl) SendMessage(ctx context.Context, conversationID, senderID uint, text string) (*domain.MessageView, error) {
	l := log.Ctx(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if len(text) > maxMessageLength {
		return nil, validationError("message is too long")
	}

	if err := s.requireMember(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg := &domain.MessageModel{
		ConversationID: conversationID,
		SenderID:       senderID,
		MessageText:    text,
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		l.Error().Err(err).Uint(log.FieldConversationID, conversationID).Msg("failed to insert message")
		return nil, err
	}

	row, err := s.messages.GetByID(ctx, msg.ID)
	if err != nil {
		l.Error().Err(err).Msg("failed to read back message")
		return nil, err
	}

	l.Info().
		Uint(log.FieldUserID, senderID).
		Uint(log.FieldConversationID, conversationID).
		Msg("message sent")

	mv := messageView(*row)
	return &mv, nil
}

func (s *messagingServiceImpl) requireMember(ctx context.Context, conversationID, userID uint) error {
	member, err := s.conversations.IsMember(ctx, conversationID, userID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Uint(log.FieldConversationID, conversationID).Msg("failed to check membership")
		return err
	}
	if !member {
		return ErrNotMember
	}
	return nil
}

func (s *messagingServiceImpl) buildView(ctx context.Context, conversationID, viewerID uint) (*domain.ConversationView, error) {
	members, err := s.conversations.Members(ctx, conversationID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Uint(log.FieldConversationID, conversationID).Msg("failed to load members")
		return nil, err
	}
	other, ok := otherMember(members, viewerID)
	if !ok {
		return nil, ErrNotMember
	}

	view := &domain.ConversationView{ID: conversationID, OtherUser: other}
	lasts, err := s.messages.LastByConversations(ctx, []uint{conversationID})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to load last message")
		return view, nil
	}
	if last, ok := lasts[conversationID]; ok {
		mv := messageView(last)
		view.LastMessage = &mv
	}
	return view, nil
}

func otherMember(members []repository.MemberRow, viewerID uint) (domain.Participant, bool) {
	for _, m := range members {
		if m.UserID != viewerID {
			return domain.Participant{
				ID:         m.UserID,
				Username:   m.Username,
				FullName:   m.FullName,
				ProfilePic: media.ProfilePicURL(m.ProfilePic),
			}, true
		}
	}
	return domain.Participant{}, false
}

func messageView(r repository.MessageWithSender) domain.MessageView {
	return domain.MessageView{
		ID:             r.ID,
		SenderID:       r.SenderID,
		SenderUsername: r.Username,
		MessageText:    r.MessageText,
		ImageURL:       r.ImageURL,
		ProfilePic:     media.ProfilePicURL(r.ProfilePic),
		CreatedAt:      r.CreatedAt,
	}
}
