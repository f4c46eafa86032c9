package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/service"
	"github.com/TooEZtz/Instagram/pkg/log"
	"github.com/TooEZtz/Instagram/pkg/middleware"
	"github.com/TooEZtz/Instagram/pkg/response"
)

// Contacts lists the caller's mutual-follow contacts.
func (h *Handler) Contacts(c *gin.Context) {
	ctx := c.Request.Context()
	contacts := h.messaging.Contacts(ctx, middleware.GetUserID(c))
	response.Success(c, contacts)
}

// Conversations lists the caller's conversations, most recently
// active first.
func (h *Handler) Conversations(c *gin.Context) {
	ctx := c.Request.Context()
	conversations := h.messaging.ListConversations(ctx, middleware.GetUserID(c))
	response.Success(c, conversations)
}

// StartConversation resolves or creates the 1:1 conversation with
// another user.
func (h *Handler) StartConversation(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid start conversation request")
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.messaging.StartConversation(ctx, middleware.GetUserID(c), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrSelfConversation) {
			response.BadRequest(c, "cannot start a conversation with yourself")
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Msg("failed to start conversation")
		response.InternalError(c, "failed to start conversation")
		return
	}

	response.Created(c, view)
}

// GetMessages returns the newest window of a conversation in
// chronological order.
func (h *Handler) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()
	conversationID, ok := idParam(c)
	if !ok {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	messages, view, err := h.messaging.GetMessages(ctx, conversationID, middleware.GetUserID(c), intQuery(c, "limit", 0))
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			response.NotFound(c, "conversation not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to load messages")
		response.InternalError(c, "failed to load messages")
		return
	}

	response.Success(c, gin.H{
		"conversation": view,
		"messages":     messages,
	})
}

// SendMessage appends a message to a conversation.
func (h *Handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	conversationID, ok := idParam(c)
	if !ok {
		response.BadRequest(c, "invalid conversation id")
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid send message request")
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.messaging.SendMessage(ctx, conversationID, middleware.GetUserID(c), req.MessageText)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, service.ErrNotMember) {
			response.NotFound(c, "conversation not found")
			return
		}
		l.Error().Err(err).Msg("failed to send message")
		response.InternalError(c, "failed to send message")
		return
	}

	response.Created(c, msg)
}
