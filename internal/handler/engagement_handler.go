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

// ToggleLike flips the caller's like on a post.
func (h *Handler) ToggleLike(c *gin.Context) {
	ctx := c.Request.Context()
	postID, ok := idParam(c)
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}

	state, err := h.engagement.ToggleLike(ctx, middleware.GetUserID(c), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to toggle like")
		response.InternalError(c, "failed to toggle like")
		return
	}

	response.Success(c, state)
}

// AddComment appends a comment to a post.
func (h *Handler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	postID, ok := idParam(c)
	if !ok {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req domain.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid comment request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.engagement.AddComment(ctx, middleware.GetUserID(c), postID, req.CommentText)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		l.Error().Err(err).Msg("failed to add comment")
		response.InternalError(c, "failed to add comment")
		return
	}

	response.Created(c, result)
}
