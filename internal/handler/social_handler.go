package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TooEZtz/Instagram/internal/service"
	"github.com/TooEZtz/Instagram/pkg/log"
	"github.com/TooEZtz/Instagram/pkg/middleware"
	"github.com/TooEZtz/Instagram/pkg/response"
)

// ToggleFollow flips the caller's follow edge toward a user.
func (h *Handler) ToggleFollow(c *gin.Context) {
	ctx := c.Request.Context()
	targetID, ok := idParam(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	state, err := h.social.ToggleFollow(ctx, middleware.GetUserID(c), targetID)
	if err != nil {
		if errors.Is(err, service.ErrSelfFollow) {
			response.BadRequest(c, "cannot follow yourself")
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to toggle follow")
		response.InternalError(c, "failed to toggle follow")
		return
	}

	response.Success(c, state)
}
