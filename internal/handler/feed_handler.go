package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TooEZtz/Instagram/pkg/middleware"
	"github.com/TooEZtz/Instagram/pkg/response"
)

// Feed returns the caller's home feed. The feed never fails; storage
// trouble shows up as an empty list.
func (h *Handler) Feed(c *gin.Context) {
	ctx := c.Request.Context()
	feed := h.feed.GetFeed(ctx, middleware.GetUserID(c), intQuery(c, "limit", 0))
	response.Success(c, feed)
}

// Stories returns the caller's active stories tray.
func (h *Handler) Stories(c *gin.Context) {
	ctx := c.Request.Context()
	stories := h.feed.GetStories(ctx, middleware.GetUserID(c))
	response.Success(c, stories)
}
