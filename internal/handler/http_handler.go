package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TooEZtz/Instagram/internal/service"
	"github.com/TooEZtz/Instagram/pkg/middleware"
)

// Handler serves the HTTP API.
type Handler struct {
	accounts       service.AccountService
	social         service.SocialGraphService
	feed           service.FeedService
	content        service.ContentService
	engagement     service.EngagementService
	messaging      service.MessagingService
	authMiddleware *middleware.AuthMiddleware
	assetsPath     string
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	accounts service.AccountService,
	social service.SocialGraphService,
	feed service.FeedService,
	content service.ContentService,
	engagement service.EngagementService,
	messaging service.MessagingService,
	authMiddleware *middleware.AuthMiddleware,
	assetsPath string,
) *Handler {
	return &Handler{
		accounts:       accounts,
		social:         social,
		feed:           feed,
		content:        content,
		engagement:     engagement,
		messaging:      messaging,
		authMiddleware: authMiddleware,
		assetsPath:     assetsPath,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Static("/assets", h.assetsPath)

	api := r.Group("/api/v1")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/login", h.Login)
			auth.POST("/logout", h.authMiddleware.RequireAuth(), h.Logout)
			auth.GET("/session", h.authMiddleware.TryAuth(), h.Session)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(h.authMiddleware.RequireAuth())
		{
			protected.GET("/feed", h.Feed)
			protected.GET("/stories", h.Stories)
			protected.POST("/content", h.CreateContent)

			protected.POST("/posts/:id/like", h.ToggleLike)
			protected.POST("/posts/:id/comment", h.AddComment)

			protected.POST("/follow/:id", h.ToggleFollow)

			protected.GET("/users/me", h.Me)
			protected.POST("/users/me/profile", h.UpdateProfile)
			protected.GET("/users/suggestions", h.Suggestions)
			protected.GET("/users/:id", h.Profile)
			protected.GET("/users/:id/posts", h.UserPosts)

			protected.GET("/messages/contacts", h.Contacts)
			protected.GET("/messages/conversations", h.Conversations)
			protected.POST("/messages/start", h.StartConversation)
			protected.GET("/messages/conversations/:id/messages", h.GetMessages)
			protected.POST("/messages/conversations/:id/messages", h.SendMessage)
		}
	}
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// intQuery parses an integer query parameter with a default.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
