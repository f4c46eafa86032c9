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

// Signup handles account registration.
func (h *Handler) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid signup request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.accounts.Signup(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, err.Error())
			return
		}
		l.Error().Err(err).Msg("signup failed")
		response.InternalError(c, "failed to create account")
		return
	}

	response.Created(c, user)
}

// Login handles authentication by username or email.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.accounts.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		l.Error().Err(err).Msg("login failed")
		response.InternalError(c, "failed to login")
		return
	}

	response.Success(c, result)
}

// Logout revokes the caller's tokens.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.accounts.Logout(ctx, userID); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("logout failed")
		response.InternalError(c, "failed to logout")
		return
	}

	response.Success(c, gin.H{"message": "logged out"})
}

// Session reports whether the caller holds a valid token. It never
// returns 401; an anonymous caller gets logged_in false.
func (h *Handler) Session(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Success(c, gin.H{"logged_in": false})
		return
	}

	response.Success(c, gin.H{
		"logged_in": true,
		"user_id":   userID,
		"username":  middleware.GetUsername(c),
	})
}
