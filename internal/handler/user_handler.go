package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TooEZtz/Instagram/internal/domain"
	"github.com/TooEZtz/Instagram/internal/service"
	"github.com/TooEZtz/Instagram/pkg/log"
	"github.com/TooEZtz/Instagram/pkg/middleware"
	"github.com/TooEZtz/Instagram/pkg/response"
)

// Me returns the caller's own profile.
func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	profile, err := h.accounts.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to load own profile")
		response.InternalError(c, "failed to load profile")
		return
	}

	response.Success(c, profile)
}

// Profile returns another user's profile with the caller's follow
// state.
func (h *Handler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	targetID, ok := idParam(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	profile, err := h.accounts.Profile(ctx, middleware.GetUserID(c), targetID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to load profile")
		response.InternalError(c, "failed to load profile")
		return
	}

	response.Success(c, profile)
}

// UpdateProfile applies profile edits from a multipart form: bio,
// is_private, and an optional replacement profile picture.
func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	userID := middleware.GetUserID(c)

	req := domain.UpdateProfileRequest{
		Bio: c.PostForm("bio"),
	}
	if raw := c.PostForm("is_private"); raw != "" {
		isPrivate, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "invalid is_private value")
			return
		}
		req.IsPrivate = isPrivate
	}

	if file, header, err := c.Request.FormFile("profile_pic"); err == nil {
		defer file.Close()
		stored, err := h.content.StoreProfilePic(ctx, &service.UploadInput{
			File:     file,
			Filename: header.Filename,
		})
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				response.BadRequest(c, err.Error())
				return
			}
			l.Error().Err(err).Msg("failed to store profile picture")
			response.InternalError(c, "failed to store profile picture")
			return
		}
		req.ProfilePic = stored
	}

	profile, err := h.accounts.UpdateProfile(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Msg("failed to update profile")
		response.InternalError(c, "failed to update profile")
		return
	}

	response.Success(c, profile)
}

// Suggestions returns the people-you-may-know listing. The listing is
// best-effort and always answers 200.
func (h *Handler) Suggestions(c *gin.Context) {
	ctx := c.Request.Context()
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 0)

	response.Success(c, h.social.Suggestions(ctx, middleware.GetUserID(c), page, perPage))
}

// UserPosts returns a user's gallery. The gallery is best-effort and
// always answers 200.
func (h *Handler) UserPosts(c *gin.Context) {
	ctx := c.Request.Context()
	targetID, ok := idParam(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	response.Success(c, h.content.UserPosts(ctx, targetID, intQuery(c, "limit", 0)))
}
