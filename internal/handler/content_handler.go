package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TooEZtz/Instagram/internal/service"
	"github.com/TooEZtz/Instagram/pkg/log"
	"github.com/TooEZtz/Instagram/pkg/middleware"
	"github.com/TooEZtz/Instagram/pkg/response"
)

// CreateContent creates a post or a story from a multipart form. The
// kind field selects which; posts additionally carry caption,
// location, and allow_comments.
func (h *Handler) CreateContent(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	userID := middleware.GetUserID(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	defer file.Close()

	upload := service.UploadInput{File: file, Filename: header.Filename}

	switch kind := c.PostForm("kind"); kind {
	case "story":
		story, err := h.content.CreateStory(ctx, userID, &upload)
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				response.BadRequest(c, err.Error())
				return
			}
			l.Error().Err(err).Msg("failed to create story")
			response.InternalError(c, "failed to create story")
			return
		}
		response.Created(c, story)

	case "post", "":
		allowComments := true
		if raw := c.PostForm("allow_comments"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				response.BadRequest(c, "invalid allow_comments value")
				return
			}
			allowComments = parsed
		}

		post, err := h.content.CreatePost(ctx, userID, &service.CreatePostInput{
			Upload:        upload,
			Caption:       c.PostForm("caption"),
			Location:      c.PostForm("location"),
			AllowComments: allowComments,
		})
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				response.BadRequest(c, err.Error())
				return
			}
			l.Error().Err(err).Msg("failed to create post")
			response.InternalError(c, "failed to create post")
			return
		}
		response.Created(c, post)

	default:
		response.BadRequest(c, "kind must be post or story")
	}
}
