package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "tubetweet-server/internal/domain/comment"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/requests"
	"tubetweet-server/internal/interfaces/httpserver/responses"
	"tubetweet-server/internal/utils/platformerrors"
)

// CommentHandler exposes comment endpoints.
type CommentHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewCommentHandler(service *domain.Service, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With().Str("component", "comment-handler").Logger(),
	}
}

func (h *CommentHandler) Add(c *gin.Context) {
	var req requests.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "comment content is required",
			"3b4c5d6e-7f8a-4b9c-8d1e-8f9a0b1c2d3e")
		return
	}

	comment, err := h.service.Add(c.Request.Context(), c.Param("videoId"), middlewares.CurrentUserID(c), req.Content)
	if err != nil {
		responses.HandleError(c, err, "comment creation failed")
		return
	}
	responses.JSON(c, http.StatusCreated, comment, "comment added successfully")
}

func (h *CommentHandler) ListByVideo(c *gin.Context) {
	comments, err := h.service.ListByVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		responses.HandleError(c, err, "failed to load comments")
		return
	}
	responses.JSON(c, http.StatusOK, comments, "comments fetched successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req requests.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "comment content is required",
			"4c5d6e7f-8a9b-4c0d-9e2f-9a0b1c2d3e4f")
		return
	}

	comment, err := h.service.Update(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c), req.Content)
	if err != nil {
		responses.HandleError(c, err, "comment update failed")
		return
	}
	responses.JSON(c, http.StatusOK, comment, "comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "comment deletion failed")
		return
	}
	responses.JSON(c, http.StatusOK, nil, "comment deleted successfully")
}
