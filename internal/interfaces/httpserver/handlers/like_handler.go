package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "tubetweet-server/internal/domain/like"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/responses"
)

// LikeHandler exposes toggle endpoints for the three like target kinds.
type LikeHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewLikeHandler(service *domain.Service, log zerolog.Logger) *LikeHandler {
	return &LikeHandler{
		service: service,
		log:     log.With().Str("component", "like-handler").Logger(),
	}
}

func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, domain.TargetVideo)
}

func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, domain.TargetComment)
}

func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, domain.TargetTweet)
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	videos, err := h.service.LikedVideos(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load liked videos")
		return
	}
	responses.JSON(c, http.StatusOK, videos, "liked videos fetched successfully")
}

func (h *LikeHandler) toggle(c *gin.Context, kind domain.TargetKind) {
	target := domain.Target{Kind: kind, ID: c.Param("id")}
	liked, err := h.service.Toggle(c.Request.Context(), middlewares.CurrentUserID(c), target)
	if err != nil {
		responses.HandleError(c, err, "like toggle failed")
		return
	}

	message := string(kind) + " unliked successfully"
	if liked {
		message = string(kind) + " liked successfully"
	}
	responses.JSON(c, http.StatusOK, gin.H{"liked": liked}, message)
}
