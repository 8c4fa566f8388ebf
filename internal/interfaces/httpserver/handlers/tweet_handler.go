package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "tubetweet-server/internal/domain/tweet"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/requests"
	"tubetweet-server/internal/interfaces/httpserver/responses"
	"tubetweet-server/internal/utils/platformerrors"
)

// TweetHandler exposes tweet endpoints.
type TweetHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewTweetHandler(service *domain.Service, log zerolog.Logger) *TweetHandler {
	return &TweetHandler{
		service: service,
		log:     log.With().Str("component", "tweet-handler").Logger(),
	}
}

func (h *TweetHandler) Create(c *gin.Context) {
	var req requests.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "tweet content is required",
			"1f2a3b4c-5d6e-4f7a-8b9c-6d7e8f9a0b1c")
		return
	}

	t, err := h.service.Create(c.Request.Context(), middlewares.CurrentUserID(c), req.Content)
	if err != nil {
		responses.HandleError(c, err, "tweet creation failed")
		return
	}
	responses.JSON(c, http.StatusCreated, t, "tweet created successfully")
}

func (h *TweetHandler) ListAll(c *gin.Context) {
	tweets, err := h.service.ListAll(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load tweets")
		return
	}
	responses.JSON(c, http.StatusOK, tweets, "tweets fetched successfully")
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	tweets, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load user tweets")
		return
	}
	responses.JSON(c, http.StatusOK, tweets, "user tweets fetched successfully")
}

func (h *TweetHandler) Update(c *gin.Context) {
	var req requests.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "tweet content is required",
			"2a3b4c5d-6e7f-4a8b-9c0d-7e8f9a0b1c2d")
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c), req.Content)
	if err != nil {
		responses.HandleError(c, err, "tweet update failed")
		return
	}
	responses.JSON(c, http.StatusOK, t, "tweet updated successfully")
}

func (h *TweetHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "tweet deletion failed")
		return
	}
	responses.JSON(c, http.StatusOK, nil, "tweet deleted successfully")
}
