package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "tubetweet-server/internal/domain/subscription"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/responses"
)

// SubscriptionHandler exposes channel follow endpoints.
type SubscriptionHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewSubscriptionHandler(service *domain.Service, log zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log.With().Str("component", "subscription-handler").Logger(),
	}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	subscribed, err := h.service.Toggle(c.Request.Context(), middlewares.CurrentUserID(c), c.Param("channelId"))
	if err != nil {
		responses.HandleError(c, err, "subscription toggle failed")
		return
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	responses.JSON(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channels, err := h.service.Subscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		responses.HandleError(c, err, "failed to load subscribers")
		return
	}
	responses.JSON(c, http.StatusOK, channels, "subscribers fetched successfully")
}

func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	channels, err := h.service.SubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		responses.HandleError(c, err, "failed to load subscribed channels")
		return
	}
	responses.JSON(c, http.StatusOK, channels, "subscribed channels fetched successfully")
}
