package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "tubetweet-server/internal/domain/dashboard"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/responses"
)

// DashboardHandler exposes the channel owner's dashboard.
type DashboardHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewDashboardHandler(service *domain.Service, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With().Str("component", "dashboard-handler").Logger(),
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load channel stats")
		return
	}
	responses.JSON(c, http.StatusOK, stats, "channel stats fetched successfully")
}

func (h *DashboardHandler) Videos(c *gin.Context) {
	videos, err := h.service.Videos(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load channel videos")
		return
	}
	responses.JSON(c, http.StatusOK, videos, "channel videos fetched successfully")
}
