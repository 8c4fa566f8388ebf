package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "tubetweet-server/internal/domain/playlist"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/requests"
	"tubetweet-server/internal/interfaces/httpserver/responses"
	"tubetweet-server/internal/utils/platformerrors"
)

// PlaylistHandler exposes playlist endpoints.
type PlaylistHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewPlaylistHandler(service *domain.Service, log zerolog.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		service: service,
		log:     log.With().Str("component", "playlist-handler").Logger(),
	}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req requests.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid playlist payload",
			"5d6e7f8a-9b0c-4d1e-8f3a-0b1c2d3e4f5a")
		return
	}

	p, err := h.service.Create(c.Request.Context(), middlewares.CurrentUserID(c), domain.Params{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		responses.HandleError(c, err, "playlist creation failed")
		return
	}
	responses.JSON(c, http.StatusCreated, p, "playlist created successfully")
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		responses.HandleError(c, err, "failed to load playlist")
		return
	}
	responses.JSON(c, http.StatusOK, p, "playlist fetched successfully")
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	playlists, err := h.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		responses.HandleError(c, err, "failed to load playlists")
		return
	}
	responses.JSON(c, http.StatusOK, playlists, "playlists fetched successfully")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	var req requests.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid playlist payload",
			"6e7f8a9b-0c1d-4e2f-9a4b-1c2d3e4f5a6b")
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("playlistId"), middlewares.CurrentUserID(c), domain.Params{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		responses.HandleError(c, err, "playlist update failed")
		return
	}
	responses.JSON(c, http.StatusOK, p, "playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("playlistId"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "playlist deletion failed")
		return
	}
	responses.JSON(c, http.StatusOK, nil, "playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	p, err := h.service.AddVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to add video to playlist")
		return
	}
	responses.JSON(c, http.StatusOK, p, "video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	err := h.service.RemoveVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to remove video from playlist")
		return
	}
	responses.JSON(c, http.StatusOK, nil, "video removed from playlist successfully")
}

func (h *PlaylistHandler) Videos(c *gin.Context) {
	videos, err := h.service.Videos(c.Request.Context(), c.Param("playlistId"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load playlist videos")
		return
	}
	responses.JSON(c, http.StatusOK, videos, "playlist videos fetched successfully")
}
