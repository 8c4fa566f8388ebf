package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
	domain "tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/requests"
	"tubetweet-server/internal/interfaces/httpserver/responses"
	"tubetweet-server/internal/utils/platformerrors"
)

// VideoHandler exposes video endpoints.
type VideoHandler struct {
	cfg     *config.Config
	service *domain.Service
	log     zerolog.Logger
}

func NewVideoHandler(cfg *config.Config, service *domain.Service, log zerolog.Logger) *VideoHandler {
	return &VideoHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "video-handler").Logger(),
	}
}

// Upload accepts a multipart form with videoFile, thumbnail, title,
// description and duration fields.
func (h *VideoHandler) Upload(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "title is required",
			"5f6a7b8c-9d0e-4f1a-8b3c-0d1e2f3a4b5c")
		return
	}

	videoFile, videoHeader, err := c.Request.FormFile("videoFile")
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "videoFile is required",
			"6a7b8c9d-0e1f-4a2b-9c4d-1e2f3a4b5c6d")
		return
	}
	defer videoFile.Close()
	if videoHeader.Size > h.cfg.MaxVideoBytes {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "videoFile exceeds the size limit",
			"7b8c9d0e-1f2a-4b3c-8d5e-2f3a4b5c6d7e")
		return
	}

	thumbFile, thumbHeader, err := c.Request.FormFile("thumbnail")
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "thumbnail is required",
			"8c9d0e1f-2a3b-4c4d-9e6f-3a4b5c6d7e8f")
		return
	}
	defer thumbFile.Close()
	if thumbHeader.Size > h.cfg.MaxImageBytes {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "thumbnail exceeds the size limit",
			"9d0e1f2a-3b4c-4d5e-8f7a-4b5c6d7e8f9a")
		return
	}

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	v, err := h.service.Upload(c.Request.Context(), domain.UploadParams{
		Title:       title,
		Description: c.PostForm("description"),
		Duration:    duration,
		OwnerID:     middlewares.CurrentUserID(c),
		Video:       domain.FileUpload{Reader: videoFile, Size: videoHeader.Size},
		Thumbnail:   domain.FileUpload{Reader: thumbFile, Size: thumbHeader.Size},
	})
	if err != nil {
		responses.HandleError(c, err, "video upload failed")
		return
	}
	responses.JSON(c, http.StatusCreated, v, "video uploaded successfully")
}

// Feed lists published videos, newest first.
func (h *VideoHandler) Feed(c *gin.Context) {
	videos, err := h.service.Feed(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load videos")
		return
	}
	responses.JSON(c, http.StatusOK, videos, "videos fetched successfully")
}

// GetByID returns one video and counts the view.
func (h *VideoHandler) GetByID(c *gin.Context) {
	v, err := h.service.View(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load video")
		return
	}
	responses.JSON(c, http.StatusOK, v, "video fetched successfully")
}

// OwnerByVideoID returns the uploader's channel summary.
func (h *VideoHandler) OwnerByVideoID(c *gin.Context) {
	owner, err := h.service.OwnerOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to load video owner")
		return
	}
	responses.JSON(c, http.StatusOK, owner, "video owner fetched successfully")
}

// Search matches the query against title and description of published videos.
// An empty or missing query yields an empty result, not an error.
func (h *VideoHandler) Search(c *gin.Context) {
	videos, err := h.service.Search(c.Request.Context(), c.Query("query"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "search failed")
		return
	}
	responses.JSON(c, http.StatusOK, videos, "search results fetched successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
	var req requests.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid update payload",
			"0e1f2a3b-4c5d-4e6f-9a8b-5c6d7e8f9a0b")
		return
	}

	v, err := h.service.Update(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c), domain.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		responses.HandleError(c, err, "video update failed")
		return
	}
	responses.JSON(c, http.StatusOK, v, "video updated successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	v, err := h.service.TogglePublish(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "publish toggle failed")
		return
	}
	responses.JSON(c, http.StatusOK, v, "publish state toggled successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "video deletion failed")
		return
	}
	responses.JSON(c, http.StatusOK, nil, "video deleted successfully")
}
