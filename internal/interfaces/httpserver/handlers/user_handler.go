package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
	domain "tubetweet-server/internal/domain/user"
	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/requests"
	"tubetweet-server/internal/interfaces/httpserver/responses"
	"tubetweet-server/internal/utils/platformerrors"
)

var allowedAvatarMIMEs = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UserHandler exposes account, session and channel endpoints.
type UserHandler struct {
	cfg     *config.Config
	service *domain.Service
	images  video.Storage
	log     zerolog.Logger
}

func NewUserHandler(cfg *config.Config, service *domain.Service, images video.Storage, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		cfg:     cfg,
		service: service,
		images:  images,
		log:     log.With().Str("component", "user-handler").Logger(),
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid register payload",
			"a4c0e6b2-1d3f-4a5c-8b7d-9e0f1a2b3c4d")
		return
	}

	u, err := h.service.Register(c.Request.Context(), domain.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		responses.HandleError(c, err, "registration failed")
		return
	}
	responses.JSON(c, http.StatusCreated, u, "user registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid login payload",
			"b5d1f7c3-2e4a-4b6d-9c8e-0f1a2b3c4d5e")
		return
	}
	login := req.Username
	if login == "" {
		login = req.Email
	}
	if login == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "username or email is required",
			"c6e2a8d4-3f5b-4c7e-8d9f-1a2b3c4d5e6f")
		return
	}

	u, pair, err := h.service.Login(c.Request.Context(), login, req.Password)
	if err != nil {
		responses.HandleError(c, err, "login failed")
		return
	}

	h.setAuthCookies(c, pair)
	responses.JSON(c, http.StatusOK, gin.H{
		"user":         u,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		responses.HandleError(c, err, "logout failed")
		return
	}
	h.clearAuthCookies(c)
	responses.JSON(c, http.StatusOK, nil, "logged out successfully")
}

// RefreshToken rotates the session pair. The refresh token is read from the
// cookie, falling back to a JSON body field.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(middlewares.RefreshTokenCookie)
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			token = body.RefreshToken
		}
	}
	if token == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "missing refresh token",
			"d7f3b9e5-4a6c-4d8f-9e0a-2b3c4d5e6f7a")
		return
	}

	u, pair, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		responses.HandleError(c, err, "token refresh failed")
		return
	}

	h.setAuthCookies(c, pair)
	responses.JSON(c, http.StatusOK, gin.H{
		"user":         u,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "session refreshed successfully")
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load current user")
		return
	}
	responses.JSON(c, http.StatusOK, u, "current user fetched successfully")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req requests.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid change-password payload",
			"e8a4c0f6-5b7d-4e9a-8f1b-3c4d5e6f7a8b")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), middlewares.CurrentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		responses.HandleError(c, err, "password change failed")
		return
	}
	responses.JSON(c, http.StatusOK, nil, "password changed successfully")
}

func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req requests.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid update-account payload",
			"f9b5d1a7-6c8e-4f0b-9a2c-4d5e6f7a8b9c")
		return
	}

	u, err := h.service.UpdateAccount(c.Request.Context(), middlewares.CurrentUserID(c), domain.UpdateParams{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		responses.HandleError(c, err, "account update failed")
		return
	}
	responses.JSON(c, http.StatusOK, u, "account updated successfully")
}

// UpdateAvatar replaces the account avatar image.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", "avatars")
}

// UpdateCoverImage replaces the account cover image.
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", "covers")
}

func (h *UserHandler) Channel(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.Param("username")))
	profile, err := h.service.ChannelProfile(c.Request.Context(), username, middlewares.CurrentUserID(c))
	if err != nil {
		responses.HandleError(c, err, "failed to load channel")
		return
	}
	responses.JSON(c, http.StatusOK, profile, "channel fetched successfully")
}

func (h *UserHandler) updateImage(c *gin.Context, field, keyPrefix string) {
	userID := middlewares.CurrentUserID(c)

	file, header, err := c.Request.FormFile(field)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, field+" file is required",
			"0a1b2c3d-4e5f-4a6b-8c7d-5e6f7a8b9c0d")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxImageBytes {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, field+" exceeds the size limit",
			"1b2c3d4e-5f6a-4b7c-9d8e-6f7a8b9c0d1e")
		return
	}

	contentType, ext, err := h.sniffImage(c.Request.Context(), file)
	if err != nil {
		responses.HandleError(c, err, "unsupported image type")
		return
	}

	key := fmt.Sprintf("%s/%s.%s", keyPrefix, userID, ext)
	url, err := h.images.Upload(c.Request.Context(), key, file, header.Size, contentType)
	if err != nil {
		responses.HandleError(c, err, "image upload failed")
		return
	}

	var u *domain.User
	if field == "avatar" {
		u, err = h.service.UpdateImages(c.Request.Context(), userID, url, key, "", "")
	} else {
		u, err = h.service.UpdateImages(c.Request.Context(), userID, "", "", url, key)
	}
	if err != nil {
		responses.HandleError(c, err, "image update failed")
		return
	}
	responses.JSON(c, http.StatusOK, u, field+" updated successfully")
}

func (h *UserHandler) sniffImage(ctx context.Context, file multipart.File) (contentType, ext string, err error) {
	mime, err := mimetype.DetectReader(file)
	if err != nil {
		return "", "", platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"failed to detect image type", err, "2c3d4e5f-6a7b-4c8d-9e0f-7a8b9c0d1e2f")
	}
	if _, err := file.Seek(0, 0); err != nil {
		return "", "", platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeInternal,
			"failed to rewind image stream", err, "3d4e5f6a-7b8c-4d9e-8f1a-8b9c0d1e2f3a")
	}
	ext, ok := allowedAvatarMIMEs[mime.String()]
	if !ok {
		return "", "", platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"image must be jpeg, png or webp", nil, "4e5f6a7b-8c9d-4e0f-9a2b-9c0d1e2f3a4b")
	}
	return mime.String(), ext, nil
}

func (h *UserHandler) setAuthCookies(c *gin.Context, pair domain.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AccessTokenCookie, pair.AccessToken,
		int(h.cfg.AccessTokenTTL.Seconds()), "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(middlewares.RefreshTokenCookie, pair.RefreshToken,
		int(h.cfg.RefreshTokenTTL.Seconds()), "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AccessTokenCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(middlewares.RefreshTokenCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
}
