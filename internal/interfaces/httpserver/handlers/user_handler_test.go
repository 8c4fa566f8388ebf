package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
	"tubetweet-server/internal/domain/user"
	"tubetweet-server/internal/interfaces/httpserver/handlers"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
)

type userRepoStub struct {
	UpdateImagesFunc func(ctx context.Context, id, avatarURL, avatarKey, coverURL, coverKey string) error
}

func (s *userRepoStub) Create(ctx context.Context, u *user.User, passwordHash string) error {
	return nil
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*user.User, error) {
	return &user.User{ID: id}, nil
}

func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return &user.User{Username: username}, nil
}

func (s *userRepoStub) FindByLogin(ctx context.Context, login string) (*user.User, string, error) {
	return &user.User{}, "", nil
}

func (s *userRepoStub) UsernameOrEmailTaken(ctx context.Context, username, email, excludeID string) (bool, error) {
	return false, nil
}

func (s *userRepoStub) UpdateProfile(ctx context.Context, u *user.User) error { return nil }

func (s *userRepoStub) UpdatePasswordHash(ctx context.Context, id, hash string) error { return nil }

func (s *userRepoStub) SetRefreshToken(ctx context.Context, id, token string) error { return nil }

func (s *userRepoStub) RefreshTokenFor(ctx context.Context, id string) (string, error) {
	return "", nil
}

func (s *userRepoStub) UpdateImages(ctx context.Context, id, avatarURL, avatarKey, coverURL, coverKey string) error {
	if s.UpdateImagesFunc != nil {
		return s.UpdateImagesFunc(ctx, id, avatarURL, avatarKey, coverURL, coverKey)
	}
	return nil
}

type tokenStub struct{}

func (tokenStub) MintPair(userID string) (access string, refresh string, err error) {
	return "access", "refresh", nil
}

func (tokenStub) VerifyRefresh(token string) (string, error) { return "usr_1", nil }

type subsStub struct{}

func (subsStub) CountForChannel(ctx context.Context, channelID string) (int64, error) { return 0, nil }

func (subsStub) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	return false, nil
}

type captureStorage struct {
	key         string
	contentType string
}

func (s *captureStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	s.key = key
	s.contentType = contentType
	return "http://localhost:8190/media/" + key, nil
}

func (s *captureStorage) Delete(ctx context.Context, key string) error { return nil }

// Smallest byte prefix that sniffs as image/jpeg.
var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newAvatarRouter(store *captureStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := user.NewService(&userRepoStub{}, tokenStub{}, subsStub{}, zerolog.Nop())
	cfg := &config.Config{MaxImageBytes: 1 << 20}
	handler := handlers.NewUserHandler(cfg, svc, store, zerolog.Nop())

	router := gin.New()
	router.PATCH("/users/avatar",
		middlewares.RequireAuth(stubVerifier{userID: "usr_1"}), handler.UpdateAvatar)
	return router
}

func TestUpdateAvatarUploadsSniffedContentType(t *testing.T) {
	store := &captureStorage{}
	router := newAvatarRouter(store)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("avatar", "me.jpeg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(jpegBytes); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/avatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, authed(req))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.contentType != "image/jpeg" {
		t.Fatalf("expected image/jpeg content type, got %q", store.contentType)
	}
	if store.key != "avatars/usr_1.jpg" {
		t.Fatalf("unexpected storage key %q", store.key)
	}
}

func TestUpdateAvatarRejectsNonImage(t *testing.T) {
	store := &captureStorage{}
	router := newAvatarRouter(store)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("avatar", "notes.txt")
	part.Write([]byte("just text"))
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/avatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, authed(req))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if store.contentType != "" {
		t.Fatal("storage must not be reached for an unsupported type")
	}
}
