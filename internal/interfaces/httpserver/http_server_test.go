package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
	"tubetweet-server/internal/infrastructure/auth"
	"tubetweet-server/internal/infrastructure/storage"
	"tubetweet-server/internal/interfaces/httpserver"
	"tubetweet-server/internal/interfaces/httpserver/handlers"
)

func testServer(t *testing.T) (*httpserver.HttpServer, *storage.LocalStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServiceName:      "tubetweet-api",
		HTTPPort:         8190,
		StorageBackend:   "local",
		LocalStoragePath: t.TempDir(),
		JWTSecret:        "test-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  240 * time.Hour,
	}

	store, err := storage.NewLocalStorage(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new local storage: %v", err)
	}

	server := httpserver.New(cfg, zerolog.Nop(), handlers.Services{}, store, auth.NewTokenManager(cfg))
	return server, store
}

func TestUploadedMediaURLIsRoutable(t *testing.T) {
	server, store := testServer(t)

	publicURL, err := store.Upload(context.Background(), "videos/vid_1.mp4",
		strings.NewReader("mp4data"), 7, "video/mp4")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	parsed, err := url.Parse(publicURL)
	if err != nil {
		t.Fatalf("parse public url: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, parsed.Path, nil)
	server.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for %s, got %d", parsed.Path, w.Code)
	}
	if w.Body.String() != "mp4data" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestPlaylistByIDRequiresAuth(t *testing.T) {
	server, _ := testServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/playlist/pl_1", nil)
	server.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous playlist fetch, got %d", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := testServer(t)

	for _, path := range []string{"/", "/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		server.Engine().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, w.Code)
		}
	}
}
