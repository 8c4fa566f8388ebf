package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/tweet"
	"tubetweet-server/internal/interfaces/httpserver/handlers"
	"tubetweet-server/internal/interfaces/httpserver/middlewares"
	"tubetweet-server/internal/interfaces/httpserver/responses"
)

// MockTweetRepository implements tweet.Repository for handler tests.
type MockTweetRepository struct {
	CreateFunc      func(ctx context.Context, t *tweet.Tweet) error
	GetByIDFunc     func(ctx context.Context, id string) (*tweet.Tweet, error)
	ListAllFunc     func(ctx context.Context, viewerID string) ([]tweet.Tweet, error)
	ListByOwnerFunc func(ctx context.Context, ownerID, viewerID string) ([]tweet.Tweet, error)
	UpdateFunc      func(ctx context.Context, t *tweet.Tweet) error
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *MockTweetRepository) Create(ctx context.Context, t *tweet.Tweet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *MockTweetRepository) GetByID(ctx context.Context, id string) (*tweet.Tweet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &tweet.Tweet{ID: id}, nil
}

func (m *MockTweetRepository) ListAll(ctx context.Context, viewerID string) ([]tweet.Tweet, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, viewerID)
	}
	return nil, nil
}

func (m *MockTweetRepository) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]tweet.Tweet, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, viewerID)
	}
	return nil, nil
}

func (m *MockTweetRepository) Update(ctx context.Context, t *tweet.Tweet) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *MockTweetRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type stubVerifier struct{ userID string }

func (s stubVerifier) VerifyAccess(token string) (string, error) { return s.userID, nil }

func newTweetRouter(repo *MockTweetRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := tweet.NewService(repo, zerolog.Nop())
	handler := handlers.NewTweetHandler(service, zerolog.Nop())

	router := gin.New()
	guard := middlewares.RequireAuth(stubVerifier{userID: "usr_1"})
	router.POST("/tweet/create-tweet", guard, handler.Create)
	router.PATCH("/tweet/update/:id", guard, handler.Update)
	router.GET("/tweet/getAll-tweet", handler.ListAll)
	return router
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func TestCreateTweetReturnsEnvelope(t *testing.T) {
	repo := &MockTweetRepository{}
	router := newTweetRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tweet/create-tweet",
		strings.NewReader(`{"content":"first post"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, authed(req))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var envelope responses.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if !envelope.Success || envelope.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}

	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", envelope.Data)
	}
	if data["content"] != "first post" || data["owner"] != "usr_1" {
		t.Fatalf("unexpected tweet payload: %v", data)
	}
}

func TestCreateTweetWithoutBodyIsBadRequest(t *testing.T) {
	router := newTweetRouter(&MockTweetRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tweet/create-tweet", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, authed(req))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var envelope responses.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Success {
		t.Fatal("failure envelope must have success=false")
	}
}

func TestUpdateTweetByNonOwnerIsForbidden(t *testing.T) {
	repo := &MockTweetRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*tweet.Tweet, error) {
			return &tweet.Tweet{ID: id, OwnerID: "usr_someone_else"}, nil
		},
	}
	router := newTweetRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/tweet/update/twt_1",
		strings.NewReader(`{"content":"edited"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, authed(req))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestListAllTweetsIsPublic(t *testing.T) {
	repo := &MockTweetRepository{
		ListAllFunc: func(ctx context.Context, viewerID string) ([]tweet.Tweet, error) {
			return []tweet.Tweet{{ID: "twt_1", Content: "hello"}}, nil
		},
	}
	router := newTweetRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tweet/getAll-tweet", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
