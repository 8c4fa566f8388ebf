package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tubetweet-server/internal/interfaces/httpserver/middlewares"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) VerifyAccess(token string) (string, error) {
	return s.userID, s.err
}

func newRouter(verifier middlewares.AccessVerifier, optional bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	guard := middlewares.RequireAuth(verifier)
	if optional {
		guard = middlewares.OptionalAuth(verifier)
	}
	router.GET("/protected", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": middlewares.CurrentUserID(c)})
	})
	return router
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	router := newRouter(stubVerifier{userID: "usr_1"}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	router := newRouter(stubVerifier{err: errors.New("bad token")}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.AccessTokenCookie, Value: "garbage"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthAcceptsCookie(t *testing.T) {
	router := newRouter(stubVerifier{userID: "usr_1"}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.AccessTokenCookie, Value: "valid"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAuthAcceptsBearerHeader(t *testing.T) {
	router := newRouter(stubVerifier{userID: "usr_1"}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	router := newRouter(stubVerifier{err: errors.New("no token")}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous optional auth, got %d", w.Code)
	}
}
