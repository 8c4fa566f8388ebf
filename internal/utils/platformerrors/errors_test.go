package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewErrorCarriesRequestID(t *testing.T) {
	//nolint:staticcheck // string key matches the middleware's injection
	ctx := context.WithValue(context.Background(), "requestID", "req-123")
	err := NewError(ctx, LayerDomain, ErrorTypeNotFound, "missing", nil, "uuid-1")

	if err.GetRequestID() != "req-123" {
		t.Fatalf("expected request id req-123, got %q", err.GetRequestID())
	}
	if err.GetUUID() != "uuid-1" {
		t.Fatalf("expected uuid-1, got %q", err.GetUUID())
	}
	if err.GetErrorType() != ErrorTypeNotFound {
		t.Fatalf("expected NOT_FOUND, got %q", err.GetErrorType())
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewError(context.Background(), LayerRepository, ErrorTypeDatabaseError, "query failed", cause, "uuid-2")

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
}

func TestIsErrorTypeThroughWrapping(t *testing.T) {
	inner := NewError(context.Background(), LayerRepository, ErrorTypeConflict, "duplicate", nil, "uuid-3")
	wrapped := fmt.Errorf("save user: %w", inner)

	if !IsErrorType(wrapped, ErrorTypeConflict) {
		t.Fatal("expected wrapped error to keep its type")
	}
	if IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Fatal("unexpected type match")
	}
	if IsErrorType(nil, ErrorTypeConflict) {
		t.Fatal("nil must never match")
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	cases := map[ErrorType]int{
		ErrorTypeNotFound:      http.StatusNotFound,
		ErrorTypeValidation:    http.StatusBadRequest,
		ErrorTypeConflict:      http.StatusConflict,
		ErrorTypeUnauthorized:  http.StatusUnauthorized,
		ErrorTypeForbidden:     http.StatusForbidden,
		ErrorTypeInternal:      http.StatusInternalServerError,
		ErrorTypeDatabaseError: http.StatusInternalServerError,
		ErrorTypeStorageError:  http.StatusInternalServerError,
	}
	for errorType, want := range cases {
		if got := ErrorTypeToHTTPStatus(errorType); got != want {
			t.Errorf("%s: expected %d, got %d", errorType, want, got)
		}
	}
}
