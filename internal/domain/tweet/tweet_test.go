package tweet_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/tweet"
	"tubetweet-server/internal/utils/platformerrors"
)

type MockRepository struct {
	CreateFunc      func(ctx context.Context, t *tweet.Tweet) error
	GetByIDFunc     func(ctx context.Context, id string) (*tweet.Tweet, error)
	ListAllFunc     func(ctx context.Context, viewerID string) ([]tweet.Tweet, error)
	ListByOwnerFunc func(ctx context.Context, ownerID, viewerID string) ([]tweet.Tweet, error)
	UpdateFunc      func(ctx context.Context, t *tweet.Tweet) error
	DeleteFunc      func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, t *tweet.Tweet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*tweet.Tweet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &tweet.Tweet{ID: id}, nil
}

func (m *MockRepository) ListAll(ctx context.Context, viewerID string) ([]tweet.Tweet, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, viewerID)
	}
	return nil, nil
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]tweet.Tweet, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, viewerID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, t *tweet.Tweet) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestCreateTrimsContent(t *testing.T) {
	var created *tweet.Tweet
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, tw *tweet.Tweet) error {
			created = tw
			return nil
		},
	}

	svc := tweet.NewService(repo, zerolog.Nop())
	tw, err := svc.Create(context.Background(), "usr_1", "  hello world  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tw.Content != "hello world" {
		t.Fatalf("expected trimmed content, got %q", tw.Content)
	}
	if created.OwnerID != "usr_1" {
		t.Fatalf("expected owner usr_1, got %q", created.OwnerID)
	}
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	svc := tweet.NewService(&MockRepository{}, zerolog.Nop())
	_, err := svc.Create(context.Background(), "usr_1", "   ")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*tweet.Tweet, error) {
			return &tweet.Tweet{ID: id, OwnerID: "usr_owner"}, nil
		},
	}

	svc := tweet.NewService(repo, zerolog.Nop())
	_, err := svc.Update(context.Background(), "twt_1", "usr_other", "edited")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	deleted := false
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*tweet.Tweet, error) {
			return &tweet.Tweet{ID: id, OwnerID: "usr_owner"}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}

	svc := tweet.NewService(repo, zerolog.Nop())
	err := svc.Delete(context.Background(), "twt_1", "usr_other")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if deleted {
		t.Fatal("delete must not reach the repository")
	}
}

func TestDeleteByOwnerSucceeds(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*tweet.Tweet, error) {
			return &tweet.Tweet{ID: id, OwnerID: "usr_owner"}, nil
		},
	}

	svc := tweet.NewService(repo, zerolog.Nop())
	if err := svc.Delete(context.Background(), "twt_1", "usr_owner"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
