package comment_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/comment"
	"tubetweet-server/internal/utils/platformerrors"
)

type MockRepository struct {
	CreateFunc      func(ctx context.Context, c *comment.Comment) error
	GetByIDFunc     func(ctx context.Context, id string) (*comment.Comment, error)
	ListByVideoFunc func(ctx context.Context, videoID string) ([]comment.Comment, error)
	UpdateFunc      func(ctx context.Context, c *comment.Comment) error
	DeleteFunc      func(ctx context.Context, id string) error

	Deleted []string
}

func (m *MockRepository) Create(ctx context.Context, c *comment.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*comment.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &comment.Comment{ID: id, OwnerID: "usr_owner"}, nil
}

func (m *MockRepository) ListByVideo(ctx context.Context, videoID string) ([]comment.Comment, error) {
	if m.ListByVideoFunc != nil {
		return m.ListByVideoFunc(ctx, videoID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, c *comment.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	m.Deleted = append(m.Deleted, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type videoChecker struct{ exists bool }

func (v videoChecker) Exists(ctx context.Context, videoID string) (bool, error) {
	return v.exists, nil
}

func TestAddTrimsContent(t *testing.T) {
	repo := &MockRepository{}
	svc := comment.NewService(repo, videoChecker{exists: true}, zerolog.Nop())

	c, err := svc.Add(context.Background(), "vid_1", "usr_1", "  nice video  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Content != "nice video" {
		t.Fatalf("expected trimmed content, got %q", c.Content)
	}
	if c.VideoID != "vid_1" || c.OwnerID != "usr_1" {
		t.Fatalf("unexpected comment: %+v", c)
	}
}

func TestAddEmptyContentIsValidation(t *testing.T) {
	svc := comment.NewService(&MockRepository{}, videoChecker{exists: true}, zerolog.Nop())
	_, err := svc.Add(context.Background(), "vid_1", "usr_1", "   ")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddToMissingVideoIsNotFound(t *testing.T) {
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, c *comment.Comment) error {
			t.Fatal("comment must not be stored for a missing video")
			return nil
		},
	}
	svc := comment.NewService(repo, videoChecker{exists: false}, zerolog.Nop())

	_, err := svc.Add(context.Background(), "vid_ghost", "usr_1", "hello")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateByNonOwnerIsForbidden(t *testing.T) {
	svc := comment.NewService(&MockRepository{}, videoChecker{exists: true}, zerolog.Nop())
	_, err := svc.Update(context.Background(), "cmt_1", "usr_other", "edited")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteByOwner(t *testing.T) {
	repo := &MockRepository{}
	svc := comment.NewService(repo, videoChecker{exists: true}, zerolog.Nop())

	if err := svc.Delete(context.Background(), "cmt_1", "usr_owner"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.Deleted) != 1 || repo.Deleted[0] != "cmt_1" {
		t.Fatalf("unexpected deletes: %v", repo.Deleted)
	}
}
