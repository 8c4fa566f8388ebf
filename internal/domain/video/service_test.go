package video_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/utils/platformerrors"
)

type MockRepository struct {
	CreateFunc         func(ctx context.Context, v *video.Video) error
	GetByIDFunc        func(ctx context.Context, id, viewerID string) (*video.Video, error)
	IncrementViewsFunc func(ctx context.Context, id string) error
	ListPublishedFunc  func(ctx context.Context, viewerID string) ([]video.Video, error)
	SearchFunc         func(ctx context.Context, query, viewerID string) ([]video.Video, error)
	ListByOwnerFunc    func(ctx context.Context, ownerID string, includeUnpublished bool) ([]video.Video, error)
	UpdateFunc         func(ctx context.Context, v *video.Video) error
	DeleteFunc         func(ctx context.Context, id string) error
	OwnerSummaryFunc   func(ctx context.Context, videoID string) (*video.Owner, error)
}

func (m *MockRepository) Create(ctx context.Context, v *video.Video) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id, viewerID string) (*video.Video, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, viewerID)
	}
	return &video.Video{ID: id}, nil
}

func (m *MockRepository) IncrementViews(ctx context.Context, id string) error {
	if m.IncrementViewsFunc != nil {
		return m.IncrementViewsFunc(ctx, id)
	}
	return nil
}

func (m *MockRepository) ListPublished(ctx context.Context, viewerID string) ([]video.Video, error) {
	if m.ListPublishedFunc != nil {
		return m.ListPublishedFunc(ctx, viewerID)
	}
	return nil, nil
}

func (m *MockRepository) Search(ctx context.Context, query, viewerID string) ([]video.Video, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, viewerID)
	}
	return nil, nil
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID string, includeUnpublished bool) ([]video.Video, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, includeUnpublished)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, v *video.Video) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, v)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRepository) OwnerSummary(ctx context.Context, videoID string) (*video.Owner, error) {
	if m.OwnerSummaryFunc != nil {
		return m.OwnerSummaryFunc(ctx, videoID)
	}
	return &video.Owner{}, nil
}

type MockStorage struct {
	UploadFunc func(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	DeleteFunc func(ctx context.Context, key string) error
	Deleted    []string
}

func (m *MockStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, body, size, contentType)
	}
	return "https://cdn.example.com/" + key, nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	m.Deleted = append(m.Deleted, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxVideoBytes: 1 << 20,
		MaxImageBytes: 1 << 20,
	}
}

func newService(repo *MockRepository, store *MockStorage) *video.Service {
	if repo == nil {
		repo = &MockRepository{}
	}
	if store == nil {
		store = &MockStorage{}
	}
	return video.NewService(testConfig(), repo, store, zerolog.Nop())
}

func TestSearchEmptyQueryReturnsEmptySlice(t *testing.T) {
	repo := &MockRepository{
		SearchFunc: func(ctx context.Context, query, viewerID string) ([]video.Video, error) {
			t.Fatal("repository must not be queried for an empty search")
			return nil, nil
		},
	}

	svc := newService(repo, nil)
	videos, err := svc.Search(context.Background(), "   ", "usr_1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if videos == nil || len(videos) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", videos)
	}
}

func TestUploadRejectsUnsupportedMIME(t *testing.T) {
	svc := newService(nil, nil)
	_, err := svc.Upload(context.Background(), video.UploadParams{
		Title:   "clip",
		OwnerID: "usr_1",
		Video: video.FileUpload{
			Reader: bytes.NewReader([]byte("plain text, not a video")),
			Size:   23,
		},
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRejectsOversizedVideo(t *testing.T) {
	svc := newService(nil, nil)
	_, err := svc.Upload(context.Background(), video.UploadParams{
		Title:   "clip",
		OwnerID: "usr_1",
		Video: video.FileUpload{
			Reader: bytes.NewReader([]byte{0}),
			Size:   2 << 20,
		},
	})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestViewIncrementsBeforeLoad(t *testing.T) {
	incremented := false
	repo := &MockRepository{
		IncrementViewsFunc: func(ctx context.Context, id string) error {
			incremented = true
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id, viewerID string) (*video.Video, error) {
			if !incremented {
				t.Fatal("view counter must be bumped before the read")
			}
			return &video.Video{ID: id, Views: 1}, nil
		},
	}

	svc := newService(repo, nil)
	v, err := svc.View(context.Background(), "vid_1", "")
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if v.Views != 1 {
		t.Fatalf("expected views 1, got %d", v.Views)
	}
}

func TestViewMissingVideoIsNotFound(t *testing.T) {
	repo := &MockRepository{
		IncrementViewsFunc: func(ctx context.Context, id string) error {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "video not found", nil, "test-uuid")
		},
	}

	svc := newService(repo, nil)
	_, err := svc.View(context.Background(), "vid_ghost", "")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTogglePublishFlipsFlag(t *testing.T) {
	state := true
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id, viewerID string) (*video.Video, error) {
			return &video.Video{ID: id, OwnerID: "usr_1", IsPublished: state}, nil
		},
		UpdateFunc: func(ctx context.Context, v *video.Video) error {
			state = v.IsPublished
			return nil
		},
	}

	svc := newService(repo, nil)
	v, err := svc.TogglePublish(context.Background(), "vid_1", "usr_1")
	if err != nil {
		t.Fatalf("toggle publish: %v", err)
	}
	if v.IsPublished || state {
		t.Fatal("expected published flag to flip to false")
	}

	v, err = svc.TogglePublish(context.Background(), "vid_1", "usr_1")
	if err != nil {
		t.Fatalf("toggle publish: %v", err)
	}
	if !v.IsPublished || !state {
		t.Fatal("expected published flag to flip back to true")
	}
}

func TestTogglePublishByNonOwnerIsForbidden(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id, viewerID string) (*video.Video, error) {
			return &video.Video{ID: id, OwnerID: "usr_owner"}, nil
		},
	}

	svc := newService(repo, nil)
	_, err := svc.TogglePublish(context.Background(), "vid_1", "usr_other")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteContinuesPastStorageFailure(t *testing.T) {
	rowDeleted := false
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id, viewerID string) (*video.Video, error) {
			return &video.Video{ID: id, OwnerID: "usr_1", VideoKey: "videos/vid_1.mp4", ThumbnailKey: "thumbnails/vid_1.jpg"}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			rowDeleted = true
			return nil
		},
	}
	store := &MockStorage{
		DeleteFunc: func(ctx context.Context, key string) error {
			return io.ErrUnexpectedEOF
		},
	}

	svc := newService(repo, store)
	if err := svc.Delete(context.Background(), "vid_1", "usr_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !rowDeleted {
		t.Fatal("row delete must proceed despite storage failures")
	}
	if len(store.Deleted) != 2 {
		t.Fatalf("expected both media keys attempted, got %v", store.Deleted)
	}
}
