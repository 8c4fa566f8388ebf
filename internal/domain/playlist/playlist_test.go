package playlist_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/playlist"
	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/utils/platformerrors"
)

type MockRepository struct {
	CreateFunc      func(ctx context.Context, p *playlist.Playlist) error
	GetByIDFunc     func(ctx context.Context, id string) (*playlist.Playlist, error)
	ListByOwnerFunc func(ctx context.Context, ownerID string) ([]playlist.Playlist, error)
	UpdateFunc      func(ctx context.Context, p *playlist.Playlist) error
	DeleteFunc      func(ctx context.Context, id string) error
	AppendVideoFunc func(ctx context.Context, playlistID, videoID string) error
	RemoveVideoFunc func(ctx context.Context, playlistID, videoID string) error
	ListVideosFunc  func(ctx context.Context, playlistID, viewerID string) ([]video.Video, error)

	Appended []string
}

func (m *MockRepository) Create(ctx context.Context, p *playlist.Playlist) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*playlist.Playlist, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &playlist.Playlist{ID: id, OwnerID: "usr_owner"}, nil
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID string) ([]playlist.Playlist, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, p *playlist.Playlist) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRepository) AppendVideo(ctx context.Context, playlistID, videoID string) error {
	m.Appended = append(m.Appended, videoID)
	if m.AppendVideoFunc != nil {
		return m.AppendVideoFunc(ctx, playlistID, videoID)
	}
	return nil
}

func (m *MockRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	if m.RemoveVideoFunc != nil {
		return m.RemoveVideoFunc(ctx, playlistID, videoID)
	}
	return nil
}

func (m *MockRepository) ListVideos(ctx context.Context, playlistID, viewerID string) ([]video.Video, error) {
	if m.ListVideosFunc != nil {
		return m.ListVideosFunc(ctx, playlistID, viewerID)
	}
	return nil, nil
}

type allowAllVideos struct{}

func (allowAllVideos) Exists(ctx context.Context, videoID string) (bool, error) { return true, nil }

type denyAllVideos struct{}

func (denyAllVideos) Exists(ctx context.Context, videoID string) (bool, error) { return false, nil }

func TestCreateRequiresName(t *testing.T) {
	svc := playlist.NewService(&MockRepository{}, allowAllVideos{}, zerolog.Nop())
	_, err := svc.Create(context.Background(), "usr_1", playlist.Params{Name: "  "})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddVideoAllowsDuplicates(t *testing.T) {
	repo := &MockRepository{}
	svc := playlist.NewService(repo, allowAllVideos{}, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := svc.AddVideo(context.Background(), "pl_1", "vid_1", "usr_owner"); err != nil {
			t.Fatalf("add video: %v", err)
		}
	}
	if len(repo.Appended) != 2 {
		t.Fatalf("expected 2 membership rows, got %d", len(repo.Appended))
	}
}

func TestAddVideoByNonOwnerIsForbidden(t *testing.T) {
	repo := &MockRepository{}
	svc := playlist.NewService(repo, allowAllVideos{}, zerolog.Nop())

	_, err := svc.AddVideo(context.Background(), "pl_1", "vid_1", "usr_other")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.Appended) != 0 {
		t.Fatal("append must not be reached")
	}
}

func TestAddMissingVideoIsNotFound(t *testing.T) {
	svc := playlist.NewService(&MockRepository{}, denyAllVideos{}, zerolog.Nop())
	_, err := svc.AddVideo(context.Background(), "pl_1", "vid_ghost", "usr_owner")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVideosChecksPlaylistExistsFirst(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*playlist.Playlist, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound, "playlist not found", nil, "test-uuid")
		},
		ListVideosFunc: func(ctx context.Context, playlistID, viewerID string) ([]video.Video, error) {
			t.Fatal("videos must not be listed for a missing playlist")
			return nil, nil
		},
	}

	svc := playlist.NewService(repo, allowAllVideos{}, zerolog.Nop())
	_, err := svc.Videos(context.Background(), "pl_ghost", "")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
