package like_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/like"
	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/utils/platformerrors"
)

// memoryRepository keeps likes in a map, enough to exercise toggle semantics.
type memoryRepository struct {
	likes map[string]*like.Like
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{likes: make(map[string]*like.Like)}
}

func (r *memoryRepository) key(userID string, target like.Target) string {
	return userID + "|" + string(target.Kind) + "|" + target.ID
}

func (r *memoryRepository) Find(ctx context.Context, userID string, target like.Target) (*like.Like, error) {
	return r.likes[r.key(userID, target)], nil
}

func (r *memoryRepository) Create(ctx context.Context, l *like.Like) error {
	r.likes[r.key(l.UserID, l.Target)] = l
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	for key, l := range r.likes {
		if l.ID == id {
			delete(r.likes, key)
			return nil
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
		"like not found", nil, "test-uuid")
}

func (r *memoryRepository) CountForTarget(ctx context.Context, target like.Target) (int64, error) {
	var count int64
	for _, l := range r.likes {
		if l.Target == target {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) ListLikedVideos(ctx context.Context, userID string) ([]video.Video, error) {
	return nil, nil
}

type allowAllTargets struct{}

func (allowAllTargets) Exists(ctx context.Context, target like.Target) (bool, error) {
	return true, nil
}

type denyAllTargets struct{}

func (denyAllTargets) Exists(ctx context.Context, target like.Target) (bool, error) {
	return false, nil
}

func TestToggleIsAnInvolution(t *testing.T) {
	repo := newMemoryRepository()
	svc := like.NewService(repo, allowAllTargets{}, zerolog.Nop())
	target := like.Target{Kind: like.TargetVideo, ID: "vid_1"}

	liked, err := svc.Toggle(context.Background(), "usr_1", target)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !liked {
		t.Fatal("first toggle must like")
	}

	count, _ := svc.Count(context.Background(), target)
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	liked, err = svc.Toggle(context.Background(), "usr_1", target)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if liked {
		t.Fatal("second toggle must unlike")
	}

	count, _ = svc.Count(context.Background(), target)
	if count != 0 {
		t.Fatalf("expected count 0 after involution, got %d", count)
	}
}

func TestToggleIsPerUserAndPerTarget(t *testing.T) {
	repo := newMemoryRepository()
	svc := like.NewService(repo, allowAllTargets{}, zerolog.Nop())
	videoTarget := like.Target{Kind: like.TargetVideo, ID: "vid_1"}
	tweetTarget := like.Target{Kind: like.TargetTweet, ID: "twt_1"}

	if _, err := svc.Toggle(context.Background(), "usr_1", videoTarget); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "usr_2", videoTarget); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "usr_1", tweetTarget); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	videoCount, _ := svc.Count(context.Background(), videoTarget)
	tweetCount, _ := svc.Count(context.Background(), tweetTarget)
	if videoCount != 2 || tweetCount != 1 {
		t.Fatalf("expected counts 2/1, got %d/%d", videoCount, tweetCount)
	}
}

func TestToggleRejectsMissingTarget(t *testing.T) {
	svc := like.NewService(newMemoryRepository(), denyAllTargets{}, zerolog.Nop())
	_, err := svc.Toggle(context.Background(), "usr_1", like.Target{Kind: like.TargetComment, ID: "cmt_missing"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleRejectsInvalidKind(t *testing.T) {
	svc := like.NewService(newMemoryRepository(), allowAllTargets{}, zerolog.Nop())
	_, err := svc.Toggle(context.Background(), "usr_1", like.Target{Kind: "playlist", ID: "pl_1"})
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
