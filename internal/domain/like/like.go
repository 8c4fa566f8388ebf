// Package like provides the polymorphic like domain. A like points at exactly
// one target, expressed as a tagged (kind, id) pair rather than optional
// references, so the "single target" rule is enforced by construction.
package like

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/infrastructure/metrics"
	"tubetweet-server/internal/utils/idgen"
	"tubetweet-server/internal/utils/platformerrors"
)

// TargetKind discriminates what a like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// Valid reports whether the kind is one of the known discriminants.
func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// Target identifies the single object a like points at.
type Target struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

// Like is a user's like of one target.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"likedBy"`
	Target    Target    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Find(ctx context.Context, userID string, target Target) (*Like, error)
	Create(ctx context.Context, l *Like) error
	Delete(ctx context.Context, id string) error
	CountForTarget(ctx context.Context, target Target) (int64, error)
	ListLikedVideos(ctx context.Context, userID string) ([]video.Video, error)
}

// TargetChecker verifies a like target exists before a like is recorded.
type TargetChecker interface {
	Exists(ctx context.Context, target Target) (bool, error)
}

// Service implements toggle semantics over likes.
type Service struct {
	repo    Repository
	targets TargetChecker
	log     zerolog.Logger
}

func NewService(repo Repository, targets TargetChecker, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		targets: targets,
		log:     log.With().Str("component", "like-service").Logger(),
	}
}

// Toggle flips the like state for (user, target). It returns true when the
// toggle resulted in a like, false when it removed one. Toggling twice is an
// involution back to the original state.
func (s *Service) Toggle(ctx context.Context, userID string, target Target) (bool, error) {
	if !target.Kind.Valid() || target.ID == "" {
		return false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"like target is invalid", nil, "061ea2bb-a3e0-480b-87f0-deccc79f705d")
	}

	exists, err := s.targets.Exists(ctx, target)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			string(target.Kind)+" not found", nil, "b4364275-6171-4cb1-9930-0835632cb562")
	}

	existing, err := s.repo.Find(ctx, userID, target)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		metrics.RecordToggle("like", "off")
		return false, nil
	}

	l := &Like{
		ID:     idgen.New(idgen.PrefixLike),
		UserID: userID,
		Target: target,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return false, err
	}
	metrics.RecordToggle("like", "on")
	return true, nil
}

// Count returns the like count for a target.
func (s *Service) Count(ctx context.Context, target Target) (int64, error) {
	return s.repo.CountForTarget(ctx, target)
}

// LikedVideos lists the videos a user has liked.
func (s *Service) LikedVideos(ctx context.Context, userID string) ([]video.Video, error) {
	return s.repo.ListLikedVideos(ctx, userID)
}
