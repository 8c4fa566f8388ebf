package like

import (
	"context"

	domain "tubetweet-server/internal/domain/like"
	"tubetweet-server/internal/utils/platformerrors"
)

// existenceChecker is the shape each per-entity repository already exposes.
type existenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// TargetChecker dispatches existence checks to the repository owning the
// target kind.
type TargetChecker struct {
	videos   existenceChecker
	comments existenceChecker
	tweets   existenceChecker
}

func NewTargetChecker(videos, comments, tweets existenceChecker) *TargetChecker {
	return &TargetChecker{videos: videos, comments: comments, tweets: tweets}
}

func (c *TargetChecker) Exists(ctx context.Context, target domain.Target) (bool, error) {
	switch target.Kind {
	case domain.TargetVideo:
		return c.videos.Exists(ctx, target.ID)
	case domain.TargetComment:
		return c.comments.Exists(ctx, target.ID)
	case domain.TargetTweet:
		return c.tweets.Exists(ctx, target.ID)
	default:
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeValidation,
			"unknown like target kind", nil, "5c7d9e1f-3a5c-4b7d-8e9f-1a3b5c7d9e20")
	}
}
