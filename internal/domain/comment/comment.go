// Package comment provides video comments.
package comment

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/utils/idgen"
	"tubetweet-server/internal/utils/platformerrors"
)

// Owner is the author summary attached to comment views.
type Owner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// Comment is a comment on a video.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"owner"`
	VideoID   string    `json:"video"`
	Owner     *Owner    `json:"ownerDetails,omitempty"`
	LikeCount int64     `json:"likeCount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VideoChecker verifies the target video exists before a comment is attached.
type VideoChecker interface {
	Exists(ctx context.Context, videoID string) (bool, error)
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByVideo(ctx context.Context, videoID string) ([]Comment, error)
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id string) error
}

// Service orchestrates comment CRUD with owner authorization.
type Service struct {
	repo   Repository
	videos VideoChecker
	log    zerolog.Logger
}

func NewService(repo Repository, videos VideoChecker, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		videos: videos,
		log:    log.With().Str("component", "comment-service").Logger(),
	}
}

// Add attaches a comment to a video.
func (s *Service) Add(ctx context.Context, videoID, ownerID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"comment content is required", nil, "8620f9dd-51c6-4f1f-a8db-cb01adbc0a8c")
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"video not found", nil, "2368cb40-d9c9-4fe7-b297-ba2917067c4e")
	}

	c := &Comment{
		ID:      idgen.New(idgen.PrefixComment),
		Content: content,
		OwnerID: ownerID,
		VideoID: videoID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListByVideo returns a video's comments, newest first.
func (s *Service) ListByVideo(ctx context.Context, videoID string) ([]Comment, error) {
	return s.repo.ListByVideo(ctx, videoID)
}

// Update rewrites a comment. Only the owner may update.
func (s *Service) Update(ctx context.Context, id, requesterID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"comment content is required", nil, "cb69dbe6-a875-43b1-ab8a-022717fae66c")
	}

	c, err := s.authorizeOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	c.Content = content
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a comment. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.authorizeOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorizeOwner(ctx context.Context, id, requesterID string) (*Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != requesterID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"only the owner may modify this comment", nil, "4b6620bb-f1ac-4ba2-b062-fda9f4cb3a0e")
	}
	return c, nil
}
