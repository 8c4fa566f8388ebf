// Package tweet provides the micro-blogging domain.
package tweet

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/utils/idgen"
	"tubetweet-server/internal/utils/platformerrors"
)

// Owner is the author summary attached to tweet views.
type Owner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// Tweet is a short text post with derived engagement figures.
type Tweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"owner"`
	Owner     *Owner    `json:"ownerDetails,omitempty"`
	LikeCount int64     `json:"likeCount"`
	IsLiked   bool      `json:"isLiked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Create(ctx context.Context, t *Tweet) error
	GetByID(ctx context.Context, id string) (*Tweet, error)
	ListAll(ctx context.Context, viewerID string) ([]Tweet, error)
	ListByOwner(ctx context.Context, ownerID, viewerID string) ([]Tweet, error)
	Update(ctx context.Context, t *Tweet) error
	Delete(ctx context.Context, id string) error
}

// Service orchestrates tweet CRUD with owner authorization.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "tweet-service").Logger(),
	}
}

// Create posts a new tweet. Content must be non-empty.
func (s *Service) Create(ctx context.Context, ownerID, content string) (*Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"tweet content is required", nil, "5032b578-1e8a-4724-8078-f201a547c9fe")
	}

	t := &Tweet{
		ID:      idgen.New(idgen.PrefixTweet),
		Content: content,
		OwnerID: ownerID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListAll returns every tweet, newest first.
func (s *Service) ListAll(ctx context.Context, viewerID string) ([]Tweet, error) {
	return s.repo.ListAll(ctx, viewerID)
}

// ListByUser returns one user's tweets, newest first.
func (s *Service) ListByUser(ctx context.Context, ownerID, viewerID string) ([]Tweet, error) {
	return s.repo.ListByOwner(ctx, ownerID, viewerID)
}

// Update rewrites a tweet's content. Only the owner may update.
func (s *Service) Update(ctx context.Context, id, requesterID, content string) (*Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"tweet content is required", nil, "37379fa1-e9e1-4c9c-839a-4c8d97d11f92")
	}

	t, err := s.authorizeOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	t.Content = content
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a tweet. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.authorizeOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) authorizeOwner(ctx context.Context, id, requesterID string) (*Tweet, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != requesterID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"only the owner may modify this tweet", nil, "cd4e7a87-7b37-4615-b2df-2e2c8daba5f2")
	}
	return t, nil
}
