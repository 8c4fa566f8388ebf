// Package subscription provides the channel follow domain with toggle semantics.
package subscription

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/infrastructure/metrics"
	"tubetweet-server/internal/utils/idgen"
	"tubetweet-server/internal/utils/platformerrors"
)

// Channel is the user summary returned by subscriber/subscribed listings.
type Channel struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullname"`
	AvatarURL string `json:"avatar"`
}

// Subscription records a subscriber following a channel.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber"`
	ChannelID    string    `json:"channel"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Find(ctx context.Context, subscriberID, channelID string) (*Subscription, error)
	Create(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id string) error
	CountForChannel(ctx context.Context, channelID string) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]Channel, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) ([]Channel, error)
}

// ChannelChecker verifies the channel user exists.
type ChannelChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Service implements toggle semantics over subscriptions.
type Service struct {
	repo     Repository
	channels ChannelChecker
	log      zerolog.Logger
}

func NewService(repo Repository, channels ChannelChecker, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		channels: channels,
		log:      log.With().Str("component", "subscription-service").Logger(),
	}
}

// Toggle flips the subscription state for (subscriber, channel). It returns
// true when the toggle resulted in a subscription, false when it removed one.
func (s *Service) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	if subscriberID == channelID {
		return false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"cannot subscribe to your own channel", nil, "2fa4eb74-01da-4d20-be9e-5689b88e2456")
	}

	exists, err := s.channels.Exists(ctx, channelID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"channel not found", nil, "dda2ac61-bd74-432e-b98d-d14088ab7c55")
	}

	existing, err := s.repo.Find(ctx, subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		metrics.RecordToggle("subscription", "off")
		return false, nil
	}

	sub := &Subscription{
		ID:           idgen.New(idgen.PrefixSubscription),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return false, err
	}
	metrics.RecordToggle("subscription", "on")
	return true, nil
}

// Subscribers lists the users following a channel.
func (s *Service) Subscribers(ctx context.Context, channelID string) ([]Channel, error) {
	return s.repo.ListSubscribers(ctx, channelID)
}

// SubscribedChannels lists the channels a user follows.
func (s *Service) SubscribedChannels(ctx context.Context, subscriberID string) ([]Channel, error) {
	return s.repo.ListSubscribedChannels(ctx, subscriberID)
}
