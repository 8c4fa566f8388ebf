package subscription

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/subscription"
	"tubetweet-server/internal/infrastructure/database/entities"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository handles subscription persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the subscription for (subscriber, channel) or nil when none
// exists.
func (r *Repository) Find(ctx context.Context, subscriberID, channelID string) (*domain.Subscription, error) {
	var entity entities.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find subscription", err, "5c7d9e1f-3a5d-4b7d-8e9f-1a3b5c7d9f00")
	}
	sub := mapEntity(entity)
	return &sub, nil
}

func (r *Repository) Create(ctx context.Context, sub *domain.Subscription) error {
	entity := entities.Subscription{
		ID:           sub.ID,
		SubscriberID: sub.SubscriberID,
		ChannelID:    sub.ChannelID,
	}
	err := r.db.WithContext(ctx).Create(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				"already subscribed", err, "7d9e1f3a-5c7e-4c9e-8f1a-3b5c7d9e1f20")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create subscription", err, "9e1f3a5c-7d9f-4e1f-8a3b-5c7d9e1f3a40")
	}
	sub.CreatedAt = entity.CreatedAt
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Subscription{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete subscription", res.Error, "1f3a5c7d-9e20-4f3a-8b5c-7d9e1f3a5c60")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"subscription not found", nil, "3a5c7d9e-1f3c-4a5c-8d7e-9f1a3b5c7d80")
	}
	return nil
}

func (r *Repository) CountForChannel(ctx context.Context, channelID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Subscription{}).
		Where("channel_id = ?", channelID).Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count subscribers", err, "5c7d9e1f-3a5e-4b7d-8e9f-1a3b5c7d9fa0")
	}
	return count, nil
}

func (r *Repository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to check subscription", err, "7d9e1f3a-5c7f-4d9e-8f1a-3b5c7d9e1fc0")
	}
	return count > 0, nil
}

// ListSubscribers returns the users following a channel, newest first.
func (r *Repository) ListSubscribers(ctx context.Context, channelID string) ([]domain.Channel, error) {
	return r.listUsers(ctx,
		"JOIN subscriptions ON subscriptions.subscriber_id = users.id",
		"subscriptions.channel_id = ?", channelID,
		"failed to list subscribers", "9e1f3a5c-7da0-4f1f-8a3b-5c7d9e1f3ae0")
}

// ListSubscribedChannels returns the channels a user follows, newest first.
func (r *Repository) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]domain.Channel, error) {
	return r.listUsers(ctx,
		"JOIN subscriptions ON subscriptions.channel_id = users.id",
		"subscriptions.subscriber_id = ?", subscriberID,
		"failed to list subscribed channels", "1f3a5c7d-9e21-4a3a-8b5c-7d9e1f3a5d00")
}

func (r *Repository) listUsers(ctx context.Context, join, where string, arg any, msg, uuid string) ([]domain.Channel, error) {
	var rows []struct {
		ID        string
		Username  string
		FullName  string
		AvatarURL string
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.full_name, users.avatar_url").
		Joins(join).
		Where(where, arg).
		Order("subscriptions.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			msg, err, uuid)
	}

	channels := make([]domain.Channel, 0, len(rows))
	for _, row := range rows {
		channels = append(channels, domain.Channel{
			ID:        row.ID,
			Username:  row.Username,
			FullName:  row.FullName,
			AvatarURL: row.AvatarURL,
		})
	}
	return channels, nil
}

func mapEntity(entity entities.Subscription) domain.Subscription {
	return domain.Subscription{
		ID:           entity.ID,
		SubscriberID: entity.SubscriberID,
		ChannelID:    entity.ChannelID,
		CreatedAt:    entity.CreatedAt,
	}
}
