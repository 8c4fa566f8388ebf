package entities

import "time"

// Subscription records a subscriber following a channel (another user).
type Subscription struct {
	ID           string `gorm:"type:varchar(40);primaryKey"`
	SubscriberID string `gorm:"type:varchar(40);not null;uniqueIndex:idx_sub_pair"`
	ChannelID    string `gorm:"type:varchar(40);not null;uniqueIndex:idx_sub_pair;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
