package entities

import "time"

// Like records a user liking exactly one target (video, comment or tweet).
// The composite unique index gives toggle semantics a hard guarantee: at most
// one row per (user, target kind, target id).
type Like struct {
	ID         string `gorm:"type:varchar(40);primaryKey"`
	UserID     string `gorm:"type:varchar(40);not null;uniqueIndex:idx_like_user_target"`
	TargetKind string `gorm:"type:varchar(16);not null;uniqueIndex:idx_like_user_target;index:idx_like_target"`
	TargetID   string `gorm:"type:varchar(40);not null;uniqueIndex:idx_like_user_target;index:idx_like_target"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Like) TableName() string {
	return "likes"
}
