package entities

import "time"

// Tweet represents a short text post.
type Tweet struct {
	ID        string `gorm:"type:varchar(40);primaryKey"`
	Content   string `gorm:"type:text;not null"`
	OwnerID   string `gorm:"type:varchar(40);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Tweet) TableName() string {
	return "tweets"
}
