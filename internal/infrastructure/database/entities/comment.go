package entities

import "time"

// Comment represents a comment on a video.
type Comment struct {
	ID        string `gorm:"type:varchar(40);primaryKey"`
	Content   string `gorm:"type:text;not null"`
	OwnerID   string `gorm:"type:varchar(40);not null;index"`
	VideoID   string `gorm:"type:varchar(40);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Comment) TableName() string {
	return "comments"
}
