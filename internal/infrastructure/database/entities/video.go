package entities

import "time"

// Video represents an uploaded video and its stored media objects.
type Video struct {
	ID           string `gorm:"type:varchar(40);primaryKey"`
	Title        string `gorm:"type:varchar(255);not null;index"`
	Description  string `gorm:"type:text"`
	VideoURL     string `gorm:"type:varchar(512);not null"`
	VideoKey     string `gorm:"type:varchar(255);not null"`
	ThumbnailURL string `gorm:"type:varchar(512)"`
	ThumbnailKey string `gorm:"type:varchar(255)"`
	Duration     float64
	Views        int64  `gorm:"not null;default:0"`
	IsPublished  bool   `gorm:"not null;default:true;index"`
	OwnerID      string `gorm:"type:varchar(40);not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Video) TableName() string {
	return "videos"
}
