package entities

import "time"

// Playlist represents a named, ordered collection of videos.
type Playlist struct {
	ID          string `gorm:"type:varchar(40);primaryKey"`
	Name        string `gorm:"type:varchar(128);not null"`
	Description string `gorm:"type:text"`
	OwnerID     string `gorm:"type:varchar(40);not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo is a membership row. Duplicates of the same video inside one
// playlist are permitted, so the row has its own surrogate key and an explicit
// position for ordering.
type PlaylistVideo struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	PlaylistID string `gorm:"type:varchar(40);not null;index"`
	VideoID    string `gorm:"type:varchar(40);not null;index"`
	Position   int    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
