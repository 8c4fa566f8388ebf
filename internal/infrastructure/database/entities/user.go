package entities

import "time"

// User represents a registered account.
type User struct {
	ID           string `gorm:"type:varchar(40);primaryKey"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string `gorm:"type:varchar(128)"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	AvatarURL    string `gorm:"type:varchar(512)"`
	AvatarKey    string `gorm:"type:varchar(255)"`
	CoverURL     string `gorm:"type:varchar(512)"`
	CoverKey     string `gorm:"type:varchar(255)"`
	RefreshToken string `gorm:"type:varchar(1024)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
