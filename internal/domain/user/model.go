// Package user provides the account domain: registration, sessions and
// channel profiles.
package user

import (
	"context"
	"time"
)

// User is a registered account with secret fields stripped. Password hashes and
// stored refresh tokens never leave the repository except through the dedicated
// credential methods.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullname"`
	AvatarURL string    `json:"avatar"`
	CoverURL  string    `json:"coverImage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChannelProfile is a public channel view with subscription figures attached
// relative to the requesting identity.
type ChannelProfile struct {
	User
	SubscriberCount int64 `json:"subscriberCount"`
	IsSubscribed    bool  `json:"isSubscribed"`
}

// TokenPair is an access/refresh pair issued on login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterParams carries the fields required to create an account.
type RegisterParams struct {
	Username string
	Email    string
	FullName string
	Password string
}

// UpdateParams carries the mutable account fields.
type UpdateParams struct {
	FullName string
	Email    string
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Create(ctx context.Context, u *User, passwordHash string) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindByLogin resolves a username or email and returns the stored password hash.
	FindByLogin(ctx context.Context, login string) (*User, string, error)
	UsernameOrEmailTaken(ctx context.Context, username, email, excludeID string) (bool, error)
	UpdateProfile(ctx context.Context, u *User) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetRefreshToken(ctx context.Context, id, token string) error
	RefreshTokenFor(ctx context.Context, id string) (string, error)
	UpdateImages(ctx context.Context, id, avatarURL, avatarKey, coverURL, coverKey string) error
}

// TokenIssuer mints and verifies session token pairs.
type TokenIssuer interface {
	MintPair(userID string) (access string, refresh string, err error)
	VerifyRefresh(token string) (string, error)
}

// SubscriptionReader exposes the subscription figures needed for channel profiles.
type SubscriptionReader interface {
	CountForChannel(ctx context.Context, channelID string) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
}
