// Package requests holds the JSON request bodies accepted by the API.
package requests

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	FullName string `json:"fullname"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest authenticates by username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdateAccountRequest mutates profile fields. Empty fields are left as is.
type UpdateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

// UpdateVideoRequest mutates video metadata.
type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TweetRequest carries tweet content for create and update.
type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentRequest carries comment content for create and update.
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PlaylistRequest carries playlist fields for create and update.
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
