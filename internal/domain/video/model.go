// Package video provides the video domain: uploads, feed, search, views and
// owner-scoped mutations.
package video

import (
	"context"
	"io"
	"time"
)

// Owner is the lightweight channel summary attached to video views.
type Owner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullname"`
	AvatarURL string `json:"avatar"`
}

// Video is an uploaded video with derived engagement figures. LikeCount and
// IsLiked are computed relative to the requesting identity by the repository.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	VideoKey     string    `json:"-"`
	ThumbnailKey string    `json:"-"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	OwnerID      string    `json:"owner"`
	LikeCount    int64     `json:"likeCount"`
	IsLiked      bool      `json:"isLiked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FileUpload is an uploaded file stream. The reader must support seeking so
// content sniffing can rewind before the storage write.
type FileUpload struct {
	Reader io.ReadSeeker
	Size   int64
}

// UploadParams carries everything needed to publish a new video.
type UploadParams struct {
	Title       string
	Description string
	Duration    float64
	OwnerID     string
	Video       FileUpload
	Thumbnail   FileUpload
}

// UpdateParams carries the mutable video metadata.
type UpdateParams struct {
	Title       string
	Description string
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Create(ctx context.Context, v *Video) error
	GetByID(ctx context.Context, id, viewerID string) (*Video, error)
	IncrementViews(ctx context.Context, id string) error
	ListPublished(ctx context.Context, viewerID string) ([]Video, error)
	Search(ctx context.Context, query, viewerID string) ([]Video, error)
	ListByOwner(ctx context.Context, ownerID string, includeUnpublished bool) ([]Video, error)
	Update(ctx context.Context, v *Video) error
	// Delete removes the video row and its dependent likes, comments and
	// playlist entries. The steps are not transactional; see service.Delete.
	Delete(ctx context.Context, id string) error
	OwnerSummary(ctx context.Context, videoID string) (*Owner, error)
}

// Storage persists media objects and returns their public URLs.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
