package video

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
	"tubetweet-server/internal/infrastructure/metrics"
	"tubetweet-server/internal/utils/idgen"
	"tubetweet-server/internal/utils/platformerrors"
)

var allowedVideoMIMEs = map[string]string{
	"video/mp4":        "mp4",
	"video/webm":       "webm",
	"video/quicktime":  "mov",
	"video/x-matroska": "mkv",
}

var allowedImageMIMEs = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Service orchestrates video uploads, retrieval and owner mutations.
type Service struct {
	cfg     *config.Config
	repo    Repository
	storage Storage
	log     zerolog.Logger
}

func NewService(cfg *config.Config, repo Repository, storage Storage, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		storage: storage,
		log:     log.With().Str("component", "video-service").Logger(),
	}
}

// Upload stores the media file and thumbnail and creates the video record.
func (s *Service) Upload(ctx context.Context, params UploadParams) (*Video, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"title is required", nil, "4eb6e321-17f1-4962-b0b1-70c54df4efe3")
	}
	if params.Video.Reader == nil || params.Video.Size == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"video file is required", nil, "dc5c0250-4d73-4117-a8e2-768a560e0985")
	}
	if params.Video.Size > s.cfg.MaxVideoBytes {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("video exceeds max size of %d bytes", s.cfg.MaxVideoBytes), nil, "fc10709d-3d3f-401f-a60d-db7b554d3627")
	}

	videoMIME, videoExt, err := sniff(ctx, params.Video.Reader, allowedVideoMIMEs)
	if err != nil {
		return nil, err
	}

	id := idgen.New(idgen.PrefixVideo)
	videoKey := fmt.Sprintf("videos/%s.%s", id, videoExt)

	videoURL, err := s.storage.Upload(ctx, videoKey, params.Video.Reader, params.Video.Size, videoMIME)
	if err != nil {
		metrics.RecordUpload(videoMIME, "error", 0)
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeStorageError,
			"failed to store video file", err, "df1854dc-2ca3-4e02-935c-16565c1628b8")
	}
	metrics.RecordUpload(videoMIME, "success", params.Video.Size)

	var thumbURL, thumbKey string
	if params.Thumbnail.Reader != nil && params.Thumbnail.Size > 0 {
		if params.Thumbnail.Size > s.cfg.MaxImageBytes {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("thumbnail exceeds max size of %d bytes", s.cfg.MaxImageBytes), nil, "d5adb453-985f-459f-b1cf-8e829e6331ed")
		}
		thumbMIME, thumbExt, err := sniff(ctx, params.Thumbnail.Reader, allowedImageMIMEs)
		if err != nil {
			return nil, err
		}
		thumbKey = fmt.Sprintf("thumbnails/%s.%s", id, thumbExt)
		thumbURL, err = s.storage.Upload(ctx, thumbKey, params.Thumbnail.Reader, params.Thumbnail.Size, thumbMIME)
		if err != nil {
			metrics.RecordUpload(thumbMIME, "error", 0)
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeStorageError,
				"failed to store thumbnail", err, "3decb438-bc88-4c38-b068-79c11c46e00f")
		}
		metrics.RecordUpload(thumbMIME, "success", params.Thumbnail.Size)
	}

	v := &Video{
		ID:           id,
		Title:        title,
		Description:  strings.TrimSpace(params.Description),
		VideoURL:     videoURL,
		VideoKey:     videoKey,
		ThumbnailURL: thumbURL,
		ThumbnailKey: thumbKey,
		Duration:     params.Duration,
		IsPublished:  true,
		OwnerID:      params.OwnerID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// View increments the view counter by exactly one and returns the video.
func (s *Service) View(ctx context.Context, id, viewerID string) (*Video, error) {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	metrics.RecordView()
	return s.repo.GetByID(ctx, id, viewerID)
}

// Get returns the video without touching the view counter.
func (s *Service) Get(ctx context.Context, id, viewerID string) (*Video, error) {
	return s.repo.GetByID(ctx, id, viewerID)
}

// Feed lists all published videos, newest first.
func (s *Service) Feed(ctx context.Context, viewerID string) ([]Video, error) {
	return s.repo.ListPublished(ctx, viewerID)
}

// Search performs a case-insensitive substring match over title and
// description of published videos. No match is an empty result, not an error.
func (s *Service) Search(ctx context.Context, query, viewerID string) ([]Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Video{}, nil
	}
	return s.repo.Search(ctx, query, viewerID)
}

// OwnerOf returns the channel summary for a video's owner.
func (s *Service) OwnerOf(ctx context.Context, videoID string) (*Owner, error) {
	return s.repo.OwnerSummary(ctx, videoID)
}

// ListByOwner lists a channel's videos. Unpublished ones are included only for
// the owner's own dashboard.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, includeUnpublished bool) ([]Video, error) {
	return s.repo.ListByOwner(ctx, ownerID, includeUnpublished)
}

// Update mutates title/description. Only the owner may update.
func (s *Service) Update(ctx context.Context, id, requesterID string, params UpdateParams) (*Video, error) {
	v, err := s.authorizeOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		v.Title = title
	}
	if desc := strings.TrimSpace(params.Description); desc != "" {
		v.Description = desc
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// TogglePublish flips the published flag. Only the owner may toggle.
func (s *Service) TogglePublish(ctx context.Context, id, requesterID string) (*Video, error) {
	v, err := s.authorizeOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	v.IsPublished = !v.IsPublished
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes the video, its stored media and dependent records. Storage
// cleanup is best effort: a failed object delete is logged and the row delete
// proceeds, accepting the inconsistency window.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	v, err := s.authorizeOwner(ctx, id, requesterID)
	if err != nil {
		return err
	}

	for _, key := range []string{v.VideoKey, v.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to delete stored media, continuing")
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) authorizeOwner(ctx context.Context, id, requesterID string) (*Video, error) {
	v, err := s.repo.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != requesterID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"only the owner may modify this video", nil, "cd6a8fd4-a6e6-4686-bb1c-02fab51e9f64")
	}
	return v, nil
}

func sniff(ctx context.Context, r io.ReadSeeker, allowed map[string]string) (string, string, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"failed to read uploaded file", err, "2c3e8bf1-47ce-4da0-aa7d-de57d6e472a2")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to rewind upload stream", err, "0b41036e-b6bc-4023-913d-79d6b50fe934")
	}

	mime := mtype.String()
	if idx := strings.Index(mime, ";"); idx > 0 {
		mime = mime[:idx]
	}
	ext, ok := allowed[mime]
	if !ok {
		return "", "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unsupported mime type %s", mime), nil, "1dfffe09-0662-4ece-ae41-1c9c9852d288")
	}
	return mime, ext, nil
}
