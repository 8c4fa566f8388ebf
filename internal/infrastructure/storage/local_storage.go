package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/config"
)

var errLocalStorageDisabled = errors.New("local storage is not configured; set TUBETWEET_LOCAL_STORAGE_PATH to enable")

// MediaRoutePath is where the HTTP server mounts the storage root. The default
// public URLs must resolve under the same path.
const MediaRoutePath = "/media"

// LocalStorage handles uploads and deletions on the local filesystem. It is the
// development-time stand-in for the S3 backend and serves files through the API
// host under the configured base URL.
type LocalStorage struct {
	basePath string
	baseURL  string
	log      zerolog.Logger
	disabled bool
}

// NewLocalStorage creates a new local filesystem storage backend.
func NewLocalStorage(cfg *config.Config, log zerolog.Logger) (*LocalStorage, error) {
	logger := log.With().Str("component", "local-storage").Logger()

	basePath := strings.TrimSpace(cfg.LocalStoragePath)
	if basePath == "" {
		logger.Warn().Msg("TUBETWEET_LOCAL_STORAGE_PATH is not set; local storage will be disabled")
		return &LocalStorage{
			log:      logger,
			disabled: true,
		}, nil
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	baseURL := strings.TrimSpace(cfg.LocalStorageBaseURL)
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d%s", cfg.HTTPPort, MediaRoutePath)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		log:      logger,
	}, nil
}

func (l *LocalStorage) ensureEnabled() error {
	if l.disabled {
		return errLocalStorageDisabled
	}
	return nil
}

// BasePath exposes the storage root so the HTTP layer can serve it statically.
func (l *LocalStorage) BasePath() string {
	return l.basePath
}

// Upload writes the object to disk and returns its public URL.
func (l *LocalStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if err := l.ensureEnabled(); err != nil {
		return "", err
	}

	path, err := l.safePath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create object file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write object: %w", err)
	}

	return l.PublicURL(key), nil
}

// Delete removes the object from disk. Missing files are not an error.
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := l.ensureEnabled(); err != nil {
		return err
	}
	path, err := l.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PublicURL builds the serving URL for a stored key.
func (l *LocalStorage) PublicURL(key string) string {
	return l.baseURL + "/" + strings.TrimPrefix(key, "/")
}

// Health verifies the storage directory is writable.
func (l *LocalStorage) Health(ctx context.Context) error {
	if l.disabled {
		return nil
	}
	probe := filepath.Join(l.basePath, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

// safePath resolves a key inside the base path, rejecting traversal attempts.
func (l *LocalStorage) safePath(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	path := filepath.Join(l.basePath, cleaned)
	if !strings.HasPrefix(path, filepath.Clean(l.basePath)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return path, nil
}
