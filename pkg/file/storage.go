package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// File describes a stored file.
type File struct {
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	MIMEType     string `json:"mime_type"`
	Extension    string `json:"extension"`
	AbsolutePath string `json:"absolute_path,omitempty"`
	RelativePath string `json:"relative_path"`
	URL          string `json:"url,omitempty"`
}

// Storage keeps accepted uploads.
type Storage interface {
	Put(ctx context.Context, key string, r io.ReadSeeker, size int64, contentType string) (*File, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	URL(key string) string
}

// Store uploads the current file of u under key.
func Store(ctx context.Context, s Storage, key string, u Upload, contentType string) (*File, error) {
	f, err := os.Open(u.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	stored, err := s.Put(ctx, key, f, u.Size, contentType)
	if err != nil {
		return nil, err
	}
	if stored.Filename == "" {
		stored.Filename = SanitizeFilename(u.Name)
	}
	return stored, nil
}

// Key joins a prefix and a file name into a storage key.
func Key(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" || strings.Contains(key, "..") || strings.Contains(key, "\x00") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return key, nil
}

func extensionOf(key string) string {
	return normalizeExt(path.Ext(key))
}
