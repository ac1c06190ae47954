package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minhph/resourcehub/internal/config"
)

// Bucket names. Each maps to a directory under the storage root and is
// created at startup.
const (
	BucketAvatars      = "avatars"
	BucketSystemAssets = "system-assets"
	BucketAttachments  = "resource-attachments"
)

var bucketNames = []string{BucketAvatars, BucketSystemAssets, BucketAttachments}

// Per-bucket allowed extensions. Attachments accept anything.
var bucketExtensions = map[string][]string{
	BucketAvatars:      {".jpg", ".jpeg", ".png", ".gif", ".webp"},
	BucketSystemAssets: {".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico"},
}

type StorageService struct {
	cfg *config.StorageConfig
}

func NewStorageService(cfg *config.StorageConfig) *StorageService {
	return &StorageService{cfg: cfg}
}

// EnsureBuckets creates the bucket directories under the storage root.
func (s *StorageService) EnsureBuckets() error {
	for _, bucket := range bucketNames {
		if err := os.MkdirAll(filepath.Join(s.cfg.Dir, bucket), 0o755); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func ValidBucket(bucket string) bool {
	for _, b := range bucketNames {
		if b == bucket {
			return true
		}
	}
	return false
}

// Save stores an uploaded file into a bucket under a collision-proof name
// and returns the public URL. Size and extension are checked before any
// bytes are written.
func (s *StorageService) Save(bucket string, file *multipart.FileHeader) (string, error) {
	if !ValidBucket(bucket) {
		return "", fmt.Errorf("unknown bucket %s", bucket)
	}

	maxBytes := int64(s.cfg.MaxUploadMB) * 1024 * 1024
	if file.Size > maxBytes {
		return "", fmt.Errorf("file exceeds the %dMB upload limit", s.cfg.MaxUploadMB)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if allowed, restricted := bucketExtensions[bucket]; restricted {
		ok := false
		for _, a := range allowed {
			if ext == a {
				ok = true
				break
			}
		}
		if !ok {
			return "", fmt.Errorf("file type %s is not allowed in %s", ext, bucket)
		}
	}

	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	name := fmt.Sprintf("%s-%s%s", sanitizeName(base), uuid.New().String()[:8], ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.cfg.Dir, bucket, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return s.PublicURL(bucket, name), nil
}

// Delete removes a stored object given its public URL. Unknown URLs are
// ignored so callers can pass user-entered values safely.
func (s *StorageService) Delete(publicURL string) error {
	prefix := strings.TrimSuffix(s.cfg.BaseURL, "/") + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return nil
	}
	rel := strings.TrimPrefix(publicURL, prefix)

	parts := strings.SplitN(rel, "/", 2)
	if len(parts) != 2 || !ValidBucket(parts[0]) || strings.Contains(parts[1], "/") {
		return nil
	}

	err := os.Remove(filepath.Join(s.cfg.Dir, parts[0], parts[1]))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// PublicURL builds the URL the static file route serves an object at.
func (s *StorageService) PublicURL(bucket, name string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.BaseURL, "/"), bucket, name)
}

// Root returns the directory the static file route should serve.
func (s *StorageService) Root() string {
	return s.cfg.Dir
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "file"
	}
	if len(out) > 60 {
		out = out[:60]
	}
	return out
}
