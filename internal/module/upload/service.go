package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/zharkyn/carmarket/internal/config"
	"github.com/zharkyn/carmarket/internal/domain"
)

// allowedExtensions lists the image types accepted for upload.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// maxUploadSize caps a single image upload.
const maxUploadSize = 10 << 20

// Service stores uploaded images and returns their public URLs.
type Service interface {
	Upload(ctx context.Context, fileName string, file io.Reader, size int64) (*Uploaded, error)
	Delete(ctx context.Context, objectName string) error
}

// Uploaded describes a stored object.
type Uploaded struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
}

// storageService implements Service on object storage.
type storageService struct {
	client *minio.Client
	cfg    config.StorageConfig
}

// NewService creates a new upload Service backed by the given storage client.
func NewService(client *minio.Client, cfg config.StorageConfig) Service {
	return &storageService{client: client, cfg: cfg}
}

// Upload validates the file and stores it under uploads/<year>/<month>/ with
// a random name, keeping the original extension.
func (s *storageService) Upload(ctx context.Context, fileName string, file io.Reader, size int64) (*Uploaded, error) {
	if size <= 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "file is empty", nil)
	}
	if size > maxUploadSize {
		return nil, domain.NewAppError(domain.CodeValidation, "file exceeds the 10MB limit", nil)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return nil, domain.NewAppError(domain.CodeValidation, "unsupported file type, expected an image", nil)
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now().UTC()
	objectName := fmt.Sprintf("uploads/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to store file", err)
	}

	return &Uploaded{
		ObjectName: objectName,
		URL:        s.publicURL(objectName),
		Size:       size,
	}, nil
}

// Delete removes a stored object.
func (s *storageService) Delete(ctx context.Context, objectName string) error {
	if !strings.HasPrefix(objectName, "uploads/") {
		return domain.NewAppError(domain.CodeValidation, "invalid object name", nil)
	}
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to delete file", err)
	}
	return nil
}

// publicURL builds the URL clients use to fetch the object. When a public
// base URL is configured it takes precedence over the storage endpoint.
func (s *storageService) publicURL(objectName string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + objectName
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectName)
}
