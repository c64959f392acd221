package config

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SetupStorage creates a MinIO client from the provided StorageConfig.
// Bucket existence is not checked here: a missing bucket surfaces as an
// error on first upload, and provisioning buckets is a deployment concern.
func SetupStorage(cfg *StorageConfig) (*minio.Client, error) {
	if cfg == nil {
		return nil, errors.New("storage config is nil")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client for %s: %w", cfg.Endpoint, err)
	}

	return client, nil
}
