package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Provider is the blob storage abstraction used by the asset staging flow.
type Provider interface {
	PutObject(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	GetObject(ctx context.Context, objectName string) ([]byte, error)
	Delete(ctx context.Context, objectName string) error
}

const (
	ProviderMinio = "minio"
	ProviderS3    = "s3"
)

// Storage holds the provider-independent bucket configuration.
type Storage struct {
	Provider  string
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string
	Bucket    string
	Region    string
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`
}

// NewStorage creates the configured provider implementation.
func NewStorage(s *Storage) (Provider, error) {
	switch s.Provider {
	case ProviderMinio:
		return newMinio(s)
	case ProviderS3:
		return newS3(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// getFullPath joins BasePath and objectName, avoiding double slashes.
func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return objectName
	}
	basePath = strings.Trim(basePath, "/")
	objectName = strings.TrimPrefix(objectName, "/")
	return path.Join(basePath, objectName)
}
