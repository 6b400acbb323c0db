package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/resourcehub/resourcehub/pkg/object-storage/s3"
)

var ErrStorageUnsupported = errors.New("object storage is not configured")

const presignExpires = 24 * time.Hour

// FileStorage is where the publish command uploads catalog artifacts.
type FileStorage interface {
	Name() string
	GetStaticDomain() string
	SaveFile(ctx context.Context, key string, content []byte, contentType string) error
	DownloadFile(ctx context.Context, key string) (*s3.GetObjectResult, error)
}

func SetupObjectStorage(cfg ObjectStorageDriver) (FileStorage, error) {
	switch strings.ToLower(cfg.Driver) {
	case "s3":
		if cfg.S3 == nil {
			return nil, fmt.Errorf("object_storage.s3 is required by the s3 driver")
		}
		cli, err := s3.NewS3Client(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.AccessKey, cfg.S3.SecretKey, s3.WithPathStyle(cfg.S3.UsePathStyle))
		if err != nil {
			return nil, err
		}
		return &S3FileStorage{StaticDomain: cfg.StaticDomain, S3: cli}, nil
	case "local":
		dir := cfg.LocalDir
		if dir == "" {
			dir = "public"
		}
		return &LocalFileStorage{StaticDomain: cfg.StaticDomain, Dir: dir}, nil
	default:
		return &NoneFileStorage{}, nil
	}
}

// PublicURL joins the static domain and key. An s3 bucket without a static
// domain hands out a presigned url instead.
func PublicURL(ctx context.Context, fs FileStorage, key string) (string, error) {
	domain := strings.TrimSuffix(fs.GetStaticDomain(), "/")
	if s3fs, ok := fs.(*S3FileStorage); ok && domain == "" {
		return s3fs.GenGetObjectPreSignURL(ctx, key, presignExpires)
	}
	return domain + "/" + strings.TrimPrefix(key, "/"), nil
}

type NoneFileStorage struct{}

func (lfs *NoneFileStorage) Name() string { return "none" }

func (lfs *NoneFileStorage) GetStaticDomain() string {
	return ""
}

func (lfs *NoneFileStorage) SaveFile(ctx context.Context, key string, content []byte, contentType string) error {
	return ErrStorageUnsupported
}

func (lfs *NoneFileStorage) DownloadFile(ctx context.Context, key string) (*s3.GetObjectResult, error) {
	return nil, ErrStorageUnsupported
}

type LocalFileStorage struct {
	StaticDomain string
	Dir          string
}

func (lfs *LocalFileStorage) Name() string { return "local" }

func (lfs *LocalFileStorage) GetStaticDomain() string {
	return lfs.StaticDomain
}

func (lfs *LocalFileStorage) fullPath(key string) string {
	return filepath.Join(lfs.Dir, filepath.FromSlash(strings.TrimPrefix(key, "/")))
}

// SaveFile stores a file on the local file system.
func (lfs *LocalFileStorage) SaveFile(ctx context.Context, key string, content []byte, _ string) error {
	fullPath := lfs.fullPath(key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (lfs *LocalFileStorage) DownloadFile(ctx context.Context, key string) (*s3.GetObjectResult, error) {
	raw, err := os.ReadFile(lfs.fullPath(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return &s3.GetObjectResult{
		File:     raw,
		FileType: http.DetectContentType(raw),
	}, nil
}

type S3FileStorage struct {
	StaticDomain string
	*s3.S3
}

func (fs *S3FileStorage) Name() string { return "s3" }

func (fs *S3FileStorage) GetStaticDomain() string {
	return fs.StaticDomain
}

func (fs *S3FileStorage) SaveFile(ctx context.Context, key string, content []byte, contentType string) error {
	return fs.Upload(ctx, key, bytes.NewReader(content), contentType)
}

func (fs *S3FileStorage) DownloadFile(ctx context.Context, key string) (*s3.GetObjectResult, error) {
	return fs.GetObject(ctx, key)
}
