// minio предоставляет реализацию storage.Images на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint,
// настраивает Secure/creds и проверяет наличие целевого бакета.
// images.go — проверка, что загруженные изображения поста существуют.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/pribylovaa/go-social-platform/internal/storage"
)

// ImagesStorage — адаптер MinIO для проверки изображений постов.
type ImagesStorage struct {
	bucket string
	prefix string
	client *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Схема в endpoint (http/https) определяет Secure и имеет приоритет над s3.use_ssl.
func New(ctx context.Context, cfg config.S3Config) (*ImagesStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.Endpoint
	secure := cfg.UseSSL

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &ImagesStorage{
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.ImagePrefix, "/"),
		client: client,
	}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Images = (*ImagesStorage)(nil)
