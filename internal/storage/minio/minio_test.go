package minio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-social-platform/internal/config"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты для пакета minio:
// — поднимают MinIO через testcontainers-go и создают бакет;
// — проверяют New (ошибка без бакета) и ImageExists (есть/нет объекта).
//
// Запуск:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/minio -v -race -count=1

func TestObjectKey(t *testing.T) {
	t.Parallel()

	s := &ImagesStorage{prefix: "post"}
	require.Equal(t, "post/a.png", s.objectKey("a.png"))
	require.Equal(t, "post/a.png", s.objectKey("/a.png"))

	s = &ImagesStorage{}
	require.Equal(t, "a.png", s.objectKey("a.png"))
}

func startMinio(t *testing.T) (config.S3Config, *mclient.Client) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	const (
		rootUser     = "root"
		rootPassword = "rootpass"
	)
	req := tc.ContainerRequest{
		Image:        "docker.io/minio/minio:latest",
		Env:          map[string]string{"MINIO_ROOT_USER": rootUser, "MINIO_ROOT_PASSWORD": rootPassword},
		Cmd:          []string{"server", "/data"},
		ExposedPorts: []string{"9000/tcp"},
		WaitingFor:   wait.ForListeningPort("9000/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "9000/tcp")

	admin, err := mclient.New(host+":"+port.Port(), &mclient.Options{
		Creds: credentials.NewStaticV4(rootUser, rootPassword, ""),
	})
	require.NoError(t, err)

	return config.S3Config{
		Enabled:      true,
		Endpoint:     fmt.Sprintf("http://%s:%s", host, port.Port()),
		RootUser:     rootUser,
		RootPassword: rootPassword,
		Bucket:       "images",
		ImagePrefix:  "post/",
	}, admin
}

func TestIntegration_New_NoBucket(t *testing.T) {
	cfg, _ := startMinio(t)

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestIntegration_ImageExists(t *testing.T) {
	cfg, admin := startMinio(t)
	ctx := context.Background()

	require.NoError(t, admin.MakeBucket(ctx, cfg.Bucket, mclient.MakeBucketOptions{Region: "us-east-1"}))
	body := []byte("png-bytes")
	_, err := admin.PutObject(ctx, cfg.Bucket, "post/AbCdEfGh01234-_z_0.png", bytes.NewReader(body), int64(len(body)),
		mclient.PutObjectOptions{ContentType: "image/png"})
	require.NoError(t, err)

	s, err := New(ctx, cfg)
	require.NoError(t, err)

	ok, err := s.ImageExists(ctx, "AbCdEfGh01234-_z_0.png")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.ImageExists(ctx, "missing.png")
	require.NoError(t, err)
	require.False(t, ok)
}
