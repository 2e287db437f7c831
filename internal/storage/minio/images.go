package minio

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	mclient "github.com/minio/minio-go/v7"
)

// objectKey строит ключ объекта: "<prefix>/<fullname>".
func (s *ImagesStorage) objectKey(fullname string) string {
	name := strings.TrimLeft(fullname, "/")
	if s.prefix == "" {
		return name
	}

	return path.Join(s.prefix, name)
}

// ImageExists проверяет наличие объекта изображения через StatObject.
// Отсутствие объекта — (false, nil); прочие ошибки S3 пробрасываются.
func (s *ImagesStorage) ImageExists(ctx context.Context, fullname string) (bool, error) {
	const op = "storage/minio/images/ImageExists"

	info, err := s.client.StatObject(ctx, s.bucket, s.objectKey(fullname), mclient.StatObjectOptions{})
	if err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == http.StatusNotFound {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return info.Size > 0, nil
}
