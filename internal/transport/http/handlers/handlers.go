// handlers — HTTP-обработчики эндпойнтов постов.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-social-platform/internal/models"
	"github.com/pribylovaa/go-social-platform/internal/service"
)

// Posts — операции сервисного слоя, которые вызывают обработчики.
type Posts interface {
	Initiate(ctx context.Context, memberID string, in service.PostInput) (string, error)
	Create(ctx context.Context, memberID string, in service.CreateInput) (string, error)
	AttachImages(ctx context.Context, memberID, postID string, images []string) (string, error)
	Edit(ctx context.Context, memberID, postID string, in service.PostInput) (string, error)
	Delete(ctx context.Context, memberID, postID string) error
	View(ctx context.Context, viewerID, postID string) (*models.RestrictedPost, error)
	ToggleSave(ctx context.Context, memberID, postID string) (bool, error)
}

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	Posts Posts
}

func New(p Posts) *Handlers {
	return &Handlers{Posts: p}
}

// writeJSON — ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeText — ответ text/plain без конверта.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
