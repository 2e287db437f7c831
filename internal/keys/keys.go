// keys — детерминированные и генерируемые идентификаторы сущностей.
//
// Отображения:
//   - NewPostID: 12 случайных байт -> base64url без паддинга (16 символов);
//   - TopicID(content): base64url от текста темы без крайних пробелов;
//   - MappingID(topicID, postID): topicID + "_" + postID (postID фиксированной длины);
//   - NoticeID(category, initiator, postID, commentID): части через ":".
package keys

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// PostIDLength — длина идентификатора поста.
const PostIDLength = 16

// NewPostID генерирует новый идентификатор поста.
func NewPostID() string {
	u := uuid.New()

	return base64.RawURLEncoding.EncodeToString(u[:12])
}

// ValidPostID проверяет форму идентификатора поста.
func ValidPostID(id string) bool {
	if len(id) != PostIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}

	return true
}

// TopicID выводит идентификатор темы из её текста.
// Одинаковый текст (с точностью до крайних пробелов) даёт одинаковый id.
func TopicID(content string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.TrimSpace(content)))
}

// MappingID — идентификатор связи тема-пост.
func MappingID(topicID, postID string) string {
	return topicID + "_" + postID
}

// NoticeID — идентификатор уведомления. commentID опционален.
func NoticeID(category, initiatorID, postID, commentID string) string {
	parts := []string{category, initiatorID, postID}
	if commentID != "" {
		parts = append(parts, commentID)
	}

	return strings.Join(parts, ":")
}
