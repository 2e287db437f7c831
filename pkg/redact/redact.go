// redact предоставляет заглушки для чувствительных данных в логах.
// Цель — не допустить утечки сессионных токенов, сохранив признак их наличия.
package redact

import "strings"

// Token возвращает литерал-заглушку для токена в логах.
func Token() string { return "[REDACTED_TOKEN]" }

// Credential маскирует сырое значение учётных данных (Bearer-токен, cookie).
// Пустое значение остаётся пустым, чтобы в логах было видно «токена не было».
func Credential(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	return Token()
}
