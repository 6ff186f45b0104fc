package util

import (
	"regexp"
	"strings"
)

var (
	titleForbidden  = regexp.MustCompile(`[^a-z0-9\s-]`)
	titleWhitespace = regexp.MustCompile(`\s+`)
	objectKey       = regexp.MustCompile(`/uploads/(profile|cover)/([^?/]+)`)
)

// SanitizeTitle превращает заголовок в безопасную основу имени файла:
// нижний регистр, только латиница/цифры/дефисы, не длиннее 50 символов
func SanitizeTitle(title string) string {
	sanitized := strings.ToLower(title)
	sanitized = titleForbidden.ReplaceAllString(sanitized, "")
	sanitized = titleWhitespace.ReplaceAllString(strings.TrimSpace(sanitized), "-")
	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	if sanitized == "" {
		return "untitled"
	}
	return sanitized
}

// ExtractObjectKey восстанавливает S3 ключ из URL изображения;
// пустая строка — URL не указывает на наш бакет
func ExtractObjectKey(url string) string {
	m := objectKey.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return "uploads/" + m[1] + "/" + m[2]
}
