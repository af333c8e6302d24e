package util

import (
	"strings"
	"unicode"
)

// Slugify детерминированно превращает имя в URL-safe slug:
// нижний регистр, пробелы и пунктуация схлопываются в дефисы
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
