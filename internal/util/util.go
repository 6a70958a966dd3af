package util

import (
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest display name a player may have
const MaxNameLength = 40

// CleanName trims a display name and falls back to a random name if nothing is left
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return GetRandomName()
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return string([]rune(name)[:MaxNameLength])
	}

	return name
}
