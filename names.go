package main

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/finnbear/moderation"
)

const maxNameLen = 16

// DefaultName is the display name of the n-th player when none was given
func DefaultName(n int) string {
	return "Player " + strconv.Itoa(n)
}

// SanitizeName trims, strips control characters and censors a display name.
// An empty result means the caller should fall back to DefaultName.
func SanitizeName(raw string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	name = strings.TrimSpace(name)

	if runes := []rune(name); len(runes) > maxNameLen {
		name = strings.TrimSpace(string(runes[:maxNameLen]))
	}
	if name == "" {
		return ""
	}

	result := moderation.Scan(name)
	if result.Is(moderation.Inappropriate) {
		if result.Is(moderation.Inappropriate & moderation.Moderate) {
			return ""
		}
		name, _ = moderation.Censor(name, moderation.Inappropriate)
	}
	return name
}
