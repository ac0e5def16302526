/*
Package chat contains the core logic of the relay: guest sessions, channel
history and broadcasting, presence tracking, voice room membership, and
WebRTC signaling relay.

This file holds the input sanitizers. Every string that arrives from a client
passes through here before it touches shared state; the sanitizers never fail,
they only clamp or substitute safe defaults.
*/
package chat

import (
	"regexp"
	"strings"
)

const (
	// DefaultName is the display name assigned when a client supplies none.
	DefaultName = "Guest"

	// DefaultColor is the brand fallback for invalid display colors.
	DefaultColor = "#5865F2"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ClampString trims surrounding whitespace and truncates the value to at most
// maxLen characters. It always returns a safe value, never an error.
func ClampString(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)

	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}

	return trimmed
}

// NormalizeColor returns the value unchanged when it is a "#" followed by
// exactly six hexadecimal digits (case-insensitive), and DefaultColor otherwise.
func NormalizeColor(value string) string {
	if hexColorPattern.MatchString(value) {
		return value
	}

	return DefaultColor
}
