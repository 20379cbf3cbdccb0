package utils

import "strings"

// AnonymousName is shown when no identity is available at all.
const AnonymousName = "Anonim"

const maxMaskRunes = 6

// MaskName obscures a display name before it is shown to another user.
// Names of five runes or fewer pass through unchanged; longer names keep
// their first rune and last two, with min(6, len-3) mask characters in
// between so the output length never exceeds the input length.
//
// This is a display-only transform: stored identity data is never touched,
// and it must be applied at every surface where a non-self identity is
// rendered.
func MaskName(name string) string {
	if strings.TrimSpace(name) == "" {
		return AnonymousName
	}

	runes := []rune(name)
	if len(runes) <= 5 {
		return name
	}

	masked := len(runes) - 3
	if masked > maxMaskRunes {
		masked = maxMaskRunes
	}

	return string(runes[0]) + strings.Repeat("*", masked) + string(runes[len(runes)-2:])
}
