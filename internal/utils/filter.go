package utils

import (
	"strings"
	"unicode"
)

// IsSeparator checks if a rune is a separator character allowed in queries.
// Product names carry spaces, hyphens and commas ("lions mane", "alpha-gpc",
// "1,3,7-trimethylxanthine").
func IsSeparator(r rune) bool {
	return r == ' ' || r == '_' || r == '-' || r == '.' || r == '/' || r == ','
}

// ContainsSpecialChars checks if a string contains characters outside
// letters, digits and common separators.
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsOnlySeparators checks if a string consists entirely of separators.
func IsOnlySeparators(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !IsSeparator(r) {
			return false
		}
	}
	return true
}

// IsRepetitive checks if a string is a single character repeated 3+ times
// ("aaa", "www") since such queries never match real products.
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// IsValidQuery checks if input should be dispatched as a lookup.
// Returns false for strings that are empty after trimming, contain special
// characters, or are repetitive garbage.
func IsValidQuery(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	if IsOnlySeparators(trimmed) {
		return false
	}
	if ContainsSpecialChars(trimmed) {
		return false
	}
	return !IsRepetitive(trimmed)
}
