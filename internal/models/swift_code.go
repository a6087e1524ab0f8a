package models

import (
	"regexp"
	"strings"
)

// SWIFT code validation regex: 8 or 11 alphanumerics after normalisation.
var swiftCodeRegex = regexp.MustCompile(`^[A-Z0-9]{8}([A-Z0-9]{3})?$`)

// NormalizeSwiftCode returns the canonical (trimmed, uppercase) form of code.
func NormalizeSwiftCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidSwiftCode reports whether code is a well formed SWIFT code once normalised.
func IsValidSwiftCode(code string) bool {
	if strings.TrimSpace(code) == "" {
		return false
	}
	return swiftCodeRegex.MatchString(NormalizeSwiftCode(code))
}
