package checkin

import (
	"strings"
)

// CodeLength is the canonical width of a stored sample barcode (EAN-13).
const CodeLength = 13

// Normalize converts arbitrary scanner output to a canonical 13-digit code.
// Non-digit characters are stripped; shorter values are left-padded with '0',
// longer values keep only the rightmost 13 digits. Input with no digits at all
// yields the empty string, which callers must treat as "no code".
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if len(digits) > CodeLength {
		return digits[len(digits)-CodeLength:]
	}
	return strings.Repeat("0", CodeLength-len(digits)) + digits
}

// allZeros reports whether a normalized code carries no information.
// Scanner noise with no digits normalizes to all zeros once padded, so such a
// code never reaches the database.
func allZeros(code string) bool {
	return strings.Trim(code, "0") == ""
}
