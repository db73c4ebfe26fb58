package util

import (
	"regexp"
	"strings"
)

// whitespace is ASCII whitespace plus vertical tab, the Unicode space
// separators and the BOM. RE2's \s is ASCII only and misses most of these.
const whitespace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d` + whitespace + `\-()]+$`)
)

// MinPhoneDigits is the fewest digits a phone number may carry
const MinPhoneDigits = 10

// IsValidEmail is a shape check only: local@domain.tld with no whitespace and one @.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPhoneNumber accepts an optional leading +, digits, whitespace, hyphens and
// parentheses, with at least MinPhoneDigits digits.
func IsValidPhoneNumber(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	return countDigits(s) >= MinPhoneDigits
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// SanitizeString strips every < and >. It does not escape anything else.
func SanitizeString(s string) string {
	return angleBrackets.Replace(s)
}
