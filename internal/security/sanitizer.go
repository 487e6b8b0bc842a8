package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeText cleans user-supplied free text before it reaches the
// database: strips HTML, null bytes and surrounding whitespace, and
// caps the length.
func SanitizeText(input string) string {
	input = htmlPolicy.Sanitize(input)
	input = strings.ReplaceAll(input, "\x00", "")
	input = strings.TrimSpace(input)

	if len(input) > 500 {
		input = input[:500]
	}

	return input
}

// ValidateAge checks if age is within the accepted range
func ValidateAge(age int) bool {
	return age >= 13 && age <= 100
}
