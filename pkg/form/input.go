package form

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/portico/pkg/domain"
)

// MaxInputSize is the largest field value accepted, in bytes.
const MaxInputSize = 5000

var (
	ErrInputTooLarge = fmt.Errorf("%w: value exceeds maximum allowed size", domain.ErrInvalidInput)
	ErrInvalidUTF8   = fmt.Errorf("%w: value contains invalid UTF-8 sequences", domain.ErrInvalidInput)
)

// CleanInput enforces the size limit, validates UTF-8 and strips control
// characters other than newline, tab and carriage return.
func CleanInput(input string) (string, error) {
	// Reject rather than truncate so the stored draft is what the visitor typed.
	if len(input) > MaxInputSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), MaxInputSize)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}
