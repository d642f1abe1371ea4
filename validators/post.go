package validators

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"feedhub/social-api/apperr"
)

const (
	titleMinLen   = 3
	titleMaxLen   = 50
	contentMinLen = 5
	contentMaxLen = 50
)

// PostValidator checks the user-settable post fields and collects every
// violation instead of stopping at the first one
func PostValidator(title, content string) []apperr.FieldError {
	var fields []apperr.FieldError

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		fields = append(fields, apperr.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("title must be between %d and %d characters long", titleMinLen, titleMaxLen),
		})
	}

	if n := utf8.RuneCountInString(content); n < contentMinLen || n > contentMaxLen {
		fields = append(fields, apperr.FieldError{
			Field:   "content",
			Message: fmt.Sprintf("content must be between %d and %d characters long", contentMinLen, contentMaxLen),
		})
	}

	return fields
}
