package utils

import "github.com/microcosm-cc/bluemonday"

var (
	contentSanitizer = bluemonday.UGCPolicy()
	strictSanitizer  = bluemonday.StrictPolicy()
)

// Sanitize cleans post body HTML to prevent XSS while keeping user formatting.
func Sanitize(input string) string {
	return contentSanitizer.Sanitize(input)
}

// SanitizeStrict strips all markup; used for titles and excerpts.
func SanitizeStrict(input string) string {
	return strictSanitizer.Sanitize(input)
}
