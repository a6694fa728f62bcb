package utils

import "github.com/microcosm-cc/bluemonday"

// Board text is stored as submitted minus anything executable. Bodies keep
// basic user formatting; single-line fields such as titles and author names
// are plain text with every tag stripped.
var (
	bodyPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans a post or comment body, keeping harmless markup and
// removing script vectors.
func Sanitize(input string) string {
	return bodyPolicy.Sanitize(input)
}

// SanitizePlain strips all markup from single-line fields.
func SanitizePlain(input string) string {
	return plainPolicy.Sanitize(input)
}
