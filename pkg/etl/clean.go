package etl

import "regexp"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Clean removes non-alphanumeric characters from text,
// keeping only letters, numbers, and whitespaces.
func Clean(text string) string {
	return nonAlphanumeric.ReplaceAllString(text, "")
}
