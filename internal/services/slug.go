package services

import "regexp"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify replaces every run of whitespace in title with a single "-",
// including runs at either end. Case and punctuation are kept as is.
func Slugify(title string) string {
	return whitespaceRun.ReplaceAllString(title, "-")
}
