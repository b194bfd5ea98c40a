package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips unsafe markup from vent and reply text before it is stored.
// Everything the forum serves comes straight back out of this text column, so
// the cleaning happens once, at write time.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
