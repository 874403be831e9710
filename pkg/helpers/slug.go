package helpers

import (
	"regexp"
	"strings"
)

var (
	// nonAlnum matches runs of characters that are not lowercase alphanumerics
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

// SlugTitleMax is the number of title characters that survive into a slug.
const SlugTitleMax = 40

// Slugify converts a title to a URL-friendly slug: lowercase, punctuation
// and whitespace collapsed to single hyphens, hyphens trimmed at both ends.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// BlogSlug derives a blog post slug from its title and author id. The title
// is truncated to maxLen characters before slugification and the raw author
// id is appended: "Hello, World!" + "42" -> "hello-world-42". Slugs are
// derived, never independently mutable.
func BlogSlug(title, authorID string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = SlugTitleMax
	}
	runes := []rune(title)
	if len(runes) > maxLen {
		title = string(runes[:maxLen])
	}
	return Slugify(title) + "-" + authorID
}
