package identifier

import (
	"fmt"
	"regexp"
	"strings"

	goslug "github.com/gosimple/slug"
)

// MaxSlugLength caps the cosmetic URL slug.
const MaxSlugLength = 50

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title or name into the cosmetic slug used in canonical URLs.
//
//	"Breaking Bad"      → "breaking-bad"
//	"  Crash Landing!!" → "crash-landing"
//	"!!!"               → ""
//
// Anything outside [a-z0-9] (non-ASCII included) collapses into a single hyphen.
func Slugify(text string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(text), "-")
	s = strings.Trim(s, "-")

	if len(s) > MaxSlugLength {
		// the cut can expose a hyphen at the end
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}

	return s
}

// StoredSlug builds the value of the legacy slug column written when a record
// is created. Unlike Slugify it transliterates ("Amélie" → "amelie").
func StoredSlug(title string) string {
	s := goslug.Make(title)
	if s == "" {
		return "untitled"
	}
	return s
}

// NumberedSlug returns the n-th collision variant of base: base, base-2, base-3, ...
func NumberedSlug(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
