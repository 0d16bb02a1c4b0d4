package identifier

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingPublicID means a record without a public ID was asked for a
// canonical URL. Callers must not link such records.
var ErrMissingPublicID = errors.New("record has no public identifier")

// Linkable is anything that can be turned into a canonical URL.
type Linkable interface {
	PublicIdentifier() *int64
	DisplayName() string
}

const (
	PrefixSeries  = "series"
	PrefixMovies  = "movies"
	PrefixPeople  = "people"
	PrefixGeneric = "content"

	// KindPerson is the kind passed to BuildURL for people.
	KindPerson = "person"
)

var pathPrefixes = map[string]string{
	"drama":    PrefixSeries,
	"series":   PrefixSeries,
	"anime":    PrefixSeries,
	"tv":       PrefixSeries,
	"movie":    PrefixMovies,
	"film":     PrefixMovies,
	KindPerson: PrefixPeople,
}

// PathPrefix maps a content type (or "person") to its URL section.
func PathPrefix(kind string) string {
	if p, ok := pathPrefixes[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return p
	}
	return PrefixGeneric
}

// BuildURL returns the canonical path of a record:
//
//	/series/736993/breaking-bad
//	/people/17419             (name produced an empty slug)
func BuildURL(kind string, rec Linkable) (string, error) {
	id := rec.PublicIdentifier()
	if id == nil {
		return "", fmt.Errorf("build url for %q: %w", rec.DisplayName(), ErrMissingPublicID)
	}

	path := "/" + PathPrefix(kind) + "/" + strconv.FormatInt(*id, 10)
	if s := Slugify(rec.DisplayName()); s != "" {
		path += "/" + s
	}
	return path, nil
}
