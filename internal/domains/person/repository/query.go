package repository

import "github.com/Krushna-ai/GDVG/internal/lookup"

const personColumns = `canonical_id, public_id, name, biography, profile_image_url, known_for, status, created_at, updated_at`

const publishedOnly = "status = 'published'"

const (
	canonicalPrefixMatch = `canonical_id::text LIKE $1 || '%'`
	nameMatch            = `lower(name) = lower($1)`

	// firstMatch picks the oldest row when a prefix or name is shared.
	firstMatch = ` ORDER BY created_at, canonical_id LIMIT 1`
)

func visibility(scope lookup.Scope) string {
	if scope.IncludeHidden {
		return ""
	}
	return " AND " + publishedOnly
}

func finderQuery(where string, scope lookup.Scope) string {
	return `SELECT ` + personColumns + ` FROM people WHERE ` + where + visibility(scope)
}
