package identifier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind tags the format a URL segment was recognized as.
type Kind int

const (
	KindPublicID Kind = iota + 1
	KindCanonicalID
	KindEmbeddedCanonicalID
	KindShortPrefix
	KindLegacyTitle
)

func (k Kind) String() string {
	switch k {
	case KindPublicID:
		return "public_id"
	case KindCanonicalID:
		return "canonical_id"
	case KindEmbeddedCanonicalID:
		return "embedded_canonical_id"
	case KindShortPrefix:
		return "short_prefix"
	case KindLegacyTitle:
		return "legacy_title"
	default:
		return "unknown"
	}
}

// ShortPrefixLength is the length of the legacy short identifier.
const ShortPrefixLength = 8

const uuidPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`

var (
	publicIDPattern    = regexp.MustCompile(`^\d+$`)
	canonicalPattern   = regexp.MustCompile(`(?i)^` + uuidPattern + `$`)
	embeddedPattern    = regexp.MustCompile(`(?i)[-_](` + uuidPattern + `)$`)
	shortPrefixPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}$`)
)

// Candidate is the decoded form of a URL segment. Exactly one interpretation
// applies, selected by Kind:
//
//	KindPublicID                 Value holds the digits, see PublicID
//	KindCanonicalID              CanonicalID is set
//	KindEmbeddedCanonicalID      CanonicalID is set, Value holds the full segment
//	KindShortPrefix              Value holds the lowercased 8-hex prefix
//	KindLegacyTitle              Value holds the raw segment
type Candidate struct {
	Kind        Kind
	Value       string
	CanonicalID uuid.UUID
}

// PublicID returns the numeric public identifier. ok is false when the
// candidate is not a public ID or the digits do not fit in an int64; such a
// value cannot match any stored row.
func (c Candidate) PublicID() (id int64, ok bool) {
	if c.Kind != KindPublicID {
		return 0, false
	}
	id, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Key is the lookup key in printable form.
func (c Candidate) Key() string {
	switch c.Kind {
	case KindCanonicalID, KindEmbeddedCanonicalID:
		return c.CanonicalID.String()
	default:
		return c.Value
	}
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s(%s)", c.Kind, c.Key())
}

// Resolve classifies a URL segment. The order is fixed: public ID, full
// canonical ID, embedded canonical ID suffix, short prefix suffix, and legacy
// title as the catch-all. It never fails.
func Resolve(segment string) Candidate {
	if publicIDPattern.MatchString(segment) {
		return Candidate{Kind: KindPublicID, Value: segment}
	}

	if canonicalPattern.MatchString(segment) {
		if id, err := uuid.Parse(segment); err == nil {
			return Candidate{Kind: KindCanonicalID, CanonicalID: id}
		}
	}

	if m := embeddedPattern.FindStringSubmatch(segment); m != nil {
		if id, err := uuid.Parse(m[1]); err == nil {
			return Candidate{Kind: KindEmbeddedCanonicalID, Value: segment, CanonicalID: id}
		}
	}

	if tail := lastComponent(segment); shortPrefixPattern.MatchString(tail) {
		return Candidate{Kind: KindShortPrefix, Value: strings.ToLower(tail)}
	}

	return Candidate{Kind: KindLegacyTitle, Value: segment}
}

// lastComponent returns what follows the last '-' or '_' (old URLs used both).
func lastComponent(segment string) string {
	if i := strings.LastIndexAny(segment, "-_"); i >= 0 {
		return segment[i+1:]
	}
	return segment
}

// TitleVariants lists the titles a legacy segment may stand for, in the order
// they should be tried. Underscores always mean spaces; hyphens are ambiguous
// ("spider-man" vs "squid-game") so the literal form is tried first.
func (c Candidate) TitleVariants() []string {
	if c.Kind != KindLegacyTitle {
		return nil
	}

	base := strings.TrimSpace(strings.ReplaceAll(c.Value, "_", " "))
	if base == "" {
		return nil
	}

	variants := []string{base}
	if strings.Contains(base, "-") {
		if spaced := strings.TrimSpace(strings.ReplaceAll(base, "-", " ")); spaced != "" {
			variants = append(variants, spaced)
		}
	}
	return variants
}
