package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Krushna-ai/GDVG/internal/identifier"
)

type item struct {
	PublicID    int64
	CanonicalID uuid.UUID
	Title       string
	Hidden      bool
}

// memFinder is an ordered in-memory store that records every call.
type memFinder struct {
	items []item
	calls []string
	err   error
}

var errNoItem = fmt.Errorf("item %w", ErrNotFound)

func (m *memFinder) match(scope Scope, pred func(item) bool) (*item, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.items {
		it := m.items[i]
		if it.Hidden && !scope.IncludeHidden {
			continue
		}
		if pred(it) {
			return &it, nil
		}
	}
	return nil, errNoItem
}

func (m *memFinder) FindByPublicID(_ context.Context, id int64, scope Scope) (*item, error) {
	m.calls = append(m.calls, fmt.Sprintf("public_id=%d", id))
	return m.match(scope, func(it item) bool { return it.PublicID == id })
}

func (m *memFinder) FindByCanonicalID(_ context.Context, id uuid.UUID, scope Scope) (*item, error) {
	m.calls = append(m.calls, "canonical_id="+id.String())
	return m.match(scope, func(it item) bool { return it.CanonicalID == id })
}

func (m *memFinder) FindByCanonicalPrefix(_ context.Context, prefix string, scope Scope) (*item, error) {
	m.calls = append(m.calls, "canonical_prefix="+prefix)
	return m.match(scope, func(it item) bool {
		return strings.HasPrefix(it.CanonicalID.String(), strings.ToLower(prefix))
	})
}

func (m *memFinder) FindByTitle(_ context.Context, title string, scope Scope) (*item, error) {
	m.calls = append(m.calls, "title="+title)
	return m.match(scope, func(it item) bool { return strings.EqualFold(it.Title, title) })
}

var (
	badID    = uuid.MustParse("6a5562cf-3b1e-4d7a-9f0c-2e8b41d9a7c3")
	crownID  = uuid.MustParse("0f9d8c7b-1111-4222-8333-444455556666")
	twinID   = uuid.MustParse("6a5562cf-ffff-4fff-8fff-ffffffffffff")
	hiddenID = uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000000")
)

func newStore() *memFinder {
	return &memFinder{items: []item{
		{PublicID: 736993, CanonicalID: badID, Title: "Breaking Bad"},
		{PublicID: 65494, CanonicalID: crownID, Title: "The Crown"},
		{PublicID: 1, CanonicalID: twinID, Title: "Squid Game"},
		{PublicID: 2, CanonicalID: hiddenID, Title: "Unreleased", Hidden: true},
	}}
}

func TestFindDispatchesByKind(t *testing.T) {
	tests := []struct {
		segment   string
		wantTitle string
		wantCalls []string
	}{
		{"736993", "Breaking Bad", []string{"public_id=736993"}},
		{badID.String(), "Breaking Bad", []string{"canonical_id=" + badID.String()}},
		{"breaking-bad-" + badID.String(), "Breaking Bad", []string{"canonical_id=" + badID.String()}},
		{"the_crown", "The Crown", []string{"title=the crown"}},
		{"the-crown", "The Crown", []string{"title=the-crown", "title=the crown"}},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			store := newStore()

			got, err := Find[item](context.Background(), "test", store, identifier.Resolve(tt.segment), Scope{})

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantCalls, store.calls)
		})
	}
}

func TestFindShortPrefixReturnsFirstMatch(t *testing.T) {
	store := newStore()

	got, err := Find[item](context.Background(), "test", store, identifier.Resolve("squid-game_6a5562cf"), Scope{})

	require.NoError(t, err)
	// Two canonical IDs share the prefix; the first stored one wins.
	assert.Equal(t, "Breaking Bad", got.Title)
	assert.Equal(t, []string{"canonical_prefix=6a5562cf"}, store.calls)
}

func TestFindNotFound(t *testing.T) {
	for _, seg := range []string{"999", "unknown-title", "", "x-deadbeef", strings.Repeat("9", 25)} {
		t.Run(seg, func(t *testing.T) {
			_, err := Find[item](context.Background(), "test", newStore(), identifier.Resolve(seg), Scope{})
			assert.True(t, errors.Is(err, ErrNotFound), "segment %q: %v", seg, err)
		})
	}
}

func TestFindOverflowingPublicIDSkipsStore(t *testing.T) {
	store := newStore()

	_, err := Find[item](context.Background(), "test", store, identifier.Resolve(strings.Repeat("9", 25)), Scope{})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.calls)
}

func TestFindRespectsScope(t *testing.T) {
	seg := identifier.Resolve("2")

	_, err := Find[item](context.Background(), "test", newStore(), seg, Scope{})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := Find[item](context.Background(), "test", newStore(), seg, Scope{IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, "Unreleased", got.Title)
}

func TestFindPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	store := newStore()
	store.err = boom

	_, err := Find[item](context.Background(), "test", store, identifier.Resolve("squid-game"), Scope{})

	assert.ErrorIs(t, err, boom)
	// a transport failure stops the legacy title fallback chain
	assert.Equal(t, []string{"title=squid-game"}, store.calls)
}
