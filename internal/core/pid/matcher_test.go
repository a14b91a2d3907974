package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchShapeIsStable(t *testing.T) {
	tp := NewTemplates()
	m := NewMatcher(tp)

	pattern := `(a+)(b+)(c+)`

	matched := m.Match(pattern, "aabbcc")
	missed := m.Match(pattern, "zzz")
	empty := m.Match(pattern, "")

	// one slot per capture group, match or no match
	require.Len(t, matched, 3)
	require.Len(t, missed, 3)
	require.Len(t, empty, 3)

	assert.True(t, matched.Matched())
	assert.False(t, missed.Matched())
	assert.False(t, empty.Matched())
	for i := range missed {
		assert.False(t, missed.Has(i))
		assert.Equal(t, "", missed.Value(i))
	}
}

func TestMatchAnchorsAtStart(t *testing.T) {
	tp := NewTemplates()
	m := NewMatcher(tp)

	// a match that exists mid-string is not a match
	gs := m.Match(`(b+)`, "aaabbb")
	assert.False(t, gs.Matched())

	gs = m.Match(`(a+)`, "aaabbb")
	require.True(t, gs.Matched())
	assert.Equal(t, "aaa", gs.Value(0))
}

func TestMatchOptionalGroups(t *testing.T) {
	tp := NewTemplates()
	m := NewMatcher(tp)

	gs := m.Match(`(x)?(y+)`, "yy")
	require.True(t, gs.Matched())
	assert.False(t, gs.Has(0), "unparticipating optional group is absent")
	assert.True(t, gs.Has(1))
	assert.Equal(t, "yy", gs.Value(1))
}

func TestMatchIsMemoized(t *testing.T) {
	tp := NewTemplates()
	m := NewMatcher(tp)

	a := m.Match(`(a+)`, "aaa")
	b := m.Match(`(a+)`, "aaa")
	assert.Equal(t, a, b)

	m.Reset()
	c := m.Match(`(a+)`, "aaa")
	assert.Equal(t, a, c, "Reset changes identity, not values")
}

func TestMatchNamedLookup(t *testing.T) {
	tp := NewTemplates()
	m := NewMatcher(tp)

	gs := m.Match(`(?P<yyyy>[0-9]{4})-(?P<mm>[0-9]{2})`, "2016-07")
	y, ok := gs.Named("yyyy")
	require.True(t, ok)
	assert.Equal(t, "2016", y)
	_, ok = gs.Named("nope")
	assert.False(t, ok)
}
