package pid

import "sync"

// Group is one capture slot of a match result. Ok is false when the pattern
// did not match the subject or the group did not participate in the match
type Group struct {
	Name  string
	Value string
	Ok    bool
}

// Groups is the full set of capture slots for one match attempt, one slot per
// capture group in the pattern regardless of match outcome
type Groups []Group

// Value returns the value of the i-th capture group ("" when absent)
func (gs Groups) Value(i int) string { return gs[i].Value }

// Has reports whether the i-th capture group participated in the match
func (gs Groups) Has(i int) bool { return gs[i].Ok }

// Named returns the value of the named capture group and whether it matched
func (gs Groups) Named(name string) (string, bool) {
	for _, g := range gs {
		if g.Name == name && g.Ok {
			return g.Value, true
		}
	}
	return "", false
}

// Matched reports whether any group participated (i.e. the pattern matched)
func (gs Groups) Matched() bool {
	for _, g := range gs {
		if g.Ok {
			return true
		}
	}
	return false
}

type matchKey struct{ pattern, subject string }

// Matcher anchors compiled patterns against subjects, caching results by the
// exact (pattern, subject) pair. Callers never branch on match arity or nil:
// a non-matching subject yields the same all-absent Groups shape (one slot per
// capture group) as a matching one yields values
type Matcher struct {
	templates *Templates
	mu        sync.Mutex
	cache     map[matchKey]Groups
}

// NewMatcher returns a Matcher backed by the given template compiler
func NewMatcher(t *Templates) *Matcher {
	return &Matcher{templates: t, cache: make(map[matchKey]Groups)}
}

// Reset discards cached match results (test isolation)
func (m *Matcher) Reset() {
	m.mu.Lock()
	m.cache = make(map[matchKey]Groups)
	m.mu.Unlock()
}

// Match anchors pattern at the start of subject and returns one Group per
// capture group. The pattern is regex syntax (expand templates first with
// Templates.Expand). Results are memoized; cached entries are immutable once
// inserted (insert-once, discard duplicates)
func (m *Matcher) Match(pattern, subject string) Groups {
	key := matchKey{pattern, subject}
	m.mu.Lock()
	if gs, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return gs
	}
	m.mu.Unlock()

	gs := m.match(pattern, subject)

	m.mu.Lock()
	if prev, ok := m.cache[key]; ok {
		gs = prev
	} else {
		m.cache[key] = gs
	}
	m.mu.Unlock()
	return gs
}

func (m *Matcher) match(pattern, subject string) Groups {
	p := m.templates.Compile(pattern)
	gs := make(Groups, p.NumGroups())
	for i, name := range p.names {
		gs[i].Name = name
	}
	// anchor at the start only, like a classic regex "match"
	loc := p.re.FindStringSubmatchIndex(subject)
	if loc == nil || loc[0] != 0 {
		return gs
	}
	for i := range gs {
		lo, hi := loc[2*(i+1)], loc[2*(i+1)+1]
		if lo < 0 {
			continue
		}
		gs[i].Value = subject[lo:hi]
		gs[i].Ok = true
	}
	return gs
}
