// Package pid parses IFCB permanent identifiers (pids): compact, versioned
// filename/URL-style strings encoding a bin's timestamp, instrument, and
// optional target, product, and extension
package pid

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// CompiledPattern is an immutable compiled timestamp pattern.
// Group names are positional; unnamed groups have an empty name
type CompiledPattern struct {
	re    *regexp.Regexp
	names []string
}

// NumGroups returns the number of capture groups in the pattern
func (p *CompiledPattern) NumGroups() int { return len(p.names) }

// GroupNames returns the capture group names in positional order
func (p *CompiledPattern) GroupNames() []string { return p.names }

// String returns the underlying regular expression source
func (p *CompiledPattern) String() string { return p.re.String() }

// Templates expands timestamp templates into regular expressions and compiles
// them, caching both steps. The caches are owned by the instance (no ambient
// globals) and unbounded; templates are few and fixed, so no eviction is needed.
// Entries are inserted once and never updated, so concurrent readers are safe
type Templates struct {
	mu       sync.Mutex
	expanded map[string]string
	compiled map[string]*CompiledPattern
}

// NewTemplates returns an empty template compiler
func NewTemplates() *Templates {
	return &Templates{
		expanded: make(map[string]string),
		compiled: make(map[string]*CompiledPattern),
	}
}

// Reset discards all cached expansions and compilations (test isolation)
func (t *Templates) Reset() {
	t.mu.Lock()
	t.expanded = make(map[string]string)
	t.compiled = make(map[string]*CompiledPattern)
	t.mu.Unlock()
}

// Expand converts a timestamp template into regex syntax.
//
// The template is ordinary regex syntax except for special tokens that expand
// to groups matching typical timestamp shapes:
//
//   - a run of one repeated decimal digit (e.g. "111", "88") - a decimal
//     number, captured under the name "n" + digit
//   - a run of "s" - milliseconds, captured as "sss"
//   - "yyyy" - four-digit year
//   - "mm" - two-digit month (01-12)
//   - "dd" - two-digit day of month (01-31, not validated per month)
//   - "DDD" - three-digit day of year (lexical range 000-399)
//   - "HH" / "MM" / "SS" - two-digit hour / minute / second
//   - "#" - a string of digits (non-capturing)
//   - "i" - an identifier such as "jpg2000" (non-capturing)
//   - ".ext" - a file extension, captured as "ext"
//   - "." - a literal dot
//   - `\.` - a regex dot (matches any character)
//   - "any" - a regex ".*"
//
// Example: Expand("Dyyyymm") == `D(?P<yyyy>[0-9]{4})(?P<mm>0[1-9]|1[0-2])`.
//
// Token passes run in the fixed order above. Each substitution is spliced in
// through a placeholder so that later passes never re-match text injected by
// earlier ones; reordering the passes changes the output for templates that
// combine digit runs with time tokens
func (t *Templates) Expand(template string) string {
	t.mu.Lock()
	if s, ok := t.expanded[template]; ok {
		t.mu.Unlock()
		return s
	}
	t.mu.Unlock()

	s := expandTemplate(template)

	t.mu.Lock()
	if prev, ok := t.expanded[template]; ok {
		s = prev // insert-once: keep the first expansion
	} else {
		t.expanded[template] = s
	}
	t.mu.Unlock()
	return s
}

// Compile compiles a regex pattern (commonly the output of Expand) with
// caching. A malformed pattern is programmer error and panics
func (t *Templates) Compile(pattern string) *CompiledPattern {
	t.mu.Lock()
	if p, ok := t.compiled[pattern]; ok {
		t.mu.Unlock()
		return p
	}
	t.mu.Unlock()

	re := regexp.MustCompile(pattern)
	p := &CompiledPattern{re: re, names: re.SubexpNames()[1:]}

	t.mu.Lock()
	if prev, ok := t.compiled[pattern]; ok {
		p = prev
	} else {
		t.compiled[pattern] = p
	}
	t.mu.Unlock()
	return p
}

// templatePass rewrites every match of re using expand, splicing the result in
// as an inert placeholder
type templatePass struct {
	re     *regexp.Regexp
	expand func(match string) string
}

var passes = []templatePass{
	// runs of one identical digit, e.g. 111 or 88; "12" is two runs (n1, n2)
	{regexp.MustCompile(`[0-9]+`), expandDigitRuns},
	{regexp.MustCompile(`s+`), constant(`(?P<sss>[0-9]+)`)},
	{regexp.MustCompile(`yyyy`), constant(`(?P<yyyy>[0-9]{4})`)},
	{regexp.MustCompile(`mm`), constant(`(?P<mm>0[1-9]|1[0-2])`)},
	{regexp.MustCompile(`dd`), constant(`(?P<dd>0[1-9]|[1-2][0-9]|3[0-1])`)},
	{regexp.MustCompile(`DDD`), constant(`(?P<DDD>[0-3][0-9][0-9])`)},
	{regexp.MustCompile(`HH`), constant(`(?P<HH>[0-1][0-9]|2[0-3])`)},
	{regexp.MustCompile(`MM`), constant(`(?P<MM>[0-5][0-9])`)},
	{regexp.MustCompile(`SS`), constant(`(?P<SS>[0-5][0-9])`)},
	{regexp.MustCompile(`#`), constant(`[0-9]+`)},
	{regexp.MustCompile(`i`), constant(`[a-zA-Z][a-zA-Z0-9_]*`)},
	{regexp.MustCompile(`\.ext`), constant(`(?:\.(?P<ext>[a-zA-Z][a-zA-Z0-9_]*))`)},
	// one pass for both dot forms so the escape cannot be re-consumed:
	// `\.` means "any character", a bare `.` is a literal dot
	{regexp.MustCompile(`\\\.|\.`), func(m string) string {
		if m == `\.` {
			return `.`
		}
		return `\.`
	}},
	{regexp.MustCompile(`any`), constant(`.*`)},
}

func constant(s string) func(string) string {
	return func(string) string { return s }
}

// expandDigitRuns splits a digit sequence into maximal runs of the same digit
// and emits one named group per run
func expandDigitRuns(m string) string {
	var b strings.Builder
	for i := 0; i < len(m); {
		j := i
		for j < len(m) && m[j] == m[i] {
			j++
		}
		fmt.Fprintf(&b, `(?P<n%c>[0-9]+)`, m[i])
		i = j
	}
	return b.String()
}

// placeholder delimiters; NUL never appears in templates
const phOpen, phClose = "\x00", "\x01"

func expandTemplate(template string) string {
	var injected []string
	s := template
	for _, p := range passes {
		s = p.re.ReplaceAllStringFunc(s, func(m string) string {
			injected = append(injected, p.expand(m))
			return fmt.Sprintf("%s%d%s", phOpen, len(injected)-1, phClose)
		})
	}
	// splice the injected fragments back in
	var b strings.Builder
	for len(s) > 0 {
		open := strings.Index(s, phOpen)
		if open < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:open])
		close_ := strings.Index(s, phClose)
		idx := 0
		for _, c := range []byte(s[open+1 : close_]) {
			idx = idx*10 + int(c-'0')
		}
		b.WriteString(injected[idx])
		s = s[close_+1:]
	}
	return b.String()
}
