package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandReference(t *testing.T) {
	tp := NewTemplates()

	cases := []struct {
		template string
		want     string
	}{
		{"Dyyyymm", `D(?P<yyyy>[0-9]{4})(?P<mm>0[1-9]|1[0-2])`},
		{"yyyyDDD", `(?P<yyyy>[0-9]{4})(?P<DDD>[0-3][0-9][0-9])`},
		{
			"(IFCB1_(yyyy_DDD_HHMMSS))(any)",
			`(IFCB(?P<n1>[0-9]+)_((?P<yyyy>[0-9]{4})_(?P<DDD>[0-3][0-9][0-9])_` +
				`(?P<HH>[0-1][0-9]|2[0-3])(?P<MM>[0-5][0-9])(?P<SS>[0-5][0-9])))(.*)`,
		},
		{
			"(D(yyyymmddTHHMMSS)_IFCB111)(any)",
			`(D((?P<yyyy>[0-9]{4})(?P<mm>0[1-9]|1[0-2])(?P<dd>0[1-9]|[1-2][0-9]|3[0-1])T` +
				`(?P<HH>[0-1][0-9]|2[0-3])(?P<MM>[0-5][0-9])(?P<SS>[0-5][0-9]))_IFCB(?P<n1>[0-9]+))(.*)`,
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tp.Expand(c.template), "template %q", c.template)
	}
}

func TestExpandTokens(t *testing.T) {
	tp := NewTemplates()

	// digit runs: each maximal run of one digit becomes its own group
	assert.Equal(t, `IFCB(?P<n1>[0-9]+)`, tp.Expand("IFCB111"))
	assert.Equal(t, `(?P<n8>[0-9]+)`, tp.Expand("88"))
	assert.Equal(t, `(?P<n1>[0-9]+)(?P<n2>[0-9]+)`, tp.Expand("12"))

	// milliseconds, digits, identifiers, extension, dots, any
	assert.Equal(t, `(?P<sss>[0-9]+)`, tp.Expand("sss"))
	assert.Equal(t, `[0-9]+`, tp.Expand("#"))
	assert.Equal(t, `[a-zA-Z][a-zA-Z0-9_]*`, tp.Expand("i"))
	assert.Equal(t, `(?:\.(?P<ext>[a-zA-Z][a-zA-Z0-9_]*))`, tp.Expand(".ext"))
	assert.Equal(t, `\.`, tp.Expand("."))
	assert.Equal(t, `.`, tp.Expand(`\.`))
	assert.Equal(t, `.*`, tp.Expand("any"))
}

func TestExpandDyyyymmMatches(t *testing.T) {
	tp := NewTemplates()
	p := tp.Compile(tp.Expand("Dyyyymm"))

	m := NewMatcher(tp)
	gs := m.Match(tp.Expand("Dyyyymm"), "D20230704")
	require.True(t, gs.Matched())
	y, ok := gs.Named("yyyy")
	require.True(t, ok)
	assert.Equal(t, "2023", y)
	mo, ok := gs.Named("mm")
	require.True(t, ok)
	assert.Equal(t, "07", mo)

	// non-digit month is rejected
	gs = m.Match(tp.Expand("Dyyyymm"), "D2023AB")
	assert.False(t, gs.Matched())
	assert.Equal(t, p.NumGroups(), len(gs))
}

func TestCompileIsMemoized(t *testing.T) {
	tp := NewTemplates()
	a := tp.Compile(`(?P<yyyy>[0-9]{4})`)
	b := tp.Compile(`(?P<yyyy>[0-9]{4})`)
	require.Same(t, a, b, "same pattern must yield the identical handle")

	tp.Reset()
	c := tp.Compile(`(?P<yyyy>[0-9]{4})`)
	assert.NotSame(t, a, c, "Reset must discard cached handles")
}

func TestExpandIsMemoized(t *testing.T) {
	tp := NewTemplates()
	first := tp.Expand("Dyyyymm")
	second := tp.Expand("Dyyyymm")
	assert.Equal(t, first, second)
}
