package pid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "ifcb/internal/platform/errors"
)

func TestParseV2Bare(t *testing.T) {
	d, err := Parse("D20160714T023910_IFCB101")
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion2, d.SchemaVersion)
	assert.Equal(t, "D20160714T023910_IFCB101", d.BinLid)
	assert.Equal(t, d.BinLid, d.Lid, "no target: lid equals bin lid")
	assert.Equal(t, "20160714T023910", d.Timestamp)
	assert.Equal(t, TimestampLayoutV2, d.TimestampLayout)
	assert.Equal(t, "2016", d.Year)
	assert.Equal(t, "07", d.Month)
	assert.Equal(t, "14", d.Day)
	assert.Equal(t, "02", d.Hour)
	assert.Equal(t, "39", d.Minute)
	assert.Equal(t, "10", d.Second)
	assert.Equal(t, "101", d.Instrument)
	assert.Equal(t, "20160714", d.Yearday)
	assert.Equal(t, "", d.Target)
	assert.Equal(t, ProductRaw, d.Product)
	assert.Equal(t, "", d.Extension)
	assert.Equal(t, "", d.Namespace)
	assert.Equal(t, "", d.TsLabel)
}

func TestParseV2Target(t *testing.T) {
	d, err := Parse("D20160714T023910_IFCB101_00014.png")
	require.NoError(t, err)

	assert.Equal(t, "00014", d.Target)
	assert.Equal(t, "D20160714T023910_IFCB101", d.BinLid)
	assert.Equal(t, d.BinLid+"_00014", d.Lid)
	assert.Equal(t, "png", d.Extension)
	assert.Equal(t, ProductRaw, d.Product)
}

func TestParseV2Product(t *testing.T) {
	d, err := Parse("/my/directory/D20160603T002950_IFCB101_blob.zip")
	require.NoError(t, err)

	assert.Equal(t, "/my/directory/", d.Namespace)
	assert.Equal(t, "directory", d.TsLabel)
	assert.Equal(t, "D20160603T002950_IFCB101", d.BinLid)
	assert.Equal(t, "blob", d.Product)
	assert.Equal(t, "zip", d.Extension)
	assert.Equal(t, "", d.Target)
}

func TestParseV2TargetAndProduct(t *testing.T) {
	d, err := Parse("D20160714T023910_IFCB101_00014_blob.zip")
	require.NoError(t, err)

	assert.Equal(t, "00014", d.Target)
	assert.Equal(t, "blob", d.Product)
	assert.Equal(t, "zip", d.Extension)
	assert.Equal(t, "D20160714T023910_IFCB101_00014", d.Lid)
}

func TestParseV1(t *testing.T) {
	d, err := Parse("IFCB5_2012_028_081515")
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion1, d.SchemaVersion)
	assert.Equal(t, "IFCB5_2012_028_081515", d.BinLid)
	assert.Equal(t, "5", d.Instrument)
	assert.Equal(t, "2012_028_081515", d.Timestamp)
	assert.Equal(t, TimestampLayoutV1, d.TimestampLayout)
	assert.Equal(t, "2012", d.Year)
	assert.Equal(t, "028", d.DayOfYear)
	assert.Equal(t, "", d.Month, "schema 1 has no month capture")
	assert.Equal(t, "08", d.Hour)
	assert.Equal(t, "15", d.Minute)
	assert.Equal(t, "15", d.Second)
	assert.Equal(t, "2012_028", d.Yearday)
	assert.Equal(t, ProductRaw, d.Product)
}

func TestParseV1Extension(t *testing.T) {
	d, err := Parse("IFCB5_2012_028_081515.adc")
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion1, d.SchemaVersion)
	assert.Equal(t, "adc", d.Extension)
	assert.Equal(t, ProductRaw, d.Product)
}

func TestParseURLPrefix(t *testing.T) {
	d, err := Parse("http://mysite.org/data/D20150321T124431_IFCB103")
	require.NoError(t, err)
	assert.Equal(t, "http://mysite.org/data/", d.Namespace)
	assert.Equal(t, "data", d.TsLabel)
	assert.Equal(t, "D20150321T124431_IFCB103", d.BinLid)
}

func TestParseWindowsPrefix(t *testing.T) {
	d, err := Parse(`C:\data\D20160714T023910_IFCB101`)
	require.NoError(t, err)
	assert.Equal(t, "D20160714T023910_IFCB101", d.Pid)
	assert.Equal(t, "", d.Namespace)
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		"",
		"not a pid",
		"D2016_IFCB101",
		"IFCB101",
		// missing the underscore between day of year and time; the schema-1
		// grammar requires it (a commonly misquoted example)
		"IFCB3_2008_013423.adc",
		// hour 42 out of range
		"D20160714T423910_IFCB101",
		// month 13 out of range
		"D20161314T023910_IFCB101",
	}
	for _, s := range invalid {
		d, err := Parse(s)
		require.Error(t, err, "pid %q", s)
		assert.Nil(t, d, "no partial result for %q", s)
		assert.True(t, perr.IsInvalidPid(err), "pid %q: %v", s, err)
	}
}

func TestParseNoStringMatchesBothGrammars(t *testing.T) {
	// v2 pids start with "D", v1 pids with "IFCB": disjoint by construction
	for _, s := range []string{"D20160714T023910_IFCB101", "IFCB5_2012_028_081515"} {
		d, err := Parse(s)
		require.NoError(t, err)
		other := SchemaVersion1
		if s[0] == 'I' {
			other = SchemaVersion2
		}
		assert.NotEqual(t, other, d.SchemaVersion)
	}
}

func TestParseLaxDayValidation(t *testing.T) {
	// the grammar is lexical: day 31 is accepted for any month, and day of
	// year up to 399; preserved from the original convention
	d, err := Parse("D20160231T023910_IFCB101")
	require.NoError(t, err)
	assert.Equal(t, "31", d.Day)

	d, err = Parse("IFCB5_2012_399_081515")
	require.NoError(t, err)
	assert.Equal(t, "399", d.DayOfYear)
}

func TestPidRoundTrip(t *testing.T) {
	for _, s := range []string{
		"D20160714T023910_IFCB101",
		"http://mysite.org/data/D20150321T124431_IFCB103",
		"definitely not a pid",
	} {
		assert.Equal(t, s, New(s).String(), "raw string preserved verbatim")
	}
}

func TestPidValidNeverErrors(t *testing.T) {
	assert.True(t, New("D20160714T023910_IFCB101").Valid())
	assert.False(t, New("bogus").Valid())
	assert.False(t, New("").Valid())
}

func TestPidLazyResolvesOnce(t *testing.T) {
	p := New("D20160714T023910_IFCB101")
	a, err := p.Parsed()
	require.NoError(t, err)
	b, err := p.Parsed()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestPidTimestamp(t *testing.T) {
	ts, err := New("D20160714T023910_IFCB101").Timestamp()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, 7, 14, 2, 39, 10, 0, time.UTC), ts)

	ts, err = New("IFCB5_2012_028_081515").Timestamp()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2012, 1, 28, 8, 15, 15, 0, time.UTC), ts)

	_, err = New("bogus").Timestamp()
	require.Error(t, err)
}

func TestPidOrderByRawOnly(t *testing.T) {
	a := New("D20160714T023910_IFCB101")
	b := New("http://somewhere/D20160714T023910_IFCB101")
	// same parsed bin, different raw spelling: ordered, not equal
	assert.True(t, a.Less(b))
	assert.Negative(t, a.Compare(b))
	assert.Zero(t, a.Compare(New("D20160714T023910_IFCB101")))
}

func TestNewParsedEager(t *testing.T) {
	_, err := NewParsed("bogus")
	require.Error(t, err)

	p, err := NewParsed("D20160714T023910_IFCB101")
	require.NoError(t, err)
	assert.True(t, p.Valid())
}
