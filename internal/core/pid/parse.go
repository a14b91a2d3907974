package pid

import (
	"strings"

	perr "ifcb/internal/platform/errors"
)

// Schema versions of the identifier grammar (and instrument revision)
const (
	SchemaVersion1 = 1 // legacy IFCB... pids
	SchemaVersion2 = 2 // current D... pids
)

// Timestamp layouts paired with the raw timestamp substring of each schema
const (
	TimestampLayoutV1 = "2006_002_150405" // year_dayofyear_HHMMSS
	TimestampLayoutV2 = "20060102T150405"
)

// identifier grammars, as timestamp templates
const (
	grammarV1 = `(IFCB1_(yyyy_DDD_HHMMSS))(any)`
	grammarV2 = `(D(yyyymmddTHHMMSS)_IFCB111)(any)`
)

// auxiliary raw regexes (not templates)
const (
	namespacePattern = `(.*/)?(.*)`
	tsLabelPattern   = `(?:.*/)?(.*)/$`
	// optional _target, optional _product, optional .extension
	tpePattern = `(?:_([0-9]+))?(?:_([a-zA-Z][a-zA-Z0-9_]*))?(?:\.([a-zA-Z][a-zA-Z0-9]*))?`
)

// Parsed holds the fields extracted from a pid. The shape is fixed; absent
// optional fields are empty strings
type Parsed struct {
	// Pid is the pid minus any Windows-style backslash directory prefix
	Pid string
	// Namespace is any leading path/URL prefix, including the trailing slash
	Namespace string
	// TsLabel is the last path segment of the namespace (time series label)
	TsLabel string
	// BinLid is the bin identifier, excluding any target/product/extension
	BinLid string
	// Lid is BinLid plus the target suffix when a target is present
	Lid string
	// Timestamp is the raw timestamp substring
	Timestamp string
	// TimestampLayout is the Go time layout matching Timestamp
	TimestampLayout string
	// Date and time component substrings. Schema 1 has no Month/Day;
	// schema 2 has no DayOfYear
	Year, Month, Day, DayOfYear string
	Hour, Minute, Second        string
	// Instrument is the instrument number substring (zero padding preserved)
	Instrument string
	// SchemaVersion is 1 or 2
	SchemaVersion int
	// Yearday concatenates year and day of year (v1) or year, month, and
	// day (v2)
	Yearday string
	// Target is the target number substring, empty for bin-level pids
	Target string
	// Product is the product type identifier, "raw" when unspecified
	Product string
	// Extension is the extension without its leading dot, empty when absent
	Extension string
}

// HasTarget reports whether the pid addresses a single target
func (p *Parsed) HasTarget() bool { return p.Target != "" }

// ProductRaw is the product identifier of unprocessed acquisition data
const ProductRaw = "raw"

// Parser decodes pids by trying the two identifier grammars in order.
// A Parser owns its template and match caches; use the package-level Parse
// for the shared instance
type Parser struct {
	templates *Templates
	matcher   *Matcher
}

// NewParser returns a Parser with fresh caches
func NewParser() *Parser {
	t := NewTemplates()
	return &Parser{templates: t, matcher: NewMatcher(t)}
}

// Reset clears the parser's caches (test isolation)
func (p *Parser) Reset() {
	p.templates.Reset()
	p.matcher.Reset()
}

// Parse extracts the fields of a pid. The pid may carry a pathname or URL
// prefix and may include a target number, product identifier, and extension.
//
// Example pids:
//
//	D20160714T023910_IFCB101
//	IFCB5_2012_028_081515
//	http://mysite.org/data/D20150321T124431_IFCB103
//	D20160714T023910_IFCB101_00014.png
//	/my/directory/D20160603T002950_IFCB101_blob.zip
//
// Returns an invalid-pid error when neither grammar matches; no partial
// result is ever produced
func (p *Parser) Parse(pid string) (*Parsed, error) {
	pid = stripWinDirs(pid)

	ns := p.matcher.Match(namespacePattern, pid)
	namespace, suffix := ns.Value(0), ns.Value(1)

	out := &Parsed{Pid: pid, Namespace: namespace, Product: ProductRaw}

	if namespace != "" {
		if tl := p.matcher.Match(tsLabelPattern, namespace); tl.Has(0) {
			out.TsLabel = tl.Value(0)
		}
	}

	var tpe string
	// try the v2 identifier grammar first
	if gs := p.matcher.Match(p.templates.Expand(grammarV2), suffix); gs.Has(0) {
		out.SchemaVersion = SchemaVersion2
		out.TimestampLayout = TimestampLayoutV2
		out.BinLid = gs.Value(0)
		out.Timestamp = gs.Value(1)
		out.Year, out.Month, out.Day = gs.Value(2), gs.Value(3), gs.Value(4)
		out.Hour, out.Minute, out.Second = gs.Value(5), gs.Value(6), gs.Value(7)
		out.Instrument = gs.Value(8)
		out.Yearday = out.Year + out.Month + out.Day
		tpe = gs.Value(9)
	} else if gs := p.matcher.Match(p.templates.Expand(grammarV1), suffix); gs.Has(0) {
		out.SchemaVersion = SchemaVersion1
		out.TimestampLayout = TimestampLayoutV1
		out.BinLid = gs.Value(0)
		out.Instrument = gs.Value(1)
		out.Timestamp = gs.Value(2)
		out.Year, out.DayOfYear = gs.Value(3), gs.Value(4)
		out.Hour, out.Minute, out.Second = gs.Value(5), gs.Value(6), gs.Value(7)
		out.Yearday = out.Year + "_" + out.DayOfYear
		tpe = gs.Value(8)
	} else {
		return nil, perr.InvalidPidf("invalid pid: %s", pid)
	}

	// target, product, extension
	gs := p.matcher.Match(tpePattern, tpe)
	if gs.Has(0) {
		out.Target = gs.Value(0)
	}
	if gs.Has(1) {
		out.Product = gs.Value(1)
	}
	if gs.Has(2) {
		out.Extension = gs.Value(2)
	}

	if out.Target != "" {
		out.Lid = out.BinLid + "_" + out.Target
	} else {
		out.Lid = out.BinLid
	}
	return out, nil
}

// stripWinDirs drops everything up to and including the last backslash
func stripWinDirs(pid string) string {
	if i := strings.LastIndexByte(pid, '\\'); i >= 0 {
		return pid[i+1:]
	}
	return pid
}
