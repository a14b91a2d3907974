package pid

import (
	"strings"
	"sync"
	"time"
)

// defaultParser backs the package-level helpers; its caches are shared
// process-wide. Construct a Parser directly for isolated caches
var defaultParser = NewParser()

// Parse parses a pid with the shared parser
func Parse(s string) (*Parsed, error) { return defaultParser.Parse(s) }

// Pid is the permanent identifier of a bin. It wraps the raw string and
// resolves its parsed fields exactly once, on first use; the raw string is
// preserved verbatim regardless of parse outcome.
//
// Pids order by their raw string only. Two pids with identical parsed fields
// but different raw spellings (say, one URL-prefixed) are not equal under
// this order
type Pid struct {
	raw    string
	parser *Parser

	once   sync.Once
	parsed *Parsed
	err    error
}

// New wraps a raw pid string without parsing it; parsing is deferred until a
// derived field is first needed
func New(raw string) *Pid {
	return &Pid{raw: raw, parser: defaultParser}
}

// NewWithParser is New with an explicit parser (isolated caches)
func NewWithParser(raw string, p *Parser) *Pid {
	return &Pid{raw: raw, parser: p}
}

// NewParsed wraps and eagerly parses a raw pid string
func NewParsed(raw string) (*Pid, error) {
	p := New(raw)
	if _, err := p.Parsed(); err != nil {
		return nil, err
	}
	return p, nil
}

// String returns the raw pid string verbatim
func (p *Pid) String() string { return p.raw }

// Parsed resolves and returns the parsed fields. Resolution happens at most
// once per Pid; both the result and any error are cached
func (p *Pid) Parsed() (*Parsed, error) {
	p.once.Do(func() {
		p.parsed, p.err = p.parser.Parse(p.raw)
	})
	return p.parsed, p.err
}

// Valid reports whether the pid matches one of the identifier grammars.
// It never returns an error: the invalid-identifier failure is converted to
// false, and this is the only place such errors are swallowed
func (p *Pid) Valid() bool {
	_, err := p.Parsed()
	return err == nil
}

// Timestamp converts the pid's timestamp substring to an absolute time,
// assuming UTC (the layouts carry no timezone)
func (p *Pid) Timestamp() (time.Time, error) {
	d, err := p.Parsed()
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(d.TimestampLayout, d.Timestamp, time.UTC)
}

// BinLid returns the bin-level identifier
func (p *Pid) BinLid() (string, error) {
	d, err := p.Parsed()
	if err != nil {
		return "", err
	}
	return d.BinLid, nil
}

// Lid returns the identifier including any target suffix
func (p *Pid) Lid() (string, error) {
	d, err := p.Parsed()
	if err != nil {
		return "", err
	}
	return d.Lid, nil
}

// SchemaVersion returns the identifier schema version (1 or 2)
func (p *Pid) SchemaVersion() (int, error) {
	d, err := p.Parsed()
	if err != nil {
		return 0, err
	}
	return d.SchemaVersion, nil
}

// Compare orders pids lexicographically by raw string
func (p *Pid) Compare(o *Pid) int { return strings.Compare(p.raw, o.raw) }

// Less reports whether p sorts before o (raw string order)
func (p *Pid) Less(o *Pid) bool { return p.raw < o.raw }
