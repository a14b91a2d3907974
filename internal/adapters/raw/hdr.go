package raw

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"ifcb/internal/core/hdr"
	perr "ifcb/internal/platform/errors"
)

// ReadHDR parses a header file into a header mapping. Header files are
// Latin-1 text of "key: value" lines; anything else is ignored
func ReadHDR(path string) (hdr.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return hdr.Header{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "open hdr")
	}
	defer f.Close() //nolint:errcheck // read-only

	return ParseHDR(f)
}

// ParseHDR parses header text from a reader (Latin-1)
func ParseHDR(r io.Reader) (hdr.Header, error) {
	sc := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(r))
	kv := make(map[string]string)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		k, v, ok := strings.Cut(line, ":")
		if !ok || k == "" {
			continue
		}
		kv[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := sc.Err(); err != nil {
		return hdr.Header{}, perr.Wrap(err, perr.ErrorCodeFormat, "read hdr")
	}
	return hdr.New(kv), nil
}
