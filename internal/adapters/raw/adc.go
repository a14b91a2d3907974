package raw

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"ifcb/internal/core/adc"
	perr "ifcb/internal/platform/errors"
)

// ReadADC parses a record file into a frame. Rows are unlabeled CSV of
// numeric columns; target numbers are the 1-based row numbers
func ReadADC(path string, schema *adc.Schema) (*adc.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "open adc")
	}
	defer f.Close() //nolint:errcheck // read-only

	return ParseADC(f, schema)
}

// ParseADC parses record CSV from a reader
func ParseADC(r io.Reader, schema *adc.Schema) (*adc.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = schema.NumColumns()

	frame := adc.NewFrame(schema)
	target := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return frame, nil
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeFormat, "adc row %d", target+1)
		}
		target++
		rec := make(adc.Record, len(row))
		for i, field := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, perr.Formatf("adc row %d col %d: bad number %q", target, i, field)
			}
			rec[i] = v
		}
		if err := frame.Append(target, rec); err != nil {
			return nil, err
		}
	}
}
