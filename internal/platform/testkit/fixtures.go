package testkit

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"ifcb/internal/core/adc"
)

// RawTarget describes one synthetic target for fixture filesets. Pix, when
// set, must be Width*Height bytes; when nil the image bytes are zeros
type RawTarget struct {
	Trigger     int
	Width       int
	Height      int
	RunTime     float64
	InhibitTime float64
	Pix         []byte
}

// WriteFileset writes a synthetic .adc/.hdr/.roi triplet for lid under dir
// and returns the extensionless base path. Record start bytes are laid out
// to match the concatenated roi stream
func WriteFileset(t *testing.T, dir, lid string, version int, header map[string]string, targets []RawTarget) string {
	t.Helper()

	schema, err := adc.ByVersion(version)
	if err != nil {
		t.Fatalf("schema version %d: %v", version, err)
	}

	var csvb, roib strings.Builder
	offset := 0
	for _, tg := range targets {
		row := make([]string, schema.NumColumns())
		for i := range row {
			row[i] = "0"
		}
		set := func(col int, v float64) {
			row[col] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		set(schema.Trigger, float64(tg.Trigger))
		set(schema.ROIWidth, float64(tg.Width))
		set(schema.ROIHeight, float64(tg.Height))
		set(schema.StartByte, float64(offset))
		set(schema.RunTime, tg.RunTime)
		set(schema.InhibitTime, tg.InhibitTime)
		csvb.WriteString(strings.Join(row, ","))
		csvb.WriteByte('\n')

		n := tg.Width * tg.Height
		pix := tg.Pix
		if pix == nil {
			pix = make([]byte, n)
		}
		if len(pix) != n {
			t.Fatalf("target %d: %d pix bytes for %dx%d", tg.Trigger, len(pix), tg.Width, tg.Height)
		}
		roib.Write(pix)
		offset += n
	}

	var hdrb strings.Builder
	for _, k := range sortedKeys(header) {
		hdrb.WriteString(k)
		hdrb.WriteString(": ")
		hdrb.WriteString(header[k])
		hdrb.WriteByte('\n')
	}

	base := filepath.Join(dir, lid)
	mustWrite(t, base+".adc", csvb.String())
	mustWrite(t, base+".hdr", hdrb.String())
	mustWrite(t, base+".roi", roib.String())
	return base
}

func mustWrite(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
