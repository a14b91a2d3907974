// Package raw reads the instrument's native file formats: the .adc/.hdr/.roi
// triplet written per sampling event, plus discovery of triplets under a
// data directory tree
package raw

import (
	"os"
	"path/filepath"

	"ifcb/internal/core/pid"
)

// Fileset locates one bin's triplet by its extensionless base path.
// The lid is the base name of that path
type Fileset struct {
	basepath string
}

// NewFileset wraps a base path (no extension) as a fileset
func NewFileset(basepath string) *Fileset {
	return &Fileset{basepath: basepath}
}

// Lid returns the bin identifier encoded in the base name
func (f *Fileset) Lid() string { return filepath.Base(f.basepath) }

// Pid returns the lid wrapped as a pid (lazily parsed)
func (f *Fileset) Pid() *pid.Pid { return pid.New(f.Lid()) }

// ADCPath returns the path of the record file
func (f *Fileset) ADCPath() string { return f.basepath + ".adc" }

// HDRPath returns the path of the header file
func (f *Fileset) HDRPath() string { return f.basepath + ".hdr" }

// ROIPath returns the path of the image byte stream
func (f *Fileset) ROIPath() string { return f.basepath + ".roi" }

// Exists reports whether all three member files exist
func (f *Fileset) Exists() bool {
	for _, p := range []string{f.ADCPath(), f.HDRPath(), f.ROIPath()} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// Sizes holds the on-disk size of each member file in bytes
type Sizes struct {
	ADC int64
	HDR int64
	ROI int64
}

// Total returns the summed size of the triplet
func (s Sizes) Total() int64 { return s.ADC + s.HDR + s.ROI }

// Sizes stats the member files
func (f *Fileset) Sizes() (Sizes, error) {
	var s Sizes
	for _, m := range []struct {
		path string
		dst  *int64
	}{
		{f.ADCPath(), &s.ADC},
		{f.HDRPath(), &s.HDR},
		{f.ROIPath(), &s.ROI},
	} {
		fi, err := os.Stat(m.path)
		if err != nil {
			return Sizes{}, err
		}
		*m.dst = fi.Size()
	}
	return s, nil
}

