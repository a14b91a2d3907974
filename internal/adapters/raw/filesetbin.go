package raw

import (
	"os"
	"sync"

	"ifcb/internal/core/adc"
	"ifcb/internal/core/bin"
	"ifcb/internal/core/hdr"
	"ifcb/internal/core/pid"
	perr "ifcb/internal/platform/errors"
)

// roi handle state. Idle bins serve image reads through a transient
// open/read/close; released bins refuse them until re-acquired
type roiState int

const (
	roiIdle roiState = iota
	roiOpen
	roiReleased
)

// FilesetBin is a bin backing over an on-disk triplet. The adc and hdr
// members are read in full on first use; roi bytes are read per image.
// Acquire holds the roi file open across reads, Release closes it
type FilesetBin struct {
	fs *Fileset
	p  *pid.Pid

	frameOnce sync.Once
	frame     *adc.Frame
	frameErr  error

	mu    sync.Mutex
	state roiState
	roi   *os.File
}

// NewFilesetBin wraps a fileset as a lazily-read bin
func NewFilesetBin(fs *Fileset) *bin.Bin {
	return bin.New(&FilesetBin{fs: fs, p: fs.Pid()})
}

// Fileset returns the underlying triplet
func (b *FilesetBin) Fileset() *Fileset { return b.fs }

// Pid returns the bin's identifier
func (b *FilesetBin) Pid() *pid.Pid { return b.p }

// Frame reads and caches the record file. The schema follows the pid's
// schema version
func (b *FilesetBin) Frame() (*adc.Frame, error) {
	b.frameOnce.Do(func() {
		v, err := b.p.SchemaVersion()
		if err != nil {
			b.frameErr = err
			return
		}
		schema, err := adc.ByVersion(v)
		if err != nil {
			b.frameErr = err
			return
		}
		b.frame, b.frameErr = ReadADC(b.fs.ADCPath(), schema)
	})
	return b.frame, b.frameErr
}

// Header reads the header file
func (b *FilesetBin) Header() (hdr.Header, error) {
	return ReadHDR(b.fs.HDRPath())
}

// Acquire opens the roi file and holds it open for subsequent image reads.
// Acquiring an already-open bin is a no-op; acquiring after release reopens
func (b *FilesetBin) Acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == roiOpen {
		return nil
	}
	f, err := os.Open(b.fs.ROIPath())
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "open roi")
	}
	b.roi = f
	b.state = roiOpen
	return nil
}

// Release closes the roi file. Image reads fail until the bin is
// re-acquired; releasing twice is a no-op
func (b *FilesetBin) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != roiOpen {
		b.state = roiReleased
		return nil
	}
	err := b.roi.Close()
	b.roi = nil
	b.state = roiReleased
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "close roi")
	}
	return nil
}

// IsOpen reports whether the roi file is currently held open
func (b *FilesetBin) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == roiOpen
}

// Image reads one target's pixels from the roi stream at the offset and
// geometry given by the target's record. An idle bin opens and closes the
// file around the read; a released bin refuses
func (b *FilesetBin) Image(target int) (bin.Image, error) {
	f, err := b.Frame()
	if err != nil {
		return bin.Image{}, err
	}
	s := f.Schema()
	rec, err := f.Get(target)
	if err != nil {
		return bin.Image{}, err
	}
	w, h := int(rec[s.ROIWidth]), int(rec[s.ROIHeight])
	if w <= 0 || h <= 0 {
		return bin.Image{}, perr.NotFoundf("no image for target %d in %s", target, b.p)
	}
	off := int64(rec[s.StartByte])

	b.mu.Lock()
	switch b.state {
	case roiReleased:
		b.mu.Unlock()
		return bin.Image{}, perr.Unavailablef("%s released; acquire before reading images", b.p)
	case roiOpen:
		roi := b.roi
		b.mu.Unlock()
		return readImage(roi, off, w, h)
	}
	b.mu.Unlock()

	// idle: transient open, mirroring single-image access on a closed bin
	roi, err := os.Open(b.fs.ROIPath())
	if err != nil {
		return bin.Image{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "open roi")
	}
	defer roi.Close() //nolint:errcheck // read-only
	return readImage(roi, off, w, h)
}

func readImage(roi *os.File, off int64, w, h int) (bin.Image, error) {
	pix := make([]byte, w*h)
	if _, err := roi.ReadAt(pix, off); err != nil {
		return bin.Image{}, perr.Wrapf(err, perr.ErrorCodeFormat,
			"roi read %d bytes at %d", len(pix), off)
	}
	return bin.Image{Width: w, Height: h, Pix: pix}, nil
}
