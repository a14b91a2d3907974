// Package bin provides the central data abstraction: a bin is one sampling
// event, addressed by pid, mapping target numbers to records, with a header
// and derived acquisition metrics. Backing data is resolved lazily and cached
package bin

import (
	"iter"
	"sync"

	"ifcb/internal/core/adc"
	"ifcb/internal/core/hdr"
	"ifcb/internal/core/metrics"
	"ifcb/internal/core/pid"
	perr "ifcb/internal/platform/errors"
)

// Backing supplies a bin's underlying data. Frame and Header may be expensive
// (file or network reads); the Bin wrapper guarantees each is requested at
// most once. Acquire and Release bracket access for backings that hold
// resources; both are no-ops for in-memory data
type Backing interface {
	Pid() *pid.Pid
	Frame() (*adc.Frame, error)
	Header() (hdr.Header, error)
	Acquire() error
	Release() error
}

// Image is one target's image: 8-bit grayscale, row-major
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// ImageReader is implemented by backings that can supply target images
type ImageReader interface {
	Image(target int) (Image, error)
}

// lazy resolves a value at most once, caching both result and error
type lazy[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (l *lazy[T]) get(fn func() (T, error)) (T, error) {
	l.once.Do(func() { l.v, l.err = fn() })
	return l.v, l.err
}

// Bin wraps a Backing with lazy, cached access to its frame, header, image
// subset, and derived metrics
type Bin struct {
	backing Backing

	frame  lazy[*adc.Frame]
	header lazy[hdr.Header]
	images lazy[*adc.Frame]
	sample lazy[metrics.Sample]
}

// New wraps a backing. Nothing is read until a derived value is first needed
func New(b Backing) *Bin { return &Bin{backing: b} }

// Pid returns the bin's permanent identifier
func (b *Bin) Pid() *pid.Pid { return b.backing.Pid() }

// Acquire opens the backing's resources, if it has any
func (b *Bin) Acquire() error { return b.backing.Acquire() }

// Release closes the backing's resources. Values already cached on the Bin
// stay readable after release
func (b *Bin) Release() error { return b.backing.Release() }

// Scoped acquires the backing, runs fn, and releases, preferring fn's error
// over the release error
func (b *Bin) Scoped(fn func(*Bin) error) error {
	if err := b.Acquire(); err != nil {
		return err
	}
	err := fn(b)
	if rerr := b.Release(); err == nil {
		err = rerr
	}
	return err
}

// Frame returns the bin's record frame, reading it on first use
func (b *Bin) Frame() (*adc.Frame, error) {
	return b.frame.get(b.backing.Frame)
}

// Header returns the bin's header, reading it on first use
func (b *Bin) Header() (hdr.Header, error) {
	return b.header.get(b.backing.Header)
}

// Schema returns the record schema of the bin's frame
func (b *Bin) Schema() (*adc.Schema, error) {
	f, err := b.Frame()
	if err != nil {
		return nil, err
	}
	return f.Schema(), nil
}

// Len returns the number of targets
func (b *Bin) Len() (int, error) {
	f, err := b.Frame()
	if err != nil {
		return 0, err
	}
	return f.Len(), nil
}

// Targets iterates target numbers in acquisition order
func (b *Bin) Targets() (iter.Seq[int], error) {
	f, err := b.Frame()
	if err != nil {
		return nil, err
	}
	return f.Targets(), nil
}

// Has reports whether a target number is present
func (b *Bin) Has(target int) (bool, error) {
	f, err := b.Frame()
	if err != nil {
		return false, err
	}
	return f.Has(target), nil
}

// Get returns one target's record
func (b *Bin) Get(target int) (adc.Record, error) {
	f, err := b.Frame()
	if err != nil {
		return nil, err
	}
	return f.Get(target)
}

// Images returns the subset of the frame whose targets have an image
// (nonzero ROI width). The subset's keys are always a subset of the frame's
func (b *Bin) Images() (*adc.Frame, error) {
	return b.images.get(func() (*adc.Frame, error) {
		f, err := b.Frame()
		if err != nil {
			return nil, err
		}
		w := f.Schema().ROIWidth
		return f.Where(w, func(v float64) bool { return v > 0 }), nil
	})
}

// Image returns one target's image. The backing must support image reads and
// the target must be in the image subset
func (b *Bin) Image(target int) (Image, error) {
	ir, ok := b.backing.(ImageReader)
	if !ok {
		return Image{}, perr.Unavailablef("backing for %s cannot read images", b.Pid())
	}
	imgs, err := b.Images()
	if err != nil {
		return Image{}, err
	}
	if !imgs.Has(target) {
		return Image{}, perr.NotFoundf("no image for target %d in %s", target, b.Pid())
	}
	return ir.Image(target)
}

// Metrics returns the bin's derived timing metrics, computed on first use
func (b *Bin) Metrics() (metrics.Sample, error) {
	return b.sample.get(func() (metrics.Sample, error) {
		f, err := b.Frame()
		if err != nil {
			return metrics.Sample{}, err
		}
		h, err := b.Header()
		if err != nil {
			return metrics.Sample{}, err
		}
		return metrics.Compute(f, h)
	})
}

// RunTime returns total acquisition time in seconds
func (b *Bin) RunTime() (float64, error) {
	m, err := b.Metrics()
	return m.RunTime, err
}

// InhibitTime returns total trigger-inhibited time in seconds
func (b *Bin) InhibitTime() (float64, error) {
	m, err := b.Metrics()
	return m.InhibitTime, err
}

// LookTime returns run time minus inhibit time, seconds
func (b *Bin) LookTime() (float64, error) {
	m, err := b.Metrics()
	return m.LookTime, err
}

// MlAnalyzed returns the sample volume analyzed, milliliters
func (b *Bin) MlAnalyzed() (float64, error) {
	m, err := b.Metrics()
	return m.MlAnalyzed, err
}

// NTriggers returns the number of triggers: the trigger column of the final
// record, since several targets can share one trigger. Zero for an empty bin
func (b *Bin) NTriggers() (int, error) {
	f, err := b.Frame()
	if err != nil {
		return 0, err
	}
	last, ok := f.Last()
	if !ok {
		return 0, nil
	}
	return int(last[f.Schema().Trigger]), nil
}

// TriggerRate returns triggers per second. Errors on zero run time rather
// than reporting an infinite rate
func (b *Bin) TriggerRate() (float64, error) {
	n, err := b.NTriggers()
	if err != nil {
		return 0, err
	}
	run, err := b.RunTime()
	if err != nil {
		return 0, err
	}
	return metrics.TriggerRate(n, run)
}

// Temperature returns the instrument temperature from the header, Celsius
func (b *Bin) Temperature() (float64, error) {
	h, err := b.Header()
	if err != nil {
		return 0, err
	}
	return h.Float(hdr.Temperature)
}

// Humidity returns the instrument relative humidity from the header, percent
func (b *Bin) Humidity() (float64, error) {
	h, err := b.Header()
	if err != nil {
		return 0, err
	}
	return h.Float(hdr.Humidity)
}

// Materialize reads everything through the backing (frame, header, and all
// images when the backing supports them) into a memory-backed bin that stays
// usable after the source is released
func Materialize(b *Bin) (*Bin, error) {
	f, err := b.Frame()
	if err != nil {
		return nil, err
	}
	h, err := b.Header()
	if err != nil {
		return nil, err
	}
	mem := NewMemory(b.Pid(), f, h)
	if _, ok := b.backing.(ImageReader); ok {
		imgs, err := b.Images()
		if err != nil {
			return nil, err
		}
		for t := range imgs.Targets() {
			img, err := b.Image(t)
			if err != nil {
				return nil, err
			}
			mem.SetImage(t, img)
		}
	}
	return New(mem), nil
}
