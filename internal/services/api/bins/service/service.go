// Package service contains bin directory workflows
package service

import (
	"context"
	"strconv"
	"time"

	"ifcb/internal/adapters/raw"
	"ifcb/internal/core/bin"
	"ifcb/internal/core/pid"
	perr "ifcb/internal/platform/errors"
	"ifcb/internal/services/api/bins/domain"
)

// DefaultPageSize bounds unpaged listing requests
const DefaultPageSize = 50

// Service defines the bins service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the bins service over a raw data directory
type Svc struct {
	dir *raw.DataDirectory
}

// New constructs a bins service
func New(dir *raw.DataDirectory) *Svc {
	if dir == nil {
		panic("bins.Service requires a non nil DataDirectory")
	}
	return &Svc{dir: dir}
}

// List walks the data directory in chronological order and returns one page
func (s *Svc) List(_ context.Context, in domain.ListInput) ([]domain.ListItem, int, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	lo, hi := (page-1)*size, page*size

	var items []domain.ListItem
	total := 0
	for fs, err := range s.dir.All() {
		if err != nil {
			return nil, 0, err
		}
		p, err := fs.Pid().Parsed()
		if err != nil {
			// discovery already filters non-pid names; skip defensively
			continue
		}
		if !matches(in, fs, p) {
			continue
		}
		if total >= lo && total < hi {
			items = append(items, listItem(fs, p))
		}
		total++
	}
	return items, total, nil
}

func matches(in domain.ListInput, fs *raw.Fileset, p *pid.Parsed) bool {
	if in.Lid != "" && fs.Lid() != in.Lid {
		return false
	}
	if in.Instrument > 0 {
		n, err := strconv.Atoi(p.Instrument)
		if err != nil || n != in.Instrument {
			return false
		}
	}
	if in.Day != "" && p.Yearday != in.Day {
		return false
	}
	return true
}

func listItem(fs *raw.Fileset, p *pid.Parsed) domain.ListItem {
	it := domain.ListItem{
		Lid:           fs.Lid(),
		Instrument:    p.Instrument,
		SchemaVersion: p.SchemaVersion,
	}
	if ts, err := time.ParseInLocation(p.TimestampLayout, p.Timestamp, time.UTC); err == nil {
		it.Timestamp = ts.Format(time.RFC3339)
	}
	if sz, err := fs.Sizes(); err == nil {
		it.SizeBytes = sz.Total()
	}
	return it
}

// Summary resolves one bin and derives its counts and acquisition metrics
func (s *Svc) Summary(_ context.Context, lid string) (domain.Summary, error) {
	b, p, err := s.open(lid)
	if err != nil {
		return domain.Summary{}, err
	}

	out := domain.Summary{
		Lid:           p.BinLid,
		Instrument:    p.Instrument,
		SchemaVersion: p.SchemaVersion,
	}
	if ts, err := time.ParseInLocation(p.TimestampLayout, p.Timestamp, time.UTC); err == nil {
		out.Timestamp = ts.Format(time.RFC3339)
	}

	if out.Targets, err = b.Len(); err != nil {
		return domain.Summary{}, err
	}
	images, err := b.Images()
	if err != nil {
		return domain.Summary{}, err
	}
	out.Images = images.Len()
	if out.Triggers, err = b.NTriggers(); err != nil {
		return domain.Summary{}, err
	}

	m, err := b.Metrics()
	if err != nil {
		return domain.Summary{}, err
	}
	out.RunTime = m.RunTime
	out.InhibitTime = m.InhibitTime
	out.LookTime = m.LookTime
	out.MlAnalyzed = m.MlAnalyzed

	// trigger rate is undefined for an empty or zero length run
	if rate, err := b.TriggerRate(); err == nil {
		out.TriggerRate = rate
	}

	if v, err := b.Temperature(); err == nil {
		out.Temperature = &v
	}
	if v, err := b.Humidity(); err == nil {
		out.Humidity = &v
	}

	h, err := b.Header()
	if err != nil {
		return domain.Summary{}, err
	}
	out.Header = h.Map()
	return out, nil
}

// Target returns one record of a bin keyed by schema column name
func (s *Svc) Target(_ context.Context, lid string, n int) (domain.Target, error) {
	b, p, err := s.open(lid)
	if err != nil {
		return domain.Target{}, err
	}

	rec, err := b.Get(n)
	if err != nil {
		return domain.Target{}, err
	}
	schema, err := b.Schema()
	if err != nil {
		return domain.Target{}, err
	}

	vals := make(map[string]float64, len(schema.Columns))
	for i, name := range schema.Columns {
		vals[name] = rec[i]
	}
	return domain.Target{
		Lid:      p.BinLid,
		Number:   n,
		HasImage: rec[schema.ROIWidth] > 0,
		Values:   vals,
	}, nil
}

// open resolves a lid to its fileset bin; target pids resolve to their bin
func (s *Svc) open(lid string) (*bin.Bin, *pid.Parsed, error) {
	p, err := pid.Parse(lid)
	if err != nil {
		return nil, nil, err
	}
	if p.Extension != "" || p.Product != pid.ProductRaw {
		return nil, nil, perr.InvalidArgf("not a bin pid: %s", lid)
	}
	fs, err := s.dir.Find(p.BinLid)
	if err != nil {
		return nil, nil, err
	}
	return raw.NewFilesetBin(fs), p, nil
}
