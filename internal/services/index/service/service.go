// Package service walks a raw data directory and builds the bin index
package service

import (
	"context"
	"strconv"
	"time"

	"ifcb/internal/adapters/raw"
	"ifcb/internal/modkit/repokit"
	"ifcb/internal/platform/logger"
	"ifcb/internal/services/index/domain"
	"ifcb/internal/services/index/repo"
)

// Config for the indexer
type Config struct {
	// Refresh reindexes bins that already have a row
	Refresh bool
	// BatchSize caps one clickhouse insert, rows
	BatchSize int
}

// Service implements domain.RunnerPort
type Service struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	targets repo.TargetWriter
	dir     *raw.DataDirectory
	log     logger.Logger
	cfg     Config
}

// New constructs an indexer over a data directory and its two stores
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	targets repo.TargetWriter,
	dir *raw.DataDirectory,
	log logger.Logger,
	cfg Config,
) *Service {
	if db == nil {
		panic("index.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("index.Service requires a non nil Storage binder")
	}
	if dir == nil {
		panic("index.Service requires a non nil DataDirectory")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10000
	}
	return &Service{db: db, binder: binder, targets: targets, dir: dir, log: log, cfg: cfg}
}

// Run indexes every discoverable bin once, in chronological order.
// Unreadable filesets are skipped and counted, not fatal
func (s *Service) Run(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	storage := repokit.MustBind(s.binder, s.db)

	for fs, err := range s.dir.All() {
		if err != nil {
			return st, err
		}
		if err := ctx.Err(); err != nil {
			return st, err
		}

		lid := fs.Lid()
		if !s.cfg.Refresh {
			seen, err := storage.Exists(ctx, lid)
			if err != nil {
				return st, err
			}
			if seen {
				continue
			}
		}

		rec, targets, err := s.read(fs)
		if err != nil {
			s.log.Warn().Err(err).Str("lid", lid).Msg("skipping unreadable fileset")
			st.Skipped++
			continue
		}

		if err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
			return s.binder.Bind(q).UpsertBin(ctx, rec)
		}); err != nil {
			return st, err
		}

		if s.targets != nil {
			for lo := 0; lo < len(targets); lo += s.cfg.BatchSize {
				hi := min(lo+s.cfg.BatchSize, len(targets))
				if err := s.targets.WriteTargets(ctx, targets[lo:hi]); err != nil {
					return st, err
				}
			}
		}

		st.Bins++
		st.Targets += len(targets)
	}
	return st, nil
}

// read derives the index rows of one fileset
func (s *Service) read(fs *raw.Fileset) (domain.BinRecord, []domain.TargetRecord, error) {
	p, err := fs.Pid().Parsed()
	if err != nil {
		return domain.BinRecord{}, nil, err
	}
	ts, err := time.ParseInLocation(p.TimestampLayout, p.Timestamp, time.UTC)
	if err != nil {
		return domain.BinRecord{}, nil, err
	}
	instrument, _ := strconv.Atoi(p.Instrument)

	b := raw.NewFilesetBin(fs)

	rec := domain.BinRecord{
		Lid:           p.BinLid,
		Timestamp:     ts,
		Instrument:    instrument,
		SchemaVersion: p.SchemaVersion,
	}

	frame, err := b.Frame()
	if err != nil {
		return domain.BinRecord{}, nil, err
	}
	schema := frame.Schema()
	rec.Targets = frame.Len()

	images, err := b.Images()
	if err != nil {
		return domain.BinRecord{}, nil, err
	}
	rec.Images = images.Len()

	if rec.Triggers, err = b.NTriggers(); err != nil {
		return domain.BinRecord{}, nil, err
	}

	m, err := b.Metrics()
	if err != nil {
		return domain.BinRecord{}, nil, err
	}
	rec.RunTime = m.RunTime
	rec.InhibitTime = m.InhibitTime
	rec.LookTime = m.LookTime
	rec.MlAnalyzed = m.MlAnalyzed

	// undefined for empty or zero length runs; index as zero
	if rate, err := b.TriggerRate(); err == nil {
		rec.TriggerRate = rate
	}

	if sz, err := fs.Sizes(); err == nil {
		rec.SizeBytes = sz.Total()
	}

	targets := make([]domain.TargetRecord, 0, rec.Targets)
	for n := range frame.Targets() {
		row, err := frame.Get(n)
		if err != nil {
			return domain.BinRecord{}, nil, err
		}
		targets = append(targets, domain.TargetRecord{
			Lid:         p.BinLid,
			Timestamp:   ts,
			Target:      n,
			Trigger:     int(row[schema.Trigger]),
			ROIX:        int(row[schema.ROIX]),
			ROIY:        int(row[schema.ROIY]),
			Width:       int(row[schema.ROIWidth]),
			Height:      int(row[schema.ROIHeight]),
			RunTime:     row[schema.RunTime],
			InhibitTime: row[schema.InhibitTime],
		})
	}
	return rec, targets, nil
}
