// Package repo provides postgres and clickhouse persistence for the bin index
package repo

import (
	"context"

	"ifcb/internal/modkit/repokit"
	"ifcb/internal/platform/store"
	"ifcb/internal/services/index/domain"
)

// Storage is the Postgres surface of the bin index
type Storage interface {
	// UpsertBin writes or refreshes one bin row, idempotent on lid
	UpsertBin(ctx context.Context, b domain.BinRecord) error
	// Exists reports whether a lid has already been indexed
	Exists(ctx context.Context, lid string) (bool, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Storage interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

func (r *queries) UpsertBin(ctx context.Context, b domain.BinRecord) error {
	const sql = `
insert into bins
	(lid, sampled_at, instrument, schema_version,
	 targets, images, triggers,
	 run_time, inhibit_time, look_time, ml_analyzed, trigger_rate,
	 size_bytes, indexed_at)
values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13, now())
on conflict (lid) do update set
	sampled_at = excluded.sampled_at,
	instrument = excluded.instrument,
	schema_version = excluded.schema_version,
	targets = excluded.targets,
	images = excluded.images,
	triggers = excluded.triggers,
	run_time = excluded.run_time,
	inhibit_time = excluded.inhibit_time,
	look_time = excluded.look_time,
	ml_analyzed = excluded.ml_analyzed,
	trigger_rate = excluded.trigger_rate,
	size_bytes = excluded.size_bytes,
	indexed_at = now()
`
	return store.ExecOne(ctx, r.q, sql,
		b.Lid, b.Timestamp, b.Instrument, b.SchemaVersion,
		b.Targets, b.Images, b.Triggers,
		b.RunTime, b.InhibitTime, b.LookTime, b.MlAnalyzed, b.TriggerRate,
		b.SizeBytes,
	)
}

func (r *queries) Exists(ctx context.Context, lid string) (bool, error) {
	return store.Scalar[bool](ctx, r.q,
		`select exists (select 1 from bins where lid = $1)`, lid)
}
