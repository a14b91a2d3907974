package repo

import (
	"context"

	"ifcb/internal/platform/store"
	"ifcb/internal/services/index/domain"
)

// insertTargets is the columnar batch statement for the per-target table
const insertTargets = `INSERT INTO ifcb.targets
	(lid, sampled_at, target, trigger, roi_x, roi_y, roi_width, roi_height, run_time, inhibit_time)`

// TargetWriter batches per-target rows into ClickHouse
type TargetWriter interface {
	WriteTargets(ctx context.Context, xs []domain.TargetRecord) error
}

// NewCH wraps the store clickhouse seam as a TargetWriter
func NewCH(ch store.Clickhouse) TargetWriter { return &chWriter{ch: ch} }

type chWriter struct{ ch store.Clickhouse }

func (w *chWriter) WriteTargets(ctx context.Context, xs []domain.TargetRecord) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, x := range xs {
		rows = append(rows, []any{
			x.Lid, x.Timestamp, int32(x.Target),
			int32(x.Trigger), int32(x.ROIX), int32(x.ROIY), int32(x.Width), int32(x.Height),
			x.RunTime, x.InhibitTime,
		})
	}
	return w.ch.InsertBatch(ctx, insertTargets, rows)
}
