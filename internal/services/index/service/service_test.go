package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"ifcb/internal/adapters/raw"
	"ifcb/internal/platform/logger"
	"ifcb/internal/platform/store"
	"ifcb/internal/platform/testkit"
	"ifcb/internal/services/index/domain"
	"ifcb/internal/services/index/repo"
)

const (
	lidA = "D20160714T023910_IFCB101"
	lidB = "D20160714T123500_IFCB101"
)

// fakeDB satisfies store.TxRunner, records upserts, and answers Exists
type fakeDB struct {
	existing map[string]bool
	upserts  []string // lids in execution order
	sqls     []string
}

type boolRow struct{ v bool }

func (r boolRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = r.v
	return nil
}

type emptyTag struct{}

func (emptyTag) String() string      { return "" }
func (emptyTag) RowsAffected() int64 { return 1 }

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	if strings.Contains(sql, "insert into bins") {
		f.upserts = append(f.upserts, args[0].(string))
	}
	return emptyTag{}, nil
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	f.sqls = append(f.sqls, sql)
	return nil, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	f.sqls = append(f.sqls, sql)
	if strings.Contains(sql, "select exists") {
		return boolRow{v: f.existing[args[0].(string)]}
	}
	return boolRow{}
}

func (f *fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(f)
}

// fakeTargets records batched rows
type fakeTargets struct {
	batches [][]domain.TargetRecord
}

func (f *fakeTargets) WriteTargets(_ context.Context, xs []domain.TargetRecord) error {
	cp := make([]domain.TargetRecord, len(xs))
	copy(cp, xs)
	f.batches = append(f.batches, cp)
	return nil
}

func fixtureDir(t *testing.T) *raw.DataDirectory {
	t.Helper()
	root := t.TempDir()
	testkit.WriteFileset(t, root+"/data", lidA, 2,
		map[string]string{"runTime": "60", "inhibitTime": "10"},
		[]testkit.RawTarget{
			{Trigger: 1, Width: 2, Height: 2, RunTime: 20, InhibitTime: 3},
			{Trigger: 2, Width: 0, Height: 0, RunTime: 40, InhibitTime: 6},
			{Trigger: 3, Width: 3, Height: 1, RunTime: 60, InhibitTime: 9},
		})
	testkit.WriteFileset(t, root+"/data", lidB, 2,
		map[string]string{"runTime": "30", "inhibitTime": "5"},
		[]testkit.RawTarget{
			{Trigger: 1, Width: 1, Height: 1, RunTime: 30, InhibitTime: 5},
		})
	return raw.NewDataDirectory(root)
}

func TestRunIndexesEverything(t *testing.T) {
	db := &fakeDB{}
	tw := &fakeTargets{}
	svc := New(db, repo.NewPG(), tw, fixtureDir(t), *logger.Get(), Config{})

	st, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Bins != 2 || st.Targets != 4 || st.Skipped != 0 {
		t.Fatalf("stats = %+v", st)
	}
	if len(db.upserts) != 2 || db.upserts[0] != lidA || db.upserts[1] != lidB {
		t.Fatalf("upserts = %v", db.upserts)
	}
	if len(tw.batches) != 2 {
		t.Fatalf("batches = %d", len(tw.batches))
	}

	first := tw.batches[0]
	if len(first) != 3 {
		t.Fatalf("target rows = %d", len(first))
	}
	if first[0].Lid != lidA || first[0].Target != 1 || first[0].Width != 2 {
		t.Fatalf("row = %+v", first[0])
	}
	if first[2].Trigger != 3 || first[2].RunTime != 60 {
		t.Fatalf("row = %+v", first[2])
	}
}

func TestRunSkipsIndexedBins(t *testing.T) {
	db := &fakeDB{existing: map[string]bool{lidA: true}}
	svc := New(db, repo.NewPG(), nil, fixtureDir(t), *logger.Get(), Config{})

	st, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Bins != 1 {
		t.Fatalf("bins = %d, want 1", st.Bins)
	}
	if len(db.upserts) != 1 || db.upserts[0] != lidB {
		t.Fatalf("upserts = %v", db.upserts)
	}
}

func TestRunRefreshReindexes(t *testing.T) {
	db := &fakeDB{existing: map[string]bool{lidA: true, lidB: true}}
	svc := New(db, repo.NewPG(), nil, fixtureDir(t), *logger.Get(), Config{Refresh: true})

	st, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Bins != 2 {
		t.Fatalf("bins = %d, want 2", st.Bins)
	}
}

func TestRunBatchesByConfig(t *testing.T) {
	db := &fakeDB{}
	tw := &fakeTargets{}
	svc := New(db, repo.NewPG(), tw, fixtureDir(t), *logger.Get(), Config{BatchSize: 2})

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// 3 rows split 2+1, then 1 row
	if len(tw.batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(tw.batches))
	}
	if len(tw.batches[0]) != 2 || len(tw.batches[1]) != 1 || len(tw.batches[2]) != 1 {
		t.Fatalf("batch sizes = %d/%d/%d", len(tw.batches[0]), len(tw.batches[1]), len(tw.batches[2]))
	}
}

func TestRunSkipsUnreadableFilesets(t *testing.T) {
	root := t.TempDir()
	base := testkit.WriteFileset(t, root+"/data", lidA, 2, nil, []testkit.RawTarget{
		{Trigger: 1, Width: 1, Height: 1, RunTime: 10, InhibitTime: 1},
	})
	// corrupt the adc so the frame cannot be read
	if err := os.WriteFile(base+".adc", []byte("not,a,valid,row\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	db := &fakeDB{}
	svc := New(db, repo.NewPG(), nil, raw.NewDataDirectory(root), *logger.Get(), Config{})

	st, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Bins != 0 || st.Skipped != 1 {
		t.Fatalf("stats = %+v", st)
	}
}
