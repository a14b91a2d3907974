package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"ifcb/internal/platform/store"
	"ifcb/internal/services/index/domain"
)

type tag struct{ n int64 }

func (t tag) String() string      { return "" }
func (t tag) RowsAffected() int64 { return t.n }

type boolRow struct{ v bool }

func (r boolRow) Scan(dest ...any) error {
	*(dest[0].(*bool)) = r.v
	return nil
}

// fakeQ satisfies repokit.Queryer and records what was executed
type fakeQ struct {
	rows int64
	sqls []string
	args [][]any
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.sqls = append(f.sqls, sql)
	f.args = append(f.args, args)
	return tag{n: f.rows}, nil
}

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (f *fakeQ) QueryRow(_ context.Context, sql string, _ ...any) store.Row {
	f.sqls = append(f.sqls, sql)
	return boolRow{v: true}
}

func TestUpsertBin(t *testing.T) {
	q := &fakeQ{rows: 1}
	st := NewPG().Bind(q)

	rec := domain.BinRecord{
		Lid:       "D20160714T023910_IFCB101",
		Timestamp: time.Date(2016, 7, 14, 2, 39, 10, 0, time.UTC),
		Targets:   3,
	}
	if err := st.UpsertBin(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if len(q.sqls) != 1 || !strings.Contains(q.sqls[0], "on conflict (lid) do update") {
		t.Fatalf("sql = %v", q.sqls)
	}
	if q.args[0][0] != rec.Lid {
		t.Fatalf("first arg = %v, want lid", q.args[0][0])
	}
}

func TestUpsertBinRowCountMismatch(t *testing.T) {
	// an upsert touches exactly one row; anything else is a storage fault
	q := &fakeQ{rows: 0}
	st := NewPG().Bind(q)

	if err := st.UpsertBin(context.Background(), domain.BinRecord{Lid: "x"}); err == nil {
		t.Fatal("want error when no row is affected")
	}
}

func TestExists(t *testing.T) {
	q := &fakeQ{}
	st := NewPG().Bind(q)

	ok, err := st.Exists(context.Background(), "D20160714T023910_IFCB101")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("want true from the exists probe row")
	}
	if len(q.sqls) != 1 || !strings.Contains(q.sqls[0], "select exists") {
		t.Fatalf("sql = %v", q.sqls)
	}
}
