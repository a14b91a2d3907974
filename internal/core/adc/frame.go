package adc

import (
	"iter"

	perr "ifcb/internal/platform/errors"
)

// Record is one target's column values, in schema column order
type Record []float64

// Frame is an ordered, read-mostly columnar record set keyed by target
// number. Rows are appended in acquisition order with strictly increasing
// target numbers; readers treat a built Frame as immutable
type Frame struct {
	schema  *Schema
	targets []int
	cols    [][]float64
	index   map[int]int // target number -> row offset
}

// NewFrame returns an empty frame with the given schema
func NewFrame(schema *Schema) *Frame {
	return &Frame{
		schema: schema,
		cols:   make([][]float64, schema.NumColumns()),
		index:  make(map[int]int),
	}
}

// Schema returns the frame's column layout
func (f *Frame) Schema() *Schema { return f.schema }

// Len returns the number of rows
func (f *Frame) Len() int { return len(f.targets) }

// Append adds one row. Target numbers must be strictly increasing and the
// record arity must match the schema
func (f *Frame) Append(target int, rec Record) error {
	if len(rec) != f.schema.NumColumns() {
		return perr.InvalidArgf("record arity %d, schema %d wants %d",
			len(rec), f.schema.Version, f.schema.NumColumns())
	}
	if n := len(f.targets); n > 0 && target <= f.targets[n-1] {
		return perr.InvalidArgf("target %d out of order (last %d)", target, f.targets[len(f.targets)-1])
	}
	f.index[target] = len(f.targets)
	f.targets = append(f.targets, target)
	for i, v := range rec {
		f.cols[i] = append(f.cols[i], v)
	}
	return nil
}

// Targets iterates target numbers in storage order. The sequence is lazy and
// restartable
func (f *Frame) Targets() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, t := range f.targets {
			if !yield(t) {
				return
			}
		}
	}
}

// Has reports whether a target number is present
func (f *Frame) Has(target int) bool {
	_, ok := f.index[target]
	return ok
}

// Get returns the record for a target number
func (f *Frame) Get(target int) (Record, error) {
	row, ok := f.index[target]
	if !ok {
		return nil, perr.NotFoundf("no target %d", target)
	}
	return f.row(row), nil
}

// Row returns the i-th record and its target number, in storage order
func (f *Frame) Row(i int) (int, Record) {
	return f.targets[i], f.row(i)
}

// Last returns the final record, or ok=false for an empty frame
func (f *Frame) Last() (Record, bool) {
	if len(f.targets) == 0 {
		return nil, false
	}
	return f.row(len(f.targets) - 1), true
}

// Column returns one column's values in storage order. The slice is a view;
// callers must not modify it
func (f *Frame) Column(col int) []float64 { return f.cols[col] }

// Cell returns one column value by target number
func (f *Frame) Cell(target, col int) (float64, error) {
	row, ok := f.index[target]
	if !ok {
		return 0, perr.NotFoundf("no target %d", target)
	}
	return f.cols[col][row], nil
}

// Where returns the subset of rows whose value in col satisfies pred,
// preserving order and target keys
func (f *Frame) Where(col int, pred func(float64) bool) *Frame {
	out := NewFrame(f.schema)
	for i, t := range f.targets {
		if !pred(f.cols[col][i]) {
			continue
		}
		out.index[t] = len(out.targets)
		out.targets = append(out.targets, t)
		for c := range f.cols {
			out.cols[c] = append(out.cols[c], f.cols[c][i])
		}
	}
	return out
}

func (f *Frame) row(i int) Record {
	rec := make(Record, len(f.cols))
	for c := range f.cols {
		rec[c] = f.cols[c][i]
	}
	return rec
}
