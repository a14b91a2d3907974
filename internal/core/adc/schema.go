// Package adc defines the per-target record layouts of the two instrument
// schema revisions and a small columnar frame over record data
package adc

import (
	perr "ifcb/internal/platform/errors"
)

// Schema describes the column layout of one schema version. The index fields
// locate the columns shared by both versions; schema-specific analog channels
// are addressable through Columns
type Schema struct {
	Version int
	Columns []string

	// shared column indexes
	Trigger     int
	ADCTime     int
	ROIX        int
	ROIY        int
	ROIWidth    int
	ROIHeight   int
	StartByte   int
	RunTime     int
	InhibitTime int
}

// NumColumns returns the record arity of the schema
func (s *Schema) NumColumns() int { return len(s.Columns) }

// ColumnIndex returns the positional index of a named column
func (s *Schema) ColumnIndex(name string) (int, error) {
	for i, c := range s.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, perr.NotFoundf("schema %d has no column %q", s.Version, name)
}

// schema 1: legacy instruments (IFCB... pids)
var schema1 = &Schema{
	Version: 1,
	Columns: []string{
		"trigger", "adc_time",
		"fluorescence_low", "fluorescence_high",
		"scattering_low", "scattering_high",
		"comparator", "pump1_state", "pump2_state",
		"roi_x", "roi_y", "roi_width", "roi_height",
		"start_byte", "valid",
		"run_time", "inhibit_time",
	},
	Trigger:     0,
	ADCTime:     1,
	ROIX:        9,
	ROIY:        10,
	ROIWidth:    11,
	ROIHeight:   12,
	StartByte:   13,
	RunTime:     15,
	InhibitTime: 16,
}

// schema 2: current instruments (D... pids)
var schema2 = &Schema{
	Version: 2,
	Columns: []string{
		"trigger", "adc_time",
		"pmt_a", "pmt_b", "pmt_c", "pmt_d",
		"peak_a", "peak_b", "peak_c", "peak_d",
		"time_of_flight", "grab_time_start", "grab_time_end",
		"roi_x", "roi_y", "roi_width", "roi_height",
		"start_byte", "comparator_out", "start_point", "signal_length",
		"status", "run_time", "inhibit_time",
	},
	Trigger:     0,
	ADCTime:     1,
	ROIX:        13,
	ROIY:        14,
	ROIWidth:    15,
	ROIHeight:   16,
	StartByte:   17,
	RunTime:     22,
	InhibitTime: 23,
}

// ByVersion returns the schema for an identifier schema version (closed set)
func ByVersion(v int) (*Schema, error) {
	switch v {
	case 1:
		return schema1, nil
	case 2:
		return schema2, nil
	default:
		return nil, perr.InvalidArgf("unknown schema version %d", v)
	}
}
