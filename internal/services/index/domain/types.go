// Package domain holds the row shapes written by the bin indexer
package domain

import "time"

// BinRecord is the per-bin row kept in Postgres
type BinRecord struct {
	Lid           string
	Timestamp     time.Time
	Instrument    int
	SchemaVersion int

	Targets  int
	Images   int
	Triggers int

	RunTime     float64
	InhibitTime float64
	LookTime    float64
	MlAnalyzed  float64
	TriggerRate float64

	SizeBytes int64
}

// TargetRecord is the per-target row batched into ClickHouse
type TargetRecord struct {
	Lid       string
	Timestamp time.Time
	Target    int

	Trigger int
	ROIX    int
	ROIY    int
	Width   int
	Height  int

	RunTime     float64
	InhibitTime float64
}

// Stats summarizes one indexing pass
type Stats struct {
	Bins    int
	Targets int
	Skipped int
}
