// Package metrics derives acquisition metrics (run time, look time, volume
// analyzed, trigger rate) from a bin's record frame and header
package metrics

import (
	"ifcb/internal/core/adc"
	"ifcb/internal/core/hdr"
	perr "ifcb/internal/platform/errors"
)

// FlowRate is the sample flow rate in ml/min, fixed by the instrument fluidics
const FlowRate = 0.25

// Sample bundles the derived metrics of one bin
type Sample struct {
	// RunTime is total elapsed acquisition time, seconds
	RunTime float64
	// InhibitTime is time the instrument spent unable to trigger, seconds
	InhibitTime float64
	// LookTime is RunTime minus InhibitTime, seconds
	LookTime float64
	// MlAnalyzed is the sample volume analyzed, milliliters
	MlAnalyzed float64
}

// RunTime returns the bin's total acquisition time in seconds. The header
// value wins when present; otherwise the final record's run time column is
// the best available estimate
func RunTime(frame *adc.Frame, header hdr.Header) (float64, error) {
	return timing(frame, header, hdr.RunTime, frame.Schema().RunTime)
}

// InhibitTime returns the bin's total trigger-inhibited time in seconds,
// preferring the header value over the final record's column
func InhibitTime(frame *adc.Frame, header hdr.Header) (float64, error) {
	return timing(frame, header, hdr.InhibitTime, frame.Schema().InhibitTime)
}

func timing(frame *adc.Frame, header hdr.Header, key string, col int) (float64, error) {
	if header.Has(key) {
		return header.Float(key)
	}
	last, ok := frame.Last()
	if !ok {
		return 0, perr.Formatf("cannot determine %s: empty frame and no header value", key)
	}
	return last[col], nil
}

// Compute derives all timing metrics for one bin. LookTime is the portion of
// RunTime during which triggering was possible, and MlAnalyzed follows from
// it at the fixed flow rate
func Compute(frame *adc.Frame, header hdr.Header) (Sample, error) {
	run, err := RunTime(frame, header)
	if err != nil {
		return Sample{}, err
	}
	inhibit, err := InhibitTime(frame, header)
	if err != nil {
		return Sample{}, err
	}
	look := run - inhibit
	return Sample{
		RunTime:     run,
		InhibitTime: inhibit,
		LookTime:    look,
		MlAnalyzed:  FlowRate * look / 60,
	}, nil
}

// TriggerRate returns triggers per second over the bin's run time
func TriggerRate(triggers int, runTime float64) (float64, error) {
	if runTime == 0 {
		return 0, perr.InvalidArgf("trigger rate undefined for zero run time")
	}
	return float64(triggers) / runTime, nil
}
