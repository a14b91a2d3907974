// Package service contains pid parsing workflows
package service

import (
	"context"
	"time"

	"ifcb/internal/core/pid"
	"ifcb/internal/services/api/pids/domain"
)

// Service defines the pid service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the pid service
// parsing is pure so the service carries no state beyond its parser
type Svc struct {
	parser *pid.Parser
}

// New constructs a pid service
func New() *Svc {
	return &Svc{parser: pid.NewParser()}
}

// Parse resolves a raw pid string into its named fields
func (s *Svc) Parse(_ context.Context, raw string) (domain.Parsed, error) {
	p, err := s.parser.Parse(raw)
	if err != nil {
		return domain.Parsed{}, err
	}

	out := domain.Parsed{
		Pid:             p.Pid,
		Namespace:       p.Namespace,
		TsLabel:         p.TsLabel,
		BinLid:          p.BinLid,
		Lid:             p.Lid,
		Year:            p.Year,
		Month:           p.Month,
		Day:             p.Day,
		DayOfYear:       p.DayOfYear,
		Hour:            p.Hour,
		Minute:          p.Minute,
		Second:          p.Second,
		Yearday:         p.Yearday,
		Instrument:      p.Instrument,
		SchemaVersion:   p.SchemaVersion,
		Target:          p.Target,
		Product:         p.Product,
		Extension:       p.Extension,
		TimestampLayout: p.TimestampLayout,
	}

	// grammar acceptance implies a parseable timestamp
	if ts, err := time.ParseInLocation(p.TimestampLayout, p.Timestamp, time.UTC); err == nil {
		out.Timestamp = ts.Format(time.RFC3339)
	}
	return out, nil
}
