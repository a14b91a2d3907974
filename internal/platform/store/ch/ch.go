// Package ch provides a ClickHouse client over the native protocol
package ch

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse connectivity
type Config struct {
	URL  string // clickhouse:// DSN
	Role string // client info role tag
}

// Rows aliases the driver result set
type Rows = driver.Rows

// CH is a clickhouse client
type CH struct {
	Conn driver.Conn
}

// Open connects using a clickhouse DSN
func Open(_ context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role)
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CH{Conn: conn}, nil
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error { return c.Conn.Ping(ctx) }

// InsertBatch prepares a batch for query (INSERT INTO ... form) and appends
// every row before sending
func (c *CH) InsertBatch(ctx context.Context, query string, rows [][]any) error {
	batch, err := c.Conn.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := batch.Append(r...); err != nil {
			return err
		}
	}
	return batch.Send()
}

// Query runs a query and returns driver rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return c.Conn.Query(ctx, sql, args...)
}

// Close closes the connection
func (c *CH) Close() error { return c.Conn.Close() }
