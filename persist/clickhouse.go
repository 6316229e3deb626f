// Package persist streams a run's observation streams (equity points
// and fills) out to durable storage: a ClickHouse table for
// query-friendly analytics, and an Arrow IPC file for zero-copy handoff
// to downstream tooling. ClickHouse writes use the PrepareBatch/Append/
// Send batch-insert pattern.
package persist

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"contrarian-grid-engine/metrics"
)

// ClickHouseConfig addresses one ClickHouse server and database.
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
}

// ClickHouseSink batches equity points and fills into the run's
// ClickHouse tables. Callers own the batching cadence (typically once
// per minute or once at run end); Flush sends whatever is buffered.
type ClickHouseSink struct {
	conn  driver.Conn
	runID string

	equityBuf []equityRow
	fillBuf   []fillRow
}

type equityRow struct {
	ts      int64
	balance float64
	equity  float64
}

type fillRow struct {
	ts          int64
	price       float64
	qty         float64
	realizedPnl float64
}

// NewClickHouseSink opens a connection and prepares it for inserts.
func NewClickHouseSink(cfg ClickHouseConfig, runID string) (*ClickHouseSink, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse open: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	return &ClickHouseSink{conn: conn, runID: runID}, nil
}

// ObserveMinute buffers one minute's equity point for the next Flush.
func (s *ClickHouseSink) ObserveMinute(p metrics.EquityPoint) {
	s.equityBuf = append(s.equityBuf, equityRow{ts: p.Ts, balance: p.Balance, equity: p.Equity})
}

// ObserveFill buffers one fill record for the next Flush.
func (s *ClickHouseSink) ObserveFill(f metrics.FillRecord) {
	s.fillBuf = append(s.fillBuf, fillRow{ts: f.Ts, price: f.Price, qty: f.Qty, realizedPnl: f.RealizedPnl})
}

// Flush sends the buffered equity points and fills as two batch inserts.
func (s *ClickHouseSink) Flush(ctx context.Context) error {
	if err := s.flushEquity(ctx); err != nil {
		return err
	}
	return s.flushFills(ctx)
}

func (s *ClickHouseSink) flushEquity(ctx context.Context) error {
	if len(s.equityBuf) == 0 {
		return nil
	}
	stmt, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO run_equity (run_id, ts, balance, equity)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare equity batch: %w", err)
	}
	for _, r := range s.equityBuf {
		if err := stmt.Append(s.runID, r.ts, r.balance, r.equity); err != nil {
			return fmt.Errorf("append equity row: %w", err)
		}
	}
	if err := stmt.Send(); err != nil {
		return fmt.Errorf("send equity batch: %w", err)
	}
	s.equityBuf = s.equityBuf[:0]
	return nil
}

func (s *ClickHouseSink) flushFills(ctx context.Context) error {
	if len(s.fillBuf) == 0 {
		return nil
	}
	stmt, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO run_fills (run_id, ts, price, qty, realized_pnl)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare fill batch: %w", err)
	}
	for _, r := range s.fillBuf {
		if err := stmt.Append(s.runID, r.ts, r.price, r.qty, r.realizedPnl); err != nil {
			return fmt.Errorf("append fill row: %w", err)
		}
	}
	if err := stmt.Send(); err != nil {
		return fmt.Errorf("send fill batch: %w", err)
	}
	s.fillBuf = s.fillBuf[:0]
	return nil
}

// Close flushes any remaining rows and closes the underlying connection.
func (s *ClickHouseSink) Close(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}
	return s.conn.Close()
}
