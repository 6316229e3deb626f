package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v14/arrow/ipc"

	"contrarian-grid-engine/metrics"
)

func TestArrowSinkWriteEquityRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "equity.arrow")

	s := NewArrowSink()
	points := []metrics.EquityPoint{
		{Ts: 1, Balance: 1000, Equity: 1000},
		{Ts: 2, Balance: 1010, Equity: 1005},
	}
	if err := s.WriteEquity(path, points); err != nil {
		t.Fatalf("WriteEquity: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	r, err := ipc.NewReader(f)
	if err != nil {
		t.Fatalf("ipc.NewReader: %v", err)
	}
	defer r.Release()

	if !r.Next() {
		t.Fatal("expected at least one record batch")
	}
	rec := r.Record()
	if rec.NumRows() != int64(len(points)) {
		t.Fatalf("expected %d rows, got %d", len(points), rec.NumRows())
	}
}

func TestArrowSinkWriteFillsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fills.arrow")

	s := NewArrowSink()
	if err := s.WriteFills(path, "BTCUSDT", nil); err != nil {
		t.Fatalf("WriteFills: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}
