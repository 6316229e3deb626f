package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// LoadCandlesCSV reads a header row (ts,open,high,low,close,quote_volume)
// of one symbol's 1-minute candles, sorted ascending by ts.
func LoadCandlesCSV(path, symbol string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candles csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse candles csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	out := make([]Candle, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		ts, _ := strconv.ParseInt(row[0], 10, 64)
		open, _ := strconv.ParseFloat(row[1], 64)
		high, _ := strconv.ParseFloat(row[2], 64)
		low, _ := strconv.ParseFloat(row[3], 64)
		closePrice, _ := strconv.ParseFloat(row[4], 64)
		quoteVolume, _ := strconv.ParseFloat(row[5], 64)
		out = append(out, Candle{
			Ts: ts, Symbol: symbol, Open: open, High: high, Low: low, Close: closePrice, QuoteVolume: quoteVolume,
		})
	}
	return out, nil
}
