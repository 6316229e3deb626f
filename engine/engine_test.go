package engine

import (
	"testing"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/monitor/exporter"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.Long.NPositions = 1
	cfg.Long.TotalWalletExposureLimit = 1.0
	cfg.Long.EMA.Span0 = 5
	cfg.Long.EMA.Span1 = 10
	cfg.Long.EMA.WarmupMinutes = 3
	cfg.Long.EntryGrid.InitialQtyPct = 0.1
	cfg.Long.EntryGrid.SpacingPct = 0.02
	cfg.Long.EntryGrid.DoubleDownFactor = 1.0
	cfg.Long.CloseGrid.MarkupStart = 0.01
	cfg.Long.CloseGrid.MarkupEnd = 0.02
	cfg.Long.CloseGrid.QtyPct = 1.0
	cfg.Long.Forager.VolumeSpan = 5
	cfg.Long.Forager.LogRangeSpan = 5
	cfg.Long.Forager.HourlySpan = 2

	cfg.Short.ForcedMode = config.ModeManual

	cfg.Backtest.StartingBalance = 10000
	cfg.Backtest.FeeMultiplier = 1
	cfg.Backtest.MakerFeeRate = 0.0002
	cfg.Backtest.TakerFeeRate = 0.0005
	return cfg
}

func testMarkets() map[string]market.Rules {
	return map[string]market.Rules{
		"BTCUSDT": {PriceStep: 0.1, QtyStep: 0.001, MinQty: 0.001, MinCost: 5, CMult: 1},
	}
}

func TestEngineRunsMinutesWithoutError(t *testing.T) {
	rec := exporter.NewRecorder()
	e := New(testConfig(), testMarkets(), nil, rec)

	price := 100.0
	for i := 0; i < 20; i++ {
		ts := int64(i)
		candle := market.Candle{Ts: ts, Symbol: "BTCUSDT", Open: price, High: price + 1, Low: price - 1, Close: price}
		if err := e.Step(map[string]market.Candle{"BTCUSDT": candle}); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		price -= 0.5
	}

	if len(e.Equity) != 20 {
		t.Fatalf("expected 20 equity points, got %d", len(e.Equity))
	}
	if e.Bankrupt {
		t.Fatal("did not expect bankruptcy in a mild downtrend")
	}
	if rec.Equity.Value != e.Equity[len(e.Equity)-1].Equity {
		t.Fatalf("recorder equity %v did not track final equity %v", rec.Equity.Value, e.Equity[len(e.Equity)-1].Equity)
	}
}

func TestEngineRejectsUnknownMarket(t *testing.T) {
	e := New(testConfig(), map[string]market.Rules{}, nil, nil)
	candle := market.Candle{Ts: 1, Symbol: "BTCUSDT", Open: 100, High: 101, Low: 99, Close: 100}
	if err := e.Step(map[string]market.Candle{"BTCUSDT": candle}); err == nil {
		t.Fatal("expected error for missing market rules")
	}
}

func TestEngineDetectsBadCandle(t *testing.T) {
	e := New(testConfig(), testMarkets(), nil, nil)
	bad := market.Candle{Ts: 1, Symbol: "BTCUSDT", Open: 100, High: 90, Low: 99, Close: 100}
	if err := e.Step(map[string]market.Candle{"BTCUSDT": bad}); err == nil {
		t.Fatal("expected error for low > high candle")
	}
}
