// Command backtest drives the contrarian grid-plus-trailing engine over
// one or more symbols' CSV candle series and reports the run's metric
// set, using a flag-driven, config-plus-CSV-plus-summary-CSV shape.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"contrarian-grid-engine/config"
	"contrarian-grid-engine/engine"
	"contrarian-grid-engine/errs"
	"contrarian-grid-engine/logging"
	"contrarian-grid-engine/market"
	"contrarian-grid-engine/metrics"
	"contrarian-grid-engine/persist"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "engine parameter file path")
	rulesPath := flag.String("rules", "configs/rules.csv", "exchange rules CSV path")
	symbolFiles := flag.String("symbols", "BTCUSDT:data/btcusdt.csv", "symbol:csv list, comma separated")
	outPath := flag.String("out", "", "if set, write the run's metric report as CSV here")
	httpAddr := flag.String("http", ":9090", "address to serve /metrics on")
	statusAddr := flag.String("status", ":9091", "address to serve the gin /status endpoint on")
	arrowDir := flag.String("arrow-out", "", "if set, write per-run Arrow IPC files under this directory")
	clickhouseAddr := flag.String("clickhouse", "", "if set, stream equity/fills to this ClickHouse address")
	minutesPerDay := flag.Int("minutes-per-day", 1440, "candle minutes per trading day, for daily-return metrics")
	flag.Parse()

	cfg, overrides, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	rules, err := market.LoadRulesCSV(*rulesPath)
	if err != nil {
		log.Fatalf("load rules: %v", err)
	}

	entries := parseSymbolFiles(*symbolFiles)
	if len(entries) == 0 {
		log.Fatal("no symbol:csv entries given")
	}

	candlesBySymbol := map[string][]market.Candle{}
	for _, e := range entries {
		candles, err := market.LoadCandlesCSV(e.path, e.symbol)
		if err != nil {
			log.Fatalf("load candles for %s: %v", e.symbol, err)
		}
		candlesBySymbol[e.symbol] = candles
	}

	logger, err := logging.New(logging.DefaultConfig())
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Close()

	reg := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(reg)
	metricsSrv := metrics.StartServer(*httpAddr, reg)
	defer metricsSrv.Close()

	eng := engine.New(cfg, rules, logger, collectors)
	eng.ApplyOverrides(overrides)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := config.NewOverrideWatcher(*cfgPath)
	if err != nil {
		logger.Sugar().Warnf("override hot-reload disabled: %v", err)
	} else {
		defer watcher.Close()
		go watcher.Run(ctx)
	}

	go serveStatus(*statusAddr, eng)
	go runWatchdog(ctx)

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.Sugar().Warnf("sdnotify ready failed: %v", err)
	} else if ok {
		logger.Sugar().Info("notified systemd: ready")
	}

	minuteTimestamps := unionTimestamps(candlesBySymbol)

	var chSink *persist.ClickHouseSink
	if *clickhouseAddr != "" {
		chSink, err = persist.NewClickHouseSink(persist.ClickHouseConfig{Addr: *clickhouseAddr, Database: "backtest"}, eng.RunID.String())
		if err != nil {
			logger.Sugar().Warnf("clickhouse sink disabled: %v", err)
			chSink = nil
		} else {
			defer chSink.Close(ctx)
		}
	}

	indices := map[string]int{}
	fillsFlushed := 0
runLoop:
	for _, ts := range minuteTimestamps {
		select {
		case <-ctx.Done():
			logger.Sugar().Info("shutdown requested, stopping run")
			break runLoop
		default:
		}

		if watcher != nil {
			if next, ok := watcher.Take(); ok {
				eng.ApplyOverrides(next)
			}
		}

		batch := map[string]market.Candle{}
		for symbol, series := range candlesBySymbol {
			i := indices[symbol]
			if i < len(series) && series[i].Ts == ts {
				batch[symbol] = series[i]
				indices[symbol] = i + 1
			}
		}
		if len(batch) == 0 {
			continue
		}

		if err := eng.Step(batch); err != nil {
			var bankrupt *errs.Bankruptcy
			if errors.As(err, &bankrupt) {
				logger.Sugar().Warnf("run stopped: bankruptcy at ts=%d", ts)
				break runLoop
			}
			logger.LogFatal(err, ts, "")
			log.Fatalf("fatal at ts=%d: %v", ts, err)
		}

		if chSink != nil && len(eng.Equity) > 0 {
			chSink.ObserveMinute(eng.Equity[len(eng.Equity)-1])
			for _, f := range eng.Fills[fillsFlushed:] {
				chSink.ObserveFill(f)
			}
			fillsFlushed = len(eng.Fills)
			if err := chSink.Flush(ctx); err != nil {
				logger.Sugar().Warnf("clickhouse flush: %v", err)
			}
		}
	}

	if *arrowDir != "" {
		if err := os.MkdirAll(*arrowDir, 0o755); err != nil {
			log.Fatalf("create arrow-out dir: %v", err)
		}
		sink := persist.NewArrowSink()
		if err := sink.WriteEquity(*arrowDir+"/equity.arrow", eng.Equity); err != nil {
			logger.Sugar().Warnf("write arrow equity: %v", err)
		}
		if err := sink.WriteFills(*arrowDir+"/fills.arrow", "", eng.Fills); err != nil {
			logger.Sugar().Warnf("write arrow fills: %v", err)
		}
	}

	report := metrics.Report(eng.Equity, eng.Fills, eng.Holds, *minutesPerDay)
	if *outPath != "" {
		if err := writeReportCSV(*outPath, report); err != nil {
			log.Fatalf("write report: %v", err)
		}
	}
	printReport(report)
}

type symbolFile struct {
	symbol string
	path   string
}

func parseSymbolFiles(arg string) []symbolFile {
	var out []symbolFile
	for _, part := range splitAndTrim(arg, ',') {
		items := splitAndTrim(part, ':')
		if len(items) != 2 {
			continue
		}
		out = append(out, symbolFile{symbol: items[0], path: items[1]})
	}
	return out
}

func splitAndTrim(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == sep {
			part := s[start:i]
			for len(part) > 0 && (part[0] == ' ') {
				part = part[1:]
			}
			for len(part) > 0 && (part[len(part)-1] == ' ') {
				part = part[:len(part)-1]
			}
			if part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}

func unionTimestamps(bySymbol map[string][]market.Candle) []int64 {
	seen := map[int64]bool{}
	for _, series := range bySymbol {
		for _, c := range series {
			seen[c.Ts] = true
		}
	}
	out := make([]int64, 0, len(seen))
	for ts := range seen {
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func writeReportCSV(path string, report map[string]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	keys := make([]string, 0, len(report))
	for k := range report {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := w.Write([]string{"metric", "value"}); err != nil {
		return err
	}
	for _, k := range keys {
		if err := w.Write([]string{k, fmt.Sprintf("%.10f", report[k])}); err != nil {
			return err
		}
	}
	return nil
}

func printReport(report map[string]float64) {
	keys := make([]string, 0, len(report))
	for k := range report {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%.6f\n", k, report[k])
	}
}

// serveStatus exposes a minimal gin health/status endpoint alongside the
// Prometheus /metrics handler.
func serveStatus(addr string, eng *engine.Engine) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"run_id":    eng.RunID.String(),
			"minutes":   len(eng.Equity),
			"bankrupt":  eng.Bankrupt,
			"num_fills": len(eng.Fills),
		})
	})
	_ = r.Run(addr)
}

// runWatchdog pings systemd's watchdog on the interval it reports, if the
// process was started under a watchdog-enabled unit.
func runWatchdog(ctx context.Context) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval == 0 {
		return
	}
	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}
