// Package logging wraps zap for the engine's structured event log: fills,
// skipped orders, bankruptcy markers, and fatal errors, each emitted with
// the fields a downstream analysis pipeline needs to reconstruct a run.
//
// The core is tee'd across stdout plus an optional file and a separate
// error-level file.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"contrarian-grid-engine/monitor/logschema"
)

// Logger wraps a *zap.Logger with the engine's own event methods.
type Logger struct {
	*zap.Logger
	config Config
}

// Config controls where and how log lines are written.
type Config struct {
	Level      string   `yaml:"level"`
	Outputs    []string `yaml:"outputs"`
	OutputFile string   `yaml:"outputFile"`
	ErrorFile  string   `yaml:"errorFile"`
	Format     string   `yaml:"format"`
}

// DefaultConfig returns JSON-to-stdout logging at info level.
func DefaultConfig() Config {
	return Config{Level: "info", Outputs: []string{"stdout"}, Format: "json"}
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var cores []zapcore.Core
	if contains(cfg.Outputs, "stdout") {
		var encoder zapcore.Encoder
		if cfg.Format == "console" {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	if contains(cfg.Outputs, "file") && cfg.OutputFile != "" {
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(f), level))
	}

	if cfg.ErrorFile != "" {
		f, err := os.OpenFile(cfg.ErrorFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open error log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(f), zapcore.ErrorLevel))
	}

	core := zapcore.NewTee(cores...)
	return &Logger{Logger: zap.New(core, zap.AddCaller()), config: cfg}, nil
}

// assertSchema catches a log call missing a field the schema requires
// before it goes out malformed; it never blocks the actual log line.
func (l *Logger) assertSchema(event string, fields map[string]interface{}) {
	if err := logschema.Validate(event, fields); err != nil {
		l.Error("log_schema_violation", zap.String("event", event), zap.Error(err))
	}
}

// LogFill records one executed fill.
func (l *Logger) LogFill(symbol string, long bool, kind fmt.Stringer, ts int64, price, qty, fee, realizedPnl float64) {
	l.assertSchema("fill", map[string]interface{}{
		"symbol": symbol, "long": long, "kind": kind, "ts": ts,
		"price": price, "qty": qty, "fee": fee, "realized_pnl": realizedPnl,
	})
	l.Info("fill",
		zap.String("symbol", symbol),
		zap.Bool("long", long),
		zap.Stringer("kind", kind),
		zap.Int64("ts", ts),
		zap.Float64("price", price),
		zap.Float64("qty", qty),
		zap.Float64("fee", fee),
		zap.Float64("realized_pnl", realizedPnl),
	)
}

// LogOrderSkip records a dropped order (min-cost rejection or no trigger)
// at debug level: these are routine, not warnings.
func (l *Logger) LogOrderSkip(symbol string, long bool, reason string, ts int64) {
	l.assertSchema("order_skip", map[string]interface{}{
		"symbol": symbol, "long": long, "reason": reason, "ts": ts,
	})
	l.Debug("order_skip",
		zap.String("symbol", symbol),
		zap.Bool("long", long),
		zap.String("reason", reason),
		zap.Int64("ts", ts),
	)
}

// LogBankruptcy records the non-fatal bankruptcy marker.
func (l *Logger) LogBankruptcy(ts int64, equity, balance float64) {
	l.assertSchema("bankruptcy", map[string]interface{}{
		"ts": ts, "equity": equity, "balance": balance,
	})
	l.Warn("bankruptcy",
		zap.Int64("ts", ts),
		zap.Float64("equity", equity),
		zap.Float64("balance", balance),
	)
}

// LogMinuteObservation records one minute's balance/equity snapshot at
// debug level, for reconstructing the equity curve from logs alone.
func (l *Logger) LogMinuteObservation(ts int64, balance, equity float64) {
	l.assertSchema("minute_observation", map[string]interface{}{
		"ts": ts, "balance": balance, "equity": equity,
	})
	l.Debug("minute_observation",
		zap.Int64("ts", ts),
		zap.Float64("balance", balance),
		zap.Float64("equity", equity),
	)
}

// LogFatal records a fatal condition (config invalid, market missing,
// candle malformed, numerically degenerate) before the caller halts the
// run.
func (l *Logger) LogFatal(err error, ts int64, symbol string) {
	l.Error("fatal",
		zap.Error(err),
		zap.Int64("ts", ts),
		zap.String("symbol", symbol),
	)
}

// Close flushes buffered log entries.
func (l *Logger) Close() error {
	return l.Sync()
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
