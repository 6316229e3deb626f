// Package config holds the engine's frozen parameter records: per-side
// strategy Config, the Market rule map, coin overrides, and forced-mode
// selection. This is the engine's own parameter file, not a
// live-trading venue/exchange configuration (API keys, symbol routing,
// websocket endpoints).
//
// Nested per-domain YAML-tagged structs validated eagerly at load time.
package config

// ForcedMode selects the live.forced_mode_{long,short} behavior.
type ForcedMode string

const (
	ModeNormal        ForcedMode = "n"
	ModeManual        ForcedMode = "m"
	ModeGracefulStop  ForcedMode = "gs"
	ModeTakeProfit    ForcedMode = "t"
	ModePanic         ForcedMode = "p"
)

// EMAConfig carries the bands' two configured spans and the driver-shared
// warm-up bounds.
type EMAConfig struct {
	Span0         float64 `yaml:"span0"`
	Span1         float64 `yaml:"span1"`
	WarmupMinutes int     `yaml:"warmupMinutes"`
	WarmupRatio   float64 `yaml:"warmupRatio"`
}

// EntryGridConfig is the grid-DCA re-entry leg.
type EntryGridConfig struct {
	SpacingPct        float64 `yaml:"spacingPct"`
	SpacingWeWeight   float64 `yaml:"spacingWeWeight"`
	SpacingLogWeight  float64 `yaml:"spacingLogWeight"`
	DoubleDownFactor  float64 `yaml:"doubleDownFactor"`
	InitialQtyPct     float64 `yaml:"initialQtyPct"`
	InitialEmaDist    float64 `yaml:"initialEmaDist"`
}

// EntryTrailingConfig is the trailing-entry leg.
type EntryTrailingConfig struct {
	ThresholdPct     float64 `yaml:"thresholdPct"`
	RetracementPct   float64 `yaml:"retracementPct"`
	DoubleDownFactor float64 `yaml:"doubleDownFactor"`
}

// CloseGridConfig is the grid take-profit leg.
type CloseGridConfig struct {
	MarkupStart float64 `yaml:"markupStart"`
	MarkupEnd   float64 `yaml:"markupEnd"`
	QtyPct      float64 `yaml:"qtyPct"`
}

// CloseTrailingConfig is the trailing take-profit leg.
type CloseTrailingConfig struct {
	ThresholdPct   float64 `yaml:"thresholdPct"`
	RetracementPct float64 `yaml:"retracementPct"`
}

// UnstuckConfig parameterizes the cross-position loss-allowance recovery
// mechanism.
type UnstuckConfig struct {
	Threshold      float64 `yaml:"threshold"`
	EmaDist        float64 `yaml:"emaDist"`
	ClosePct       float64 `yaml:"closePct"`
	LossAllowancePct float64 `yaml:"lossAllowancePct"`
}

// ForagerConfig parameterizes eligibility/ranking.
type ForagerConfig struct {
	VolumeDropPct float64 `yaml:"volumeDropPct"`
	VolumeSpan    float64 `yaml:"volumeSpan"`
	LogRangeSpan  float64 `yaml:"logRangeSpan"`
	HourlySpan    float64 `yaml:"hourlySpan"`
}

// Side is one side's (long or short) complete parameter set.
type Side struct {
	EMA                   EMAConfig           `yaml:"ema"`
	EntryGrid             EntryGridConfig     `yaml:"entryGrid"`
	EntryTrailing         EntryTrailingConfig `yaml:"entryTrailing"`
	EntryTrailingGridRatio float64            `yaml:"entryTrailingGridRatio"`
	CloseGrid             CloseGridConfig     `yaml:"closeGrid"`
	CloseTrailing         CloseTrailingConfig `yaml:"closeTrailing"`
	CloseTrailingGridRatio float64            `yaml:"closeTrailingGridRatio"`
	Unstuck               UnstuckConfig       `yaml:"unstuck"`
	Forager               ForagerConfig       `yaml:"forager"`

	NPositions              int     `yaml:"nPositions"`
	TotalWalletExposureLimit float64 `yaml:"totalWalletExposureLimit"`
	EnforceExposureLimit    bool    `yaml:"enforceExposureLimit"`

	ForcedMode ForcedMode `yaml:"forcedMode"`
}

// Backtest carries the run-level knobs.
type Backtest struct {
	StartingBalance   float64 `yaml:"startingBalance"`
	FeeMultiplier     float64 `yaml:"feeMultiplier"`
	UseBtcCollateral  bool    `yaml:"useBtcCollateral"`
	LiquidationBuffer float64 `yaml:"liquidationBuffer"`
	MakerFeeRate      float64 `yaml:"makerFeeRate"`
	TakerFeeRate      float64 `yaml:"takerFeeRate"`
}

// Config is the frozen, per-run record: a Side for long, a Side for
// short, and the backtest knobs.
type Config struct {
	Long     Side     `yaml:"long"`
	Short    Side     `yaml:"short"`
	Backtest Backtest `yaml:"backtest"`
}

// Override is a partial Config merged into Config for one symbol. Every
// field is a pointer so that only explicitly-set fields override the
// base.
type Override struct {
	Long  *SideOverride `yaml:"long,omitempty"`
	Short *SideOverride `yaml:"short,omitempty"`
}

// SideOverride mirrors Side but with pointer/optional leaves for the
// handful of parameters coin overrides most commonly touch: explicit
// typed override records rather than dynamic attribute lookup.
type SideOverride struct {
	NPositions               *int     `yaml:"nPositions,omitempty"`
	TotalWalletExposureLimit *float64 `yaml:"totalWalletExposureLimit,omitempty"`
	ForcedMode               *ForcedMode `yaml:"forcedMode,omitempty"`
	EntryGridSpacingPct      *float64 `yaml:"entryGridSpacingPct,omitempty"`
	EntryTrailingGridRatio   *float64 `yaml:"entryTrailingGridRatio,omitempty"`
	CloseTrailingGridRatio   *float64 `yaml:"closeTrailingGridRatio,omitempty"`
	UnstuckThreshold         *float64 `yaml:"unstuckThreshold,omitempty"`
}
