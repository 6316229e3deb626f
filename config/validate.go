package config

import "contrarian-grid-engine/errs"

// Validate enforces the "Config invalid" rules: out-of-range parameters
// and internally inconsistent ranges (e.g. markup_start and markup_end
// both zero, n_positions < 0), fatal at init.
func Validate(cfg Config) error {
	if err := validateSide("long", cfg.Long); err != nil {
		return err
	}
	if err := validateSide("short", cfg.Short); err != nil {
		return err
	}
	if cfg.Backtest.StartingBalance <= 0 {
		return errs.NewConfigError("backtest.startingBalance", "must be > 0")
	}
	if cfg.Backtest.FeeMultiplier < 0 {
		return errs.NewConfigError("backtest.feeMultiplier", "must be >= 0")
	}
	return nil
}

func validateSide(label string, s Side) error {
	if s.NPositions < 0 {
		return errs.NewConfigError(label+".nPositions", "must be >= 0")
	}
	if s.TotalWalletExposureLimit < 0 {
		return errs.NewConfigError(label+".totalWalletExposureLimit", "must be >= 0")
	}
	if s.EMA.Span0 < 0 || s.EMA.Span1 < 0 {
		return errs.NewConfigError(label+".ema", "spans must be >= 0")
	}
	if s.EntryGrid.SpacingPct < 0 {
		return errs.NewConfigError(label+".entryGrid.spacingPct", "must be >= 0")
	}
	if s.EntryGrid.DoubleDownFactor < 0 {
		return errs.NewConfigError(label+".entryGrid.doubleDownFactor", "must be >= 0")
	}
	if s.CloseGrid.MarkupStart == 0 && s.CloseGrid.MarkupEnd == 0 && s.NPositions > 0 {
		return errs.NewConfigError(label+".closeGrid", "markupStart and markupEnd cannot both be zero")
	}
	if s.CloseGrid.QtyPct < 0 {
		return errs.NewConfigError(label+".closeGrid.qtyPct", "must be >= 0")
	}
	if s.EntryTrailingGridRatio < -1 || s.EntryTrailingGridRatio > 1 {
		return errs.NewConfigError(label+".entryTrailingGridRatio", "must be in [-1, 1]")
	}
	if s.CloseTrailingGridRatio < -1 || s.CloseTrailingGridRatio > 1 {
		return errs.NewConfigError(label+".closeTrailingGridRatio", "must be in [-1, 1]")
	}
	if s.Unstuck.Threshold < 0 {
		return errs.NewConfigError(label+".unstuck.threshold", "must be >= 0")
	}
	if s.Forager.VolumeDropPct < 0 || s.Forager.VolumeDropPct >= 1 {
		return errs.NewConfigError(label+".forager.volumeDropPct", "must be in [0, 1)")
	}
	switch s.ForcedMode {
	case "", ModeNormal, ModeManual, ModeGracefulStop, ModeTakeProfit, ModePanic:
	default:
		return errs.NewConfigError(label+".forcedMode", "unrecognized mode")
	}
	return nil
}
