package config

// Resolve merges a per-symbol Override into base as explicit typed
// override records rather than dynamic attribute lookup. The engine
// calls it each time it reads a symbol's side config, so a newly applied
// override table takes effect from the next minute. The base Config is
// never mutated; a copy is returned.
func Resolve(base Config, overrides map[string]Override, symbol string) Config {
	resolved := base
	ov, ok := overrides[symbol]
	if !ok {
		return resolved
	}
	resolved.Long = applySideOverride(resolved.Long, ov.Long)
	resolved.Short = applySideOverride(resolved.Short, ov.Short)
	return resolved
}

func applySideOverride(side Side, ov *SideOverride) Side {
	if ov == nil {
		return side
	}
	if ov.NPositions != nil {
		side.NPositions = *ov.NPositions
	}
	if ov.TotalWalletExposureLimit != nil {
		side.TotalWalletExposureLimit = *ov.TotalWalletExposureLimit
	}
	if ov.ForcedMode != nil {
		side.ForcedMode = *ov.ForcedMode
	}
	if ov.EntryGridSpacingPct != nil {
		side.EntryGrid.SpacingPct = *ov.EntryGridSpacingPct
	}
	if ov.EntryTrailingGridRatio != nil {
		side.EntryTrailingGridRatio = *ov.EntryTrailingGridRatio
	}
	if ov.CloseTrailingGridRatio != nil {
		side.CloseTrailingGridRatio = *ov.CloseTrailingGridRatio
	}
	if ov.UnstuckThreshold != nil {
		side.Unstuck.Threshold = *ov.UnstuckThreshold
	}
	return side
}
