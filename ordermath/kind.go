// Package ordermath implements the pure order-math functions: wallet
// exposure, initial/grid/trailing entry sizing and pricing, grid and
// trailing close sizing and pricing, and unstuck close sizing. Every
// function here is side-effect free; state lives in the position and
// trailing packages and is threaded in as plain values.
//
// Price/qty rounding follows a fixed-step discipline, and grid spacing
// widens with volatility, generalized from a single-band spot grid to
// the full contrarian grid+trailing state machine.
package ordermath

// Kind enumerates the order kinds: {initial, grid, trailing, cropped,
// inflated, unstuck, auto-reduce, panic} entry/close crossed with
// {long, short}. This engine assigns 12 kinds per side.
type Kind int

const (
	KindUnspecified Kind = iota

	// Long entry.
	KindLongEntryInitialNormal
	KindLongEntryInitialPartial
	KindLongEntryGridNormal
	KindLongEntryGridCropped
	KindLongEntryGridInflated
	KindLongEntryTrailingNormal

	// Long close.
	KindLongCloseGridNormal
	KindLongCloseGridPartial
	KindLongCloseTrailingNormal
	KindLongCloseUnstuck
	KindLongCloseAutoReduce
	KindLongClosePanic

	// Short entry.
	KindShortEntryInitialNormal
	KindShortEntryInitialPartial
	KindShortEntryGridNormal
	KindShortEntryGridCropped
	KindShortEntryGridInflated
	KindShortEntryTrailingNormal

	// Short close.
	KindShortCloseGridNormal
	KindShortCloseGridPartial
	KindShortCloseTrailingNormal
	KindShortCloseUnstuck
	KindShortCloseAutoReduce
	KindShortClosePanic
)

var kindNames = map[Kind]string{
	KindUnspecified:              "unspecified",
	KindLongEntryInitialNormal:   "long_entry_initial_normal",
	KindLongEntryInitialPartial:  "long_entry_initial_partial",
	KindLongEntryGridNormal:      "long_entry_grid_normal",
	KindLongEntryGridCropped:     "long_entry_grid_cropped",
	KindLongEntryGridInflated:    "long_entry_grid_inflated",
	KindLongEntryTrailingNormal:  "long_entry_trailing_normal",
	KindLongCloseGridNormal:      "long_close_grid_normal",
	KindLongCloseGridPartial:     "long_close_grid_partial",
	KindLongCloseTrailingNormal:  "long_close_trailing_normal",
	KindLongCloseUnstuck:         "long_close_unstuck",
	KindLongCloseAutoReduce:      "long_close_auto_reduce",
	KindLongClosePanic:           "long_close_panic",
	KindShortEntryInitialNormal:  "short_entry_initial_normal",
	KindShortEntryInitialPartial: "short_entry_initial_partial",
	KindShortEntryGridNormal:     "short_entry_grid_normal",
	KindShortEntryGridCropped:    "short_entry_grid_cropped",
	KindShortEntryGridInflated:   "short_entry_grid_inflated",
	KindShortEntryTrailingNormal: "short_entry_trailing_normal",
	KindShortCloseGridNormal:     "short_close_grid_normal",
	KindShortCloseGridPartial:    "short_close_grid_partial",
	KindShortCloseTrailingNormal: "short_close_trailing_normal",
	KindShortCloseUnstuck:        "short_close_unstuck",
	KindShortCloseAutoReduce:     "short_close_auto_reduce",
	KindShortClosePanic:          "short_close_panic",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// FillPriority orders kinds for the fill simulator's deterministic
// sequencing: auto-reduce, then unstuck, then closes, then entries.
// Lower values fire first.
func (k Kind) FillPriority() int {
	switch k {
	case KindLongCloseAutoReduce, KindShortCloseAutoReduce:
		return 0
	case KindLongCloseUnstuck, KindShortCloseUnstuck:
		return 1
	case KindLongClosePanic, KindShortClosePanic:
		return 1
	default:
		if k.IsEntry() {
			return 3
		}
		return 2
	}
}

// IsEntry reports whether the kind is an entry (as opposed to a close).
func (k Kind) IsEntry() bool {
	switch k {
	case KindLongEntryInitialNormal, KindLongEntryInitialPartial,
		KindLongEntryGridNormal, KindLongEntryGridCropped, KindLongEntryGridInflated,
		KindLongEntryTrailingNormal,
		KindShortEntryInitialNormal, KindShortEntryInitialPartial,
		KindShortEntryGridNormal, KindShortEntryGridCropped, KindShortEntryGridInflated,
		KindShortEntryTrailingNormal:
		return true
	}
	return false
}
