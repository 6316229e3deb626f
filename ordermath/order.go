package ordermath

// Order is the tuple (symbol, side, kind, price, qty). Orders are
// generated fresh each minute; they are never persistent objects, so
// there is no ID/status here: that is the fill simulator's job for the
// minute it is produced in.
type Order struct {
	Symbol string
	Long   bool // true = long side, false = short side
	Kind   Kind
	Price  float64
	Qty    float64
	Market bool // true if this order should fill at the candle's open
}

// SkipReason explains why an order was not emitted: every order-math
// function returns a tagged Decision rather than raising an error for
// an ordinary no-trigger or below-minimum outcome.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipNoTrigger        // trailing/grid trigger condition not met
	SkipBelowMinCost     // qty*price < min_cost, dropped silently
	SkipPositionTooLarge // no room left under WEL
	SkipNotEligible      // symbol not in the eligible set (no new entries)
	SkipForcedMode       // forced_mode suppresses this order class
	SkipNoStuckPosition  // unstuck: nothing stuck this minute
)

// Decision is the sum-type result of every order-math function:
// exactly one of Order or Reason is meaningful, selected by Emit.
type Decision struct {
	Emit   bool
	Order  Order
	Reason SkipReason
}

func Emitted(o Order) Decision  { return Decision{Emit: true, Order: o} }
func Skipped(r SkipReason) Decision { return Decision{Emit: false, Reason: r} }

var skipReasonNames = map[SkipReason]string{
	SkipNone:             "none",
	SkipNoTrigger:        "no_trigger",
	SkipBelowMinCost:     "below_min_cost",
	SkipPositionTooLarge: "position_too_large",
	SkipNotEligible:      "not_eligible",
	SkipForcedMode:       "forced_mode",
	SkipNoStuckPosition:  "no_stuck_position",
}

func (r SkipReason) String() string {
	if n, ok := skipReasonNames[r]; ok {
		return n
	}
	return "unknown"
}
