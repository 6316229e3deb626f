package position

// MinBalance is the floor balance is clamped to, to avoid division by
// zero.
const MinBalance = 1e-12

// Wallet is the run's global wallet state. It is owned exclusively by
// the driver.
type Wallet struct {
	Balance         float64
	PnlCumsum       float64 // running cumulative realized PnL since start
	PnlCumsumMax    float64 // running max of PnlCumsum
	FeesPaidCumsum  float64
	unrealizedTotal float64
}

// NewWallet builds a wallet seeded with the given starting balance.
func NewWallet(startingBalance float64) *Wallet {
	if startingBalance < MinBalance {
		startingBalance = MinBalance
	}
	return &Wallet{Balance: startingBalance}
}

// ApplyRealized folds a realized PnL and fee into the wallet, updating
// the running cumsum/peak and floor.
func (w *Wallet) ApplyRealized(pnl, fee float64) {
	w.Balance += pnl - fee
	if w.Balance < MinBalance {
		w.Balance = MinBalance
	}
	w.PnlCumsum += pnl
	w.FeesPaidCumsum += fee
	if w.PnlCumsum > w.PnlCumsumMax {
		w.PnlCumsumMax = w.PnlCumsum
	}
}

// SetUnrealized records the current minute's aggregate unrealized PnL
// across all open positions, used by Equity.
func (w *Wallet) SetUnrealized(total float64) {
	w.unrealizedTotal = total
}

// Equity returns balance + sum(unrealized_pnl).
func (w *Wallet) Equity() float64 {
	return w.Balance + w.unrealizedTotal
}

// PeakBalance returns balance + (pnl_cumsum_max - pnl_cumsum_running),
// the drawdown reference point used by the unstuck allowance.
func (w *Wallet) PeakBalance() float64 {
	return w.Balance + (w.PnlCumsumMax - w.PnlCumsum)
}
