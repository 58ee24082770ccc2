package exchange

import "fmt"

// InsufficientBalanceError is returned when the trader's settlement balance
// cannot cover the launch fee or the base amount of a buy.
type InsufficientBalanceError struct {
	Need float64
	Have float64
}

// Error implements the error interface.
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance, need %g, have %g", e.Need, e.Have)
}

// SlippageError is returned when the computed slippage of a trade exceeds
// the limit the trader was willing to accept.
type SlippageError struct {
	ComputedPct float64
	MaxPct      float64
}

// Error implements the error interface.
func (e *SlippageError) Error() string {
	return fmt.Sprintf("slippage %.2f%% exceeds the maximum of %.2f%%", e.ComputedPct, e.MaxPct)
}
