package pool

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no pool exists for a symbol.
var ErrNotFound = errors.New("liquidity pool not found")

// ErrExists is returned when creating a pool for a symbol that has one.
var ErrExists = errors.New("liquidity pool already exists")

// ReserveExhaustedError is returned when a trade would drain a reserve to a
// non-positive value, or when the trade amount itself is not positive.
// Failing the quote keeps the pool away from division-by-zero and negative
// price states.
type ReserveExhaustedError struct {
	Symbol    string
	Requested float64
	Reserve   float64
}

// Error implements the error interface.
func (e *ReserveExhaustedError) Error() string {
	return fmt.Sprintf("trade of %g would exhaust pool %s reserve of %g", e.Requested, e.Symbol, e.Reserve)
}
