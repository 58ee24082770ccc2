package token

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a symbol is not present in the registry.
var ErrNotFound = errors.New("token not found")

// DuplicateSymbolError is returned when launching a symbol that already exists.
type DuplicateSymbolError struct {
	Symbol string
}

// Error implements the error interface.
func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("token symbol %q already exists", e.Symbol)
}

// InvalidMetadataError is returned when the token metadata is out of bounds.
type InvalidMetadataError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid token %s: %s", e.Field, e.Reason)
}

// InvalidSupplyError is returned when the total supply is out of bounds.
type InvalidSupplyError struct {
	Supply float64
}

// Error implements the error interface.
func (e *InvalidSupplyError) Error() string {
	return fmt.Sprintf("total supply must be between %.0f and %.0f tokens, got %.0f", MinSupply, MaxSupply, e.Supply)
}
