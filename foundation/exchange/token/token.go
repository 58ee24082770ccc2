// Package token maintains the registry of launched tokens and their
// market statistics.
package token

import (
	"sort"
	"sync"
	"time"
)

// Set of statuses a token moves through during its lifecycle. Launching,
// Trading and Graduated are driven by trade activity. Paused and Rugpulled
// are administrative and only ever set from the outside.
const (
	StatusLaunching = Status("LAUNCHING")
	StatusTrading   = Status("TRADING")
	StatusGraduated = Status("GRADUATED")
	StatusPaused    = Status("PAUSED")
	StatusRugpulled = Status("RUGPULLED")
)

// Status represents the lifecycle state of a token.
type Status string

// Bounds enforced when a token is created.
const (
	MinSymbolLen = 2
	MaxSymbolLen = 10
	MinNameLen   = 3
	MaxNameLen   = 50
	MinSupply    = 1_000_000.0
	MaxSupply    = 1_000_000_000_000.0
)

// Token represents a launched token and its market statistics. HoldersCount
// only ever increments on a first acquisition and is never decremented when
// a holder exits, so it reads as "accounts that ever held", not live holders.
type Token struct {
	Symbol            string
	Name              string
	Description       string
	Creator           string
	ContractAddress   string
	TotalSupply       float64
	CirculatingSupply float64
	Price             float64
	MarketCap         float64
	LiquidityPool     float64
	HoldersCount      int
	TradeCount        uint64
	Status            Status
	CreatedAt         time.Time
}

// NewToken contains the caller supplied information for creating a token.
type NewToken struct {
	Symbol          string
	Name            string
	Description     string
	Creator         string
	ContractAddress string
	TotalSupply     float64
	InitialPrice    float64
}

// =============================================================================

// Registry manages the set of launched tokens. All numeric consistency
// across trades is the exchange engine's responsibility; the registry only
// enforces symbol uniqueness and metadata bounds.
type Registry struct {
	mu      sync.RWMutex
	tokens  map[string]Token
	symbols []string
}

// NewRegistry constructs a registry for token management.
func NewRegistry() *Registry {
	return &Registry{
		tokens: make(map[string]Token),
	}
}

// Create validates the metadata bounds and adds a new token to the registry
// with a zero circulating supply in the Launching state.
func (r *Registry) Create(nt NewToken, now time.Time) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tokens[nt.Symbol]; exists {
		return Token{}, &DuplicateSymbolError{Symbol: nt.Symbol}
	}

	if l := len(nt.Symbol); l < MinSymbolLen || l > MaxSymbolLen {
		return Token{}, &InvalidMetadataError{Field: "symbol", Reason: "must be 2-10 characters"}
	}

	if l := len(nt.Name); l < MinNameLen || l > MaxNameLen {
		return Token{}, &InvalidMetadataError{Field: "name", Reason: "must be 3-50 characters"}
	}

	if nt.TotalSupply < MinSupply || nt.TotalSupply > MaxSupply {
		return Token{}, &InvalidSupplyError{Supply: nt.TotalSupply}
	}

	tk := Token{
		Symbol:          nt.Symbol,
		Name:            nt.Name,
		Description:     nt.Description,
		Creator:         nt.Creator,
		ContractAddress: nt.ContractAddress,
		TotalSupply:     nt.TotalSupply,
		Price:           nt.InitialPrice,
		Status:          StatusLaunching,
		CreatedAt:       now,
	}

	r.tokens[nt.Symbol] = tk
	r.symbols = append(r.symbols, nt.Symbol)

	return tk, nil
}

// Query returns a copy of the token for the specified symbol.
func (r *Registry) Query(symbol string) (Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tk, exists := r.tokens[symbol]
	if !exists {
		return Token{}, ErrNotFound
	}

	return tk, nil
}

// All returns a copy of every token in launch order.
func (r *Registry) All() []Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]Token, 0, len(r.symbols))
	for _, symbol := range r.symbols {
		tokens = append(tokens, r.tokens[symbol])
	}

	return tokens
}

// Trending returns up to limit tokens ordered by trade count descending.
// Ties keep launch order.
func (r *Registry) Trending(limit int) []Token {
	tokens := r.All()

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].TradeCount > tokens[j].TradeCount
	})

	if limit > 0 && limit < len(tokens) {
		tokens = tokens[:limit]
	}

	return tokens
}

// ApplyTradeEffects adjusts the circulating supply, sets the new spot price
// and liquidity mirror, recomputes the market cap and bumps the trade count.
// The updated token is returned.
func (r *Registry) ApplyTradeEffects(symbol string, deltaCirculating float64, newPrice float64, baseReserve float64) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tk, exists := r.tokens[symbol]
	if !exists {
		return Token{}, ErrNotFound
	}

	tk.CirculatingSupply += deltaCirculating
	tk.Price = newPrice
	tk.MarketCap = tk.CirculatingSupply * tk.Price
	tk.LiquidityPool = baseReserve
	tk.TradeCount++

	r.tokens[symbol] = tk

	return tk, nil
}

// IncHolders bumps the holders count for the specified symbol. The count is
// monotonic and is never decremented.
func (r *Registry) IncHolders(symbol string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tk, exists := r.tokens[symbol]
	if !exists {
		return
	}

	tk.HoldersCount++
	r.tokens[symbol] = tk
}

// SetStatus moves the token to the specified lifecycle state.
func (r *Registry) SetStatus(symbol string, status Status) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tk, exists := r.tokens[symbol]
	if !exists {
		return Token{}, ErrNotFound
	}

	tk.Status = status
	r.tokens[symbol] = tk

	return tk, nil
}
