package exchange

import (
	"sort"

	"github.com/launchlab/launchpad/foundation/exchange/holding"
	"github.com/launchlab/launchpad/foundation/exchange/pool"
	"github.com/launchlab/launchpad/foundation/exchange/token"
	"github.com/launchlab/launchpad/foundation/exchange/tradelog"
)

// Position represents one portfolio line with its valuation at the token's
// current price. PnL compares the current value against the cost basis.
type Position struct {
	Holding      holding.Holding
	CurrentPrice float64
	CurrentValue float64
	PnL          float64
}

// Portfolio represents the full valuation of a user's holdings.
type Portfolio struct {
	Positions  []Position
	TotalValue float64
	TotalPnL   float64
}

// =============================================================================

// Token returns the registry entry for the specified symbol.
func (e *Exchange) Token(symbol string) (token.Token, error) {
	return e.registry.Query(symbol)
}

// Tokens returns every launched token in launch order.
func (e *Exchange) Tokens() []token.Token {
	return e.registry.All()
}

// Trending returns up to limit tokens ordered by trade count.
func (e *Exchange) Trending(limit int) []token.Token {
	return e.registry.Trending(limit)
}

// Pool returns the liquidity pool for the specified symbol.
func (e *Exchange) Pool(symbol string) (pool.Pool, error) {
	return e.pools.Query(symbol)
}

// RecentTrades returns up to limit trades, most recent first.
func (e *Exchange) RecentTrades(limit int) []tradelog.Trade {
	return e.trades.Recent(limit)
}

// Holdings returns the user's holdings keyed by symbol.
func (e *Exchange) Holdings(user string) map[string]holding.Holding {
	return e.holdings.HoldingsOf(user)
}

// Portfolio values the user's holdings at each token's current price. The
// exchange lock guarantees the prices and amounts come from one consistent
// snapshot.
func (e *Exchange) Portfolio(user string) Portfolio {
	e.mu.Lock()
	defer e.mu.Unlock()

	var pf Portfolio

	for symbol, h := range e.holdings.HoldingsOf(user) {
		tk, err := e.registry.Query(symbol)
		if err != nil {
			continue
		}

		currentValue := h.Amount * tk.Price
		pnl := currentValue - (h.Amount * h.AveragePrice)

		pf.Positions = append(pf.Positions, Position{
			Holding:      h,
			CurrentPrice: tk.Price,
			CurrentValue: currentValue,
			PnL:          pnl,
		})

		pf.TotalValue += currentValue
		pf.TotalPnL += pnl
	}

	sort.Slice(pf.Positions, func(i, j int) bool {
		return pf.Positions[i].Holding.Symbol < pf.Positions[j].Holding.Symbol
	})

	return pf
}
