// Package exchange is the core API for the token exchange and implements
// all the business rules and processing for launching tokens and trading
// them against their liquidity pools.
package exchange

import (
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/launchlab/launchpad/foundation/exchange/holding"
	"github.com/launchlab/launchpad/foundation/exchange/pool"
	"github.com/launchlab/launchpad/foundation/exchange/token"
	"github.com/launchlab/launchpad/foundation/exchange/tradelog"
)

// Share of the total supply seeded into the liquidity pool at launch. The
// remainder is minted directly to the creator's holdings.
const (
	poolSupplyShare    = 0.8
	creatorSupplyShare = 0.2
)

// EventHandler defines a function that is called when events occur in the
// processing of exchange operations.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the exchange.
type Config struct {
	LaunchFee           float64
	MinLiquidity        float64
	GraduationThreshold float64
	EvHandler           EventHandler
}

// Exchange manages the four stores that make up the token exchange and is
// the only component allowed to mutate more than one of them per operation.
// A single mutex serializes every launch, buy and sell over the whole
// exchange, not per symbol: all work under the lock is pure in-memory
// arithmetic, so hold times are short and cross-token invariants stay easy
// to reason about.
type Exchange struct {
	launchFee           float64
	minLiquidity        float64
	graduationThreshold float64
	evHandler           EventHandler
	mu                  sync.Mutex

	registry *token.Registry
	pools    *pool.Store
	holdings *holding.Ledger
	trades   *tradelog.Log
}

// New constructs a new exchange for token trading.
func New(cfg Config) *Exchange {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	return &Exchange{
		launchFee:           cfg.LaunchFee,
		minLiquidity:        cfg.MinLiquidity,
		graduationThreshold: cfg.GraduationThreshold,
		evHandler:           ev,

		registry: token.NewRegistry(),
		pools:    pool.NewStore(),
		holdings: holding.NewLedger(),
		trades:   tradelog.NewLog(),
	}
}

// LaunchFee returns the fee the caller must collect for every launch. The
// exchange only validates the creator can afford it; posting the actual
// fee transfer is the caller's responsibility.
func (e *Exchange) LaunchFee() float64 {
	return e.launchFee
}

// =============================================================================

// LaunchRequest contains the caller supplied information for launching a
// token. The creator must already be a resolved account identifier.
type LaunchRequest struct {
	Symbol           string
	Name             string
	Description      string
	Creator          string
	TotalSupply      float64
	InitialPrice     float64
	InitialLiquidity float64
}

// BuyRequest contains the caller supplied information for buying tokens
// with base currency.
type BuyRequest struct {
	Symbol         string
	Buyer          string
	BaseAmount     float64
	MaxSlippagePct float64
}

// SellRequest contains the caller supplied information for selling tokens
// back to the pool.
type SellRequest struct {
	Symbol         string
	Seller         string
	TokenAmount    float64
	MaxSlippagePct float64
}

// =============================================================================

// Launch mints a new token, creates its liquidity pool with 80% of the
// supply, and credits the remaining 20% to the creator. The creator's
// settlement balance is only validated against the launch fee; the caller
// posts the fee transfer itself using the amounts echoed back.
func (e *Exchange) Launch(req LaunchRequest, creatorBalance float64) (token.Token, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if creatorBalance < e.launchFee {
		return token.Token{}, &InsufficientBalanceError{Need: e.launchFee, Have: creatorBalance}
	}

	now := time.Now().UTC()

	nt := token.NewToken{
		Symbol:          req.Symbol,
		Name:            req.Name,
		Description:     req.Description,
		Creator:         req.Creator,
		ContractAddress: contractAddress(req.Symbol, req.Creator, now),
		TotalSupply:     req.TotalSupply,
		InitialPrice:    req.InitialPrice,
	}

	if _, err := e.registry.Create(nt, now); err != nil {
		return token.Token{}, err
	}

	if _, err := e.pools.Create(req.Symbol, req.TotalSupply*poolSupplyShare, req.InitialLiquidity, pool.DefaultFeeRate); err != nil {
		return token.Token{}, err
	}

	creatorTokens := req.TotalSupply * creatorSupplyShare
	if _, first := e.holdings.Credit(req.Creator, req.Symbol, creatorTokens, req.InitialPrice, now); first {
		e.registry.IncHolders(req.Symbol)
	}

	tk, err := e.registry.Query(req.Symbol)
	if err != nil {
		return token.Token{}, err
	}

	e.evHandler("exchange: launch: token[%s] name[%s] creator[%s] supply[%.0f] creator allocation[%.0f]",
		req.Symbol, req.Name, req.Creator, req.TotalSupply, creatorTokens)

	return tk, nil
}

// Buy executes a purchase of tokens for base currency against the symbol's
// pool. The buyer's settlement balance is validated but not debited; the
// caller posts the payment into the pool's settlement account using the
// returned trade. No store is mutated on any validation failure.
func (e *Exchange) Buy(req BuyRequest, buyerBalance float64) (tradelog.Trade, token.Token, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.registry.Query(req.Symbol); err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	if _, err := e.pools.Query(req.Symbol); err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	if buyerBalance < req.BaseAmount {
		return tradelog.Trade{}, token.Token{}, &InsufficientBalanceError{Need: req.BaseAmount, Have: buyerBalance}
	}

	q, err := e.pools.QuoteBuy(req.Symbol, req.BaseAmount)
	if err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	if q.SlippagePct > req.MaxSlippagePct {
		return tradelog.Trade{}, token.Token{}, &SlippageError{ComputedPct: q.SlippagePct, MaxPct: req.MaxSlippagePct}
	}

	p, err := e.pools.ApplyBuy(req.Symbol, req.BaseAmount, q.AmountOut)
	if err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	now := time.Now().UTC()

	if _, first := e.holdings.Credit(req.Buyer, req.Symbol, q.AmountOut, q.EffectivePrice, now); first {
		e.registry.IncHolders(req.Symbol)
	}

	tk, err := e.registry.ApplyTradeEffects(req.Symbol, q.AmountOut, p.SpotPrice(), p.BaseReserve)
	if err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	trade := tradelog.Trade{
		ID:          uuid.NewString(),
		Symbol:      req.Symbol,
		Trader:      req.Buyer,
		Direction:   tradelog.DirectionBuy,
		Amount:      q.AmountOut,
		Price:       q.EffectivePrice,
		BaseAmount:  req.BaseAmount,
		Timestamp:   now,
		SlippagePct: q.SlippagePct,
	}
	e.trades.Append(trade)

	tk = e.transitionStatus(tk)

	e.evHandler("exchange: buy: trader[%s] bought %.2f %s for %.2f base, slippage[%.2f%%]",
		req.Buyer, q.AmountOut, req.Symbol, req.BaseAmount, q.SlippagePct)

	return trade, tk, nil
}

// Sell executes a sale of tokens back to the symbol's pool. The seller's
// holdings are validated before anything else, matching the reference
// behavior where an unknown symbol you never held reports insufficient
// holdings. The caller posts the payout out of the pool's settlement
// account using the returned trade. No store is mutated on any validation
// failure.
func (e *Exchange) Sell(req SellRequest) (tradelog.Trade, token.Token, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if have := e.holdings.Amount(req.Seller, req.Symbol); have < req.TokenAmount || req.TokenAmount <= 0 {
		return tradelog.Trade{}, token.Token{}, &holding.InsufficientHoldingsError{Symbol: req.Symbol, Have: have, Want: req.TokenAmount}
	}

	if _, err := e.registry.Query(req.Symbol); err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	if _, err := e.pools.Query(req.Symbol); err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	q, err := e.pools.QuoteSell(req.Symbol, req.TokenAmount)
	if err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	if q.SlippagePct > req.MaxSlippagePct {
		return tradelog.Trade{}, token.Token{}, &SlippageError{ComputedPct: q.SlippagePct, MaxPct: req.MaxSlippagePct}
	}

	p, err := e.pools.ApplySell(req.Symbol, req.TokenAmount, q.AmountOut)
	if err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	if _, err := e.holdings.Debit(req.Seller, req.Symbol, req.TokenAmount); err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	tk, err := e.registry.ApplyTradeEffects(req.Symbol, -req.TokenAmount, p.SpotPrice(), p.BaseReserve)
	if err != nil {
		return tradelog.Trade{}, token.Token{}, err
	}

	now := time.Now().UTC()

	trade := tradelog.Trade{
		ID:          uuid.NewString(),
		Symbol:      req.Symbol,
		Trader:      req.Seller,
		Direction:   tradelog.DirectionSell,
		Amount:      req.TokenAmount,
		Price:       q.EffectivePrice,
		BaseAmount:  q.AmountOut,
		Timestamp:   now,
		SlippagePct: q.SlippagePct,
	}
	e.trades.Append(trade)

	tk = e.transitionStatus(tk)

	e.evHandler("exchange: sell: trader[%s] sold %.2f %s for %.2f base, slippage[%.2f%%]",
		req.Seller, req.TokenAmount, req.Symbol, q.AmountOut, q.SlippagePct)

	return trade, tk, nil
}

// SetStatus moves a token to an administrative lifecycle state such as
// Paused or Rugpulled. Trading is not blocked by these states; they exist
// for the surrounding application to act on.
func (e *Exchange) SetStatus(symbol string, status token.Status) (token.Token, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tk, err := e.registry.SetStatus(symbol, status)
	if err != nil {
		return token.Token{}, err
	}

	e.evHandler("exchange: setstatus: token[%s] status[%s]", symbol, status)

	return tk, nil
}

// =============================================================================

// transitionStatus evaluates the lifecycle state machine after a trade. A
// Launching token graduates the moment its market cap reaches the
// graduation threshold and never reverts; otherwise it starts trading once
// the pool's base reserve reaches the minimum liquidity. Trading and
// Graduated have no further automatic transitions.
func (e *Exchange) transitionStatus(tk token.Token) token.Token {
	if tk.Status != token.StatusLaunching {
		return tk
	}

	switch {
	case tk.MarketCap >= e.graduationThreshold:
		updated, err := e.registry.SetStatus(tk.Symbol, token.StatusGraduated)
		if err != nil {
			return tk
		}
		e.evHandler("exchange: status: token[%s] graduated, market cap[%.2f]", tk.Symbol, tk.MarketCap)
		return updated

	case tk.LiquidityPool >= e.minLiquidity:
		updated, err := e.registry.SetStatus(tk.Symbol, token.StatusTrading)
		if err != nil {
			return tk
		}
		e.evHandler("exchange: status: token[%s] now actively trading", tk.Symbol)
		return updated
	}

	return tk
}

// contractAddress derives a unique contract style address for a launched
// token from its symbol, creator and launch time.
func contractAddress(symbol string, creator string, now time.Time) string {
	input := fmt.Sprintf("%s%s%d", symbol, creator, now.UnixMilli())
	hash := crypto.Keccak256([]byte(input))

	return "token_" + hex.EncodeToString(hash[:10])
}
