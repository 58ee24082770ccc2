// Package pool maintains the constant-product liquidity pools that back
// every launched token and implements the AMM pricing math.
package pool

import (
	"math"
	"sync"
)

// DefaultFeeRate is the fraction taken from the input side of every trade.
const DefaultFeeRate = 0.003

// Pool represents a constant-product liquidity pool for one token. The
// KConstant is recorded at creation for reference only; fees are retained
// in the reserves so k grows slightly on every trade.
type Pool struct {
	Symbol        string
	TokenReserve  float64
	BaseReserve   float64
	KConstant     float64
	LPTokenSupply float64
	FeeRate       float64
}

// SpotPrice returns the pool's current price in base currency per token.
func (p Pool) SpotPrice() float64 {
	return p.BaseReserve / p.TokenReserve
}

// Quote represents the result of pricing a trade against a pool before
// any reserves are mutated.
type Quote struct {
	AmountOut      float64
	EffectivePrice float64
	SpotPrice      float64
	SlippagePct    float64
}

// =============================================================================

// Store manages the set of liquidity pools keyed by token symbol. Pools are
// created once at token launch and never destroyed.
type Store struct {
	mu    sync.RWMutex
	pools map[string]Pool
}

// NewStore constructs a store for liquidity pool management.
func NewStore() *Store {
	return &Store{
		pools: make(map[string]Pool),
	}
}

// Create adds a new pool for the specified symbol. The k constant and the
// LP token supply are recorded from the initial reserves.
func (s *Store) Create(symbol string, tokenReserve float64, baseReserve float64, feeRate float64) (Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pools[symbol]; exists {
		return Pool{}, ErrExists
	}

	p := Pool{
		Symbol:        symbol,
		TokenReserve:  tokenReserve,
		BaseReserve:   baseReserve,
		KConstant:     tokenReserve * baseReserve,
		LPTokenSupply: math.Sqrt(tokenReserve * baseReserve),
		FeeRate:       feeRate,
	}

	s.pools[symbol] = p

	return p, nil
}

// Query returns a copy of the pool for the specified symbol.
func (s *Store) Query(symbol string) (Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.pools[symbol]
	if !exists {
		return Pool{}, ErrNotFound
	}

	return p, nil
}

// QuoteBuy prices a purchase of tokens for the specified amount of base
// currency. The fee is taken from the base input before the swap formula.
func (s *Store) QuoteBuy(symbol string, baseIn float64) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.pools[symbol]
	if !exists {
		return Quote{}, ErrNotFound
	}

	if baseIn <= 0 {
		return Quote{}, &ReserveExhaustedError{Symbol: symbol, Requested: baseIn, Reserve: p.BaseReserve}
	}

	baseAfterFee := baseIn * (1 - p.FeeRate)
	tokensOut := (p.TokenReserve * baseAfterFee) / (p.BaseReserve + baseAfterFee)

	// A positive input mathematically keeps the output below the reserve,
	// but float rounding at extreme sizes can still drain the pool. Reject
	// anything that would leave a non-positive reserve.
	if tokensOut <= 0 || p.TokenReserve-tokensOut <= 0 {
		return Quote{}, &ReserveExhaustedError{Symbol: symbol, Requested: tokensOut, Reserve: p.TokenReserve}
	}

	effectivePrice := baseIn / tokensOut
	spotPrice := p.SpotPrice()
	slippagePct := math.Abs((effectivePrice-spotPrice)/spotPrice) * 100

	q := Quote{
		AmountOut:      tokensOut,
		EffectivePrice: effectivePrice,
		SpotPrice:      spotPrice,
		SlippagePct:    slippagePct,
	}

	return q, nil
}

// QuoteSell prices a sale of the specified amount of tokens for base
// currency. The fee is taken from the base output after the swap formula.
func (s *Store) QuoteSell(symbol string, tokensIn float64) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.pools[symbol]
	if !exists {
		return Quote{}, ErrNotFound
	}

	if tokensIn <= 0 {
		return Quote{}, &ReserveExhaustedError{Symbol: symbol, Requested: tokensIn, Reserve: p.TokenReserve}
	}

	baseOutBeforeFee := (p.BaseReserve * tokensIn) / (p.TokenReserve + tokensIn)
	baseOut := baseOutBeforeFee * (1 - p.FeeRate)

	if baseOut <= 0 || p.BaseReserve-baseOut <= 0 {
		return Quote{}, &ReserveExhaustedError{Symbol: symbol, Requested: baseOut, Reserve: p.BaseReserve}
	}

	effectivePrice := baseOut / tokensIn
	spotPrice := p.SpotPrice()
	slippagePct := math.Abs((spotPrice-effectivePrice)/spotPrice) * 100

	q := Quote{
		AmountOut:      baseOut,
		EffectivePrice: effectivePrice,
		SpotPrice:      spotPrice,
		SlippagePct:    slippagePct,
	}

	return q, nil
}

// ApplyBuy moves the reserves for an executed purchase: the full base input
// enters the pool (the fee stays in the reserves) and the quoted tokens
// leave it. The updated pool is returned.
func (s *Store) ApplyBuy(symbol string, baseIn float64, tokensOut float64) (Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.pools[symbol]
	if !exists {
		return Pool{}, ErrNotFound
	}

	if p.TokenReserve-tokensOut <= 0 {
		return Pool{}, &ReserveExhaustedError{Symbol: symbol, Requested: tokensOut, Reserve: p.TokenReserve}
	}

	p.BaseReserve += baseIn
	p.TokenReserve -= tokensOut
	s.pools[symbol] = p

	return p, nil
}

// ApplySell moves the reserves for an executed sale: the sold tokens enter
// the pool and the post-fee base output leaves it. The updated pool is
// returned.
func (s *Store) ApplySell(symbol string, tokensIn float64, baseOut float64) (Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.pools[symbol]
	if !exists {
		return Pool{}, ErrNotFound
	}

	if p.BaseReserve-baseOut <= 0 {
		return Pool{}, &ReserveExhaustedError{Symbol: symbol, Requested: baseOut, Reserve: p.BaseReserve}
	}

	p.BaseReserve -= baseOut
	p.TokenReserve += tokensIn
	s.pools[symbol] = p

	return p, nil
}
