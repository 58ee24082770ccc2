package exchangegrp

import (
	"time"

	"github.com/launchlab/launchpad/foundation/exchange"
	"github.com/launchlab/launchpad/foundation/exchange/holding"
	"github.com/launchlab/launchpad/foundation/exchange/pool"
	"github.com/launchlab/launchpad/foundation/exchange/token"
	"github.com/launchlab/launchpad/foundation/exchange/tradelog"
)

// launchToken contains the payload for launching a new token.
type launchToken struct {
	Symbol           string  `json:"symbol" validate:"required,min=2,max=10"`
	Name             string  `json:"name" validate:"required,min=3,max=50"`
	Description      string  `json:"description"`
	Creator          string  `json:"creator" validate:"required"`
	TotalSupply      float64 `json:"total_supply" validate:"required,gt=0"`
	InitialPrice     float64 `json:"initial_price" validate:"required,gt=0"`
	InitialLiquidity float64 `json:"initial_liquidity" validate:"required,gt=0"`
}

// buyToken contains the payload for buying tokens with base currency.
type buyToken struct {
	Symbol         string  `json:"symbol" validate:"required"`
	Buyer          string  `json:"buyer" validate:"required"`
	BaseAmount     float64 `json:"base_amount" validate:"required,gt=0"`
	MaxSlippagePct float64 `json:"max_slippage_pct" validate:"gte=0"`
}

// sellToken contains the payload for selling tokens back to the pool.
type sellToken struct {
	Symbol         string  `json:"symbol" validate:"required"`
	Seller         string  `json:"seller" validate:"required"`
	TokenAmount    float64 `json:"token_amount" validate:"required,gt=0"`
	MaxSlippagePct float64 `json:"max_slippage_pct" validate:"gte=0"`
}

// =============================================================================

// tokenInfo represents a token in the registry.
type tokenInfo struct {
	Symbol            string    `json:"symbol"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Creator           string    `json:"creator"`
	ContractAddress   string    `json:"contract_address"`
	TotalSupply       float64   `json:"total_supply"`
	CirculatingSupply float64   `json:"circulating_supply"`
	Price             float64   `json:"price"`
	MarketCap         float64   `json:"market_cap"`
	LiquidityPool     float64   `json:"liquidity_pool"`
	HoldersCount      int       `json:"holders_count"`
	TradeCount        uint64    `json:"trade_count"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

func toTokenInfo(tk token.Token) tokenInfo {
	return tokenInfo{
		Symbol:            tk.Symbol,
		Name:              tk.Name,
		Description:       tk.Description,
		Creator:           tk.Creator,
		ContractAddress:   tk.ContractAddress,
		TotalSupply:       tk.TotalSupply,
		CirculatingSupply: tk.CirculatingSupply,
		Price:             tk.Price,
		MarketCap:         tk.MarketCap,
		LiquidityPool:     tk.LiquidityPool,
		HoldersCount:      tk.HoldersCount,
		TradeCount:        tk.TradeCount,
		Status:            string(tk.Status),
		CreatedAt:         tk.CreatedAt,
	}
}

// poolInfo represents a liquidity pool.
type poolInfo struct {
	Symbol        string  `json:"symbol"`
	TokenReserve  float64 `json:"token_reserve"`
	BaseReserve   float64 `json:"base_reserve"`
	KConstant     float64 `json:"k_constant"`
	LPTokenSupply float64 `json:"lp_token_supply"`
	FeeRate       float64 `json:"fee_rate"`
	SpotPrice     float64 `json:"spot_price"`
}

func toPoolInfo(p pool.Pool) poolInfo {
	return poolInfo{
		Symbol:        p.Symbol,
		TokenReserve:  p.TokenReserve,
		BaseReserve:   p.BaseReserve,
		KConstant:     p.KConstant,
		LPTokenSupply: p.LPTokenSupply,
		FeeRate:       p.FeeRate,
		SpotPrice:     p.SpotPrice(),
	}
}

// tradeInfo represents an executed trade.
type tradeInfo struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Trader      string    `json:"trader"`
	Direction   string    `json:"direction"`
	Amount      float64   `json:"amount"`
	Price       float64   `json:"price"`
	BaseAmount  float64   `json:"base_amount"`
	Timestamp   time.Time `json:"timestamp"`
	SlippagePct float64   `json:"slippage_pct"`
}

func toTradeInfo(t tradelog.Trade) tradeInfo {
	return tradeInfo{
		ID:          t.ID,
		Symbol:      t.Symbol,
		Trader:      t.Trader,
		Direction:   string(t.Direction),
		Amount:      t.Amount,
		Price:       t.Price,
		BaseAmount:  t.BaseAmount,
		Timestamp:   t.Timestamp,
		SlippagePct: t.SlippagePct,
	}
}

// holdingInfo represents a user's position in one token.
type holdingInfo struct {
	Symbol       string    `json:"symbol"`
	Amount       float64   `json:"amount"`
	AcquiredAt   time.Time `json:"acquired_at"`
	AveragePrice float64   `json:"average_price"`
}

func toHoldingInfo(h holding.Holding) holdingInfo {
	return holdingInfo{
		Symbol:       h.Symbol,
		Amount:       h.Amount,
		AcquiredAt:   h.AcquiredAt,
		AveragePrice: h.AveragePrice,
	}
}

// positionInfo represents one valued portfolio line.
type positionInfo struct {
	Holding      holdingInfo `json:"holding"`
	CurrentPrice float64     `json:"current_price"`
	CurrentValue float64     `json:"current_value"`
	PnL          float64     `json:"pnl"`
}

// portfolioInfo represents the full valuation of a user's holdings.
type portfolioInfo struct {
	Account    string         `json:"account"`
	Positions  []positionInfo `json:"positions"`
	TotalValue float64        `json:"total_value"`
	TotalPnL   float64        `json:"total_pnl"`
}

func toPortfolioInfo(account string, pf exchange.Portfolio) portfolioInfo {
	positions := make([]positionInfo, len(pf.Positions))
	for i, pos := range pf.Positions {
		positions[i] = positionInfo{
			Holding:      toHoldingInfo(pos.Holding),
			CurrentPrice: pos.CurrentPrice,
			CurrentValue: pos.CurrentValue,
			PnL:          pos.PnL,
		}
	}

	return portfolioInfo{
		Account:    account,
		Positions:  positions,
		TotalValue: pf.TotalValue,
		TotalPnL:   pf.TotalPnL,
	}
}
