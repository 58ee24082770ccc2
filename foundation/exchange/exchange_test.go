package exchange_test

import (
	"testing"

	"github.com/launchlab/launchpad/foundation/exchange"
	"github.com/launchlab/launchpad/foundation/exchange/holding"
	"github.com/launchlab/launchpad/foundation/exchange/token"
	"github.com/launchlab/launchpad/foundation/exchange/tradelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExchange(graduationThreshold float64) *exchange.Exchange {
	return exchange.New(exchange.Config{
		LaunchFee:           10,
		MinLiquidity:        100,
		GraduationThreshold: graduationThreshold,
	})
}

func launchRequest() exchange.LaunchRequest {
	return exchange.LaunchRequest{
		Symbol:           "TEST",
		Name:             "Test Token",
		Description:      "a token for testing",
		Creator:          "alice",
		TotalSupply:      1_000_000,
		InitialPrice:     0.01,
		InitialLiquidity: 500,
	}
}

func TestLaunch(t *testing.T) {
	exch := newExchange(50_000)

	tk, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	assert.Equal(t, "TEST", tk.Symbol)
	assert.Equal(t, token.StatusLaunching, tk.Status)
	assert.Equal(t, 1, tk.HoldersCount)
	assert.NotEmpty(t, tk.ContractAddress)

	// 80% of the supply seeds the pool, 20% goes to the creator.
	p, err := exch.Pool("TEST")
	require.NoError(t, err)
	assert.Equal(t, 800_000.0, p.TokenReserve)
	assert.Equal(t, 500.0, p.BaseReserve)

	holdings := exch.Holdings("alice")
	require.Contains(t, holdings, "TEST")
	assert.Equal(t, 200_000.0, holdings["TEST"].Amount)
	assert.Equal(t, 0.01, holdings["TEST"].AveragePrice)
}

func TestLaunchValidation(t *testing.T) {
	exch := newExchange(50_000)

	var balErr *exchange.InsufficientBalanceError
	_, err := exch.Launch(launchRequest(), 5)
	require.ErrorAs(t, err, &balErr)
	assert.Equal(t, 10.0, balErr.Need)

	_, err = exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	var dup *token.DuplicateSymbolError
	_, err = exch.Launch(launchRequest(), 1000)
	require.ErrorAs(t, err, &dup)

	req := launchRequest()
	req.Symbol = "LOW"
	req.TotalSupply = 999_999
	var supplyErr *token.InvalidSupplyError
	_, err = exch.Launch(req, 1000)
	require.ErrorAs(t, err, &supplyErr)
}

func TestBuySellFlow(t *testing.T) {
	exch := newExchange(50_000)

	_, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	trade, tk, err := exch.Buy(exchange.BuyRequest{
		Symbol:         "TEST",
		Buyer:          "bob",
		BaseAmount:     100,
		MaxSlippagePct: 100,
	}, 10_000)
	require.NoError(t, err)

	assert.Equal(t, tradelog.DirectionBuy, trade.Direction)
	assert.Greater(t, trade.Amount, 0.0)
	assert.NotEmpty(t, trade.ID)

	// The registry mirrors the pool after the trade.
	p, err := exch.Pool("TEST")
	require.NoError(t, err)
	assert.Equal(t, 600.0, p.BaseReserve)
	assert.Equal(t, p.BaseReserve, tk.LiquidityPool)
	assert.InDelta(t, p.SpotPrice(), tk.Price, 1e-12)
	assert.Equal(t, trade.Amount, tk.CirculatingSupply)
	assert.Equal(t, uint64(1), tk.TradeCount)
	assert.Equal(t, 2, tk.HoldersCount)

	// Liquidity crossed the minimum so the token starts trading.
	assert.Equal(t, token.StatusTrading, tk.Status)

	// Conservation: every token is in a holding or the pool reserve.
	total := exch.Holdings("alice")["TEST"].Amount + exch.Holdings("bob")["TEST"].Amount + p.TokenReserve
	assert.InDelta(t, 1_000_000.0, total, 1e-6)

	sellAmount := trade.Amount / 2
	sellTrade, tk, err := exch.Sell(exchange.SellRequest{
		Symbol:         "TEST",
		Seller:         "bob",
		TokenAmount:    sellAmount,
		MaxSlippagePct: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, tradelog.DirectionSell, sellTrade.Direction)
	assert.Greater(t, sellTrade.BaseAmount, 0.0)
	assert.Equal(t, uint64(2), tk.TradeCount)
	assert.InDelta(t, trade.Amount-sellAmount, exch.Holdings("bob")["TEST"].Amount, 1e-9)

	p, err = exch.Pool("TEST")
	require.NoError(t, err)
	total = exch.Holdings("alice")["TEST"].Amount + exch.Holdings("bob")["TEST"].Amount + p.TokenReserve
	assert.InDelta(t, 1_000_000.0, total, 1e-6)

	trades := exch.RecentTrades(10)
	require.Len(t, trades, 2)
	assert.Equal(t, tradelog.DirectionSell, trades[0].Direction)
	assert.Equal(t, tradelog.DirectionBuy, trades[1].Direction)
}

func TestFeeRoundTrip(t *testing.T) {
	exch := newExchange(50_000)

	_, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	buyTrade, _, err := exch.Buy(exchange.BuyRequest{
		Symbol:         "TEST",
		Buyer:          "bob",
		BaseAmount:     100,
		MaxSlippagePct: 100,
	}, 10_000)
	require.NoError(t, err)

	// Selling straight back returns strictly less base than was paid
	// because the fee is taken on both legs.
	sellTrade, _, err := exch.Sell(exchange.SellRequest{
		Symbol:         "TEST",
		Seller:         "bob",
		TokenAmount:    buyTrade.Amount,
		MaxSlippagePct: 100,
	})
	require.NoError(t, err)
	assert.Less(t, sellTrade.BaseAmount, buyTrade.BaseAmount)
	assert.Equal(t, tradelog.DirectionSell, sellTrade.Direction)

	// The round trip removed bob's entry entirely.
	assert.NotContains(t, exch.Holdings("bob"), "TEST")
}

func TestBuyValidation(t *testing.T) {
	exch := newExchange(50_000)

	_, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	_, _, err = exch.Buy(exchange.BuyRequest{Symbol: "NOPE", Buyer: "bob", BaseAmount: 100, MaxSlippagePct: 100}, 10_000)
	require.ErrorIs(t, err, token.ErrNotFound)

	var balErr *exchange.InsufficientBalanceError
	_, _, err = exch.Buy(exchange.BuyRequest{Symbol: "TEST", Buyer: "bob", BaseAmount: 100, MaxSlippagePct: 100}, 50)
	require.ErrorAs(t, err, &balErr)

	// A tight slippage limit rejects the trade and mutates nothing.
	var slipErr *exchange.SlippageError
	_, _, err = exch.Buy(exchange.BuyRequest{Symbol: "TEST", Buyer: "bob", BaseAmount: 100, MaxSlippagePct: 0.5}, 10_000)
	require.ErrorAs(t, err, &slipErr)

	p, err := exch.Pool("TEST")
	require.NoError(t, err)
	assert.Equal(t, 500.0, p.BaseReserve)

	tk, err := exch.Token("TEST")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), tk.TradeCount)
	assert.Empty(t, exch.Holdings("bob"))
}

func TestSellValidation(t *testing.T) {
	exch := newExchange(50_000)

	_, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	// Holdings are checked before the symbol, so selling an unknown token
	// reports insufficient holdings rather than not found.
	var holdErr *holding.InsufficientHoldingsError
	_, _, err = exch.Sell(exchange.SellRequest{Symbol: "NOPE", Seller: "bob", TokenAmount: 10, MaxSlippagePct: 100})
	require.ErrorAs(t, err, &holdErr)

	_, _, err = exch.Sell(exchange.SellRequest{Symbol: "TEST", Seller: "bob", TokenAmount: 10, MaxSlippagePct: 100})
	require.ErrorAs(t, err, &holdErr)

	// The creator holds 200k from launch and cannot sell more than that.
	_, _, err = exch.Sell(exchange.SellRequest{Symbol: "TEST", Seller: "alice", TokenAmount: 200_001, MaxSlippagePct: 100})
	require.ErrorAs(t, err, &holdErr)
}

func TestGraduation(t *testing.T) {

	// A tiny threshold so the first buy graduates the token.
	exch := newExchange(50)

	_, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	_, tk, err := exch.Buy(exchange.BuyRequest{Symbol: "TEST", Buyer: "bob", BaseAmount: 200, MaxSlippagePct: 100}, 10_000)
	require.NoError(t, err)
	assert.Equal(t, token.StatusGraduated, tk.Status)

	// Graduation is irreversible, selling back down does not change it.
	_, tk, err = exch.Sell(exchange.SellRequest{Symbol: "TEST", Seller: "bob", TokenAmount: 100, MaxSlippagePct: 100})
	require.NoError(t, err)
	assert.Equal(t, token.StatusGraduated, tk.Status)
}

func TestPortfolio(t *testing.T) {
	exch := newExchange(50_000)

	_, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	trade, tk, err := exch.Buy(exchange.BuyRequest{Symbol: "TEST", Buyer: "bob", BaseAmount: 100, MaxSlippagePct: 100}, 10_000)
	require.NoError(t, err)

	pf := exch.Portfolio("bob")
	require.Len(t, pf.Positions, 1)

	pos := pf.Positions[0]
	assert.Equal(t, "TEST", pos.Holding.Symbol)
	assert.Equal(t, tk.Price, pos.CurrentPrice)
	assert.InDelta(t, trade.Amount*tk.Price, pos.CurrentValue, 1e-9)
	assert.InDelta(t, pos.CurrentValue-trade.Amount*pos.Holding.AveragePrice, pos.PnL, 1e-9)
	assert.InDelta(t, pos.CurrentValue, pf.TotalValue, 1e-9)

	assert.Empty(t, exch.Portfolio("carol").Positions)
}

func TestTrendingQuery(t *testing.T) {
	exch := newExchange(50_000)

	_, err := exch.Launch(launchRequest(), 1000)
	require.NoError(t, err)

	second := launchRequest()
	second.Symbol = "OTHER"
	second.Name = "Other Token"
	_, err = exch.Launch(second, 1000)
	require.NoError(t, err)

	_, _, err = exch.Buy(exchange.BuyRequest{Symbol: "OTHER", Buyer: "bob", BaseAmount: 50, MaxSlippagePct: 100}, 10_000)
	require.NoError(t, err)

	trending := exch.Trending(1)
	require.Len(t, trending, 1)
	assert.Equal(t, "OTHER", trending[0].Symbol)

	all := exch.Tokens()
	require.Len(t, all, 2)
	assert.Equal(t, "TEST", all[0].Symbol)
}
