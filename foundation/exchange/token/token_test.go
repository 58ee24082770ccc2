package token_test

import (
	"testing"
	"time"

	"github.com/launchlab/launchpad/foundation/exchange/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToken(symbol string) token.NewToken {
	return token.NewToken{
		Symbol:       symbol,
		Name:         "Test Token",
		Creator:      "alice",
		TotalSupply:  1_000_000,
		InitialPrice: 0.01,
	}
}

func TestCreate(t *testing.T) {
	registry := token.NewRegistry()
	now := time.Now().UTC()

	tk, err := registry.Create(newToken("TEST"), now)
	require.NoError(t, err)

	assert.Equal(t, token.StatusLaunching, tk.Status)
	assert.Equal(t, 0.0, tk.CirculatingSupply)
	assert.Equal(t, 0.01, tk.Price)
	assert.Equal(t, now, tk.CreatedAt)

	var dup *token.DuplicateSymbolError
	_, err = registry.Create(newToken("TEST"), now)
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "TEST", dup.Symbol)
}

func TestCreateBounds(t *testing.T) {
	registry := token.NewRegistry()
	now := time.Now().UTC()

	var metaErr *token.InvalidMetadataError
	var supplyErr *token.InvalidSupplyError

	nt := newToken("T")
	_, err := registry.Create(nt, now)
	require.ErrorAs(t, err, &metaErr)

	nt = newToken("TOOLONGSYMBOL")
	_, err = registry.Create(nt, now)
	require.ErrorAs(t, err, &metaErr)

	nt = newToken("TEST")
	nt.Name = "ab"
	_, err = registry.Create(nt, now)
	require.ErrorAs(t, err, &metaErr)

	nt = newToken("TEST")
	nt.TotalSupply = 999_999
	_, err = registry.Create(nt, now)
	require.ErrorAs(t, err, &supplyErr)

	nt = newToken("TEST")
	nt.TotalSupply = 1_000_000_000_001
	_, err = registry.Create(nt, now)
	require.ErrorAs(t, err, &supplyErr)

	nt = newToken("TEST")
	nt.TotalSupply = 1_000_000
	_, err = registry.Create(nt, now)
	require.NoError(t, err)
}

func TestApplyTradeEffects(t *testing.T) {
	registry := token.NewRegistry()
	now := time.Now().UTC()

	_, err := registry.Create(newToken("TEST"), now)
	require.NoError(t, err)

	tk, err := registry.ApplyTradeEffects("TEST", 500, 0.02, 110)
	require.NoError(t, err)

	assert.Equal(t, 500.0, tk.CirculatingSupply)
	assert.Equal(t, 0.02, tk.Price)
	assert.InDelta(t, 10.0, tk.MarketCap, 1e-9)
	assert.Equal(t, 110.0, tk.LiquidityPool)
	assert.Equal(t, uint64(1), tk.TradeCount)

	tk, err = registry.ApplyTradeEffects("TEST", -200, 0.015, 95)
	require.NoError(t, err)

	assert.Equal(t, 300.0, tk.CirculatingSupply)
	assert.InDelta(t, 4.5, tk.MarketCap, 1e-9)
	assert.Equal(t, uint64(2), tk.TradeCount)

	_, err = registry.ApplyTradeEffects("NOPE", 1, 1, 1)
	require.ErrorIs(t, err, token.ErrNotFound)
}

func TestTrending(t *testing.T) {
	registry := token.NewRegistry()
	now := time.Now().UTC()

	for _, symbol := range []string{"AAA", "BBB", "CCC"} {
		_, err := registry.Create(newToken(symbol), now)
		require.NoError(t, err)
	}

	// BBB trades twice, CCC once, AAA never.
	_, err := registry.ApplyTradeEffects("BBB", 1, 0.01, 1)
	require.NoError(t, err)
	_, err = registry.ApplyTradeEffects("BBB", 1, 0.01, 1)
	require.NoError(t, err)
	_, err = registry.ApplyTradeEffects("CCC", 1, 0.01, 1)
	require.NoError(t, err)

	trending := registry.Trending(2)
	require.Len(t, trending, 2)
	assert.Equal(t, "BBB", trending[0].Symbol)
	assert.Equal(t, "CCC", trending[1].Symbol)

	// All returns launch order regardless of activity.
	all := registry.All()
	require.Len(t, all, 3)
	assert.Equal(t, "AAA", all[0].Symbol)
	assert.Equal(t, "CCC", all[2].Symbol)
}

func TestHoldersAndStatus(t *testing.T) {
	registry := token.NewRegistry()
	now := time.Now().UTC()

	_, err := registry.Create(newToken("TEST"), now)
	require.NoError(t, err)

	registry.IncHolders("TEST")
	registry.IncHolders("TEST")

	tk, err := registry.Query("TEST")
	require.NoError(t, err)
	assert.Equal(t, 2, tk.HoldersCount)

	tk, err = registry.SetStatus("TEST", token.StatusPaused)
	require.NoError(t, err)
	assert.Equal(t, token.StatusPaused, tk.Status)

	_, err = registry.SetStatus("NOPE", token.StatusPaused)
	require.ErrorIs(t, err, token.ErrNotFound)
}
