package pool_test

import (
	"testing"

	"github.com/launchlab/launchpad/foundation/exchange/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteBuy(t *testing.T) {
	store := pool.NewStore()
	_, err := store.Create("TEST", 1000, 1000, 0)
	require.NoError(t, err)

	q, err := store.QuoteBuy("TEST", 100)
	require.NoError(t, err)

	// tokens_out = 1000 * 100 / (1000 + 100)
	assert.InDelta(t, 90.9090909, q.AmountOut, 1e-6)
	assert.InDelta(t, 1.1, q.EffectivePrice, 1e-9)
	assert.InDelta(t, 1.0, q.SpotPrice, 1e-9)
	assert.InDelta(t, 10.0, q.SlippagePct, 1e-6)

	// Quoting must not move the reserves.
	p, err := store.Query("TEST")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, p.TokenReserve)
	assert.Equal(t, 1000.0, p.BaseReserve)
}

func TestQuoteSell(t *testing.T) {
	store := pool.NewStore()
	_, err := store.Create("TEST", 1000, 1000, 0)
	require.NoError(t, err)

	q, err := store.QuoteSell("TEST", 100)
	require.NoError(t, err)

	// base_out = 1000 * 100 / (1000 + 100)
	assert.InDelta(t, 90.9090909, q.AmountOut, 1e-6)
	assert.InDelta(t, 0.90909090, q.EffectivePrice, 1e-6)
	assert.InDelta(t, 1.0, q.SpotPrice, 1e-9)
	assert.InDelta(t, 10.0, q.SlippagePct, 1e-6)
}

func TestFeeReducesOutput(t *testing.T) {
	noFee := pool.NewStore()
	_, err := noFee.Create("TEST", 1000, 1000, 0)
	require.NoError(t, err)

	withFee := pool.NewStore()
	_, err = withFee.Create("TEST", 1000, 1000, pool.DefaultFeeRate)
	require.NoError(t, err)

	qFree, err := noFee.QuoteBuy("TEST", 100)
	require.NoError(t, err)

	qPaid, err := withFee.QuoteBuy("TEST", 100)
	require.NoError(t, err)

	assert.Less(t, qPaid.AmountOut, qFree.AmountOut)

	sFree, err := noFee.QuoteSell("TEST", 100)
	require.NoError(t, err)

	sPaid, err := withFee.QuoteSell("TEST", 100)
	require.NoError(t, err)

	assert.Less(t, sPaid.AmountOut, sFree.AmountOut)
}

func TestFeeGrowsReserveProduct(t *testing.T) {
	store := pool.NewStore()
	created, err := store.Create("TEST", 1000, 1000, pool.DefaultFeeRate)
	require.NoError(t, err)

	q, err := store.QuoteBuy("TEST", 100)
	require.NoError(t, err)

	p, err := store.ApplyBuy("TEST", 100, q.AmountOut)
	require.NoError(t, err)

	// The fee stays in the reserves so the product grows past the k
	// recorded at creation.
	assert.Greater(t, p.TokenReserve*p.BaseReserve, created.KConstant)
	assert.Equal(t, created.KConstant, p.KConstant)
}

func TestLargerTradesSlipMore(t *testing.T) {
	store := pool.NewStore()
	_, err := store.Create("TEST", 1000, 1000, pool.DefaultFeeRate)
	require.NoError(t, err)

	small, err := store.QuoteBuy("TEST", 10)
	require.NoError(t, err)

	large, err := store.QuoteBuy("TEST", 500)
	require.NoError(t, err)

	assert.Greater(t, large.SlippagePct, small.SlippagePct)
}

func TestReserveGuards(t *testing.T) {
	store := pool.NewStore()
	_, err := store.Create("TEST", 1000, 1000, 0)
	require.NoError(t, err)

	var reserveErr *pool.ReserveExhaustedError

	_, err = store.QuoteBuy("TEST", 0)
	require.ErrorAs(t, err, &reserveErr)

	_, err = store.QuoteBuy("TEST", -50)
	require.ErrorAs(t, err, &reserveErr)

	_, err = store.QuoteSell("TEST", 0)
	require.ErrorAs(t, err, &reserveErr)

	// Draining the reserves directly must be rejected.
	_, err = store.ApplyBuy("TEST", 100, 1000)
	require.ErrorAs(t, err, &reserveErr)

	_, err = store.ApplySell("TEST", 100, 1000)
	require.ErrorAs(t, err, &reserveErr)
}

func TestStoreLifecycle(t *testing.T) {
	store := pool.NewStore()

	_, err := store.Query("NOPE")
	require.ErrorIs(t, err, pool.ErrNotFound)

	p, err := store.Create("TEST", 800000, 500, pool.DefaultFeeRate)
	require.NoError(t, err)
	assert.Equal(t, 800000.0*500, p.KConstant)
	assert.InDelta(t, 20000.0, p.LPTokenSupply, 1e-6)

	_, err = store.Create("TEST", 1, 1, 0)
	require.ErrorIs(t, err, pool.ErrExists)
}
