// Package exchangegrp maintains the group of handlers for the token
// exchange endpoints.
package exchangegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/launchlab/launchpad/business/web/errs"
	"github.com/launchlab/launchpad/foundation/exchange"
	"github.com/launchlab/launchpad/foundation/exchange/holding"
	"github.com/launchlab/launchpad/foundation/exchange/pool"
	"github.com/launchlab/launchpad/foundation/exchange/token"
	"github.com/launchlab/launchpad/foundation/ledger/alias"
	"github.com/launchlab/launchpad/foundation/ledger/database"
	"github.com/launchlab/launchpad/foundation/ledger/state"
	"github.com/launchlab/launchpad/foundation/web"
	"go.uber.org/zap"
)

// feeAccountID is the system account that collects launch fees.
const feeAccountID = database.AccountID("token_launch_fees")

// poolAccountID returns the system account that settles trades against the
// specified token's pool.
func poolAccountID(symbol string) database.AccountID {
	return database.AccountID("token_pool_" + symbol)
}

// Handlers manages the set of exchange endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Exchange *exchange.Exchange
	Aliases  *alias.Registry
}

// Launch mints a new token, seeds its liquidity pool and settles the launch
// fee on the ledger.
func (h Handlers) Launch(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var lt launchToken
	if err := web.Decode(r, &lt); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	creatorID, err := h.Aliases.Resolve(lt.Creator)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tk, err := h.Exchange.Launch(exchange.LaunchRequest{
		Symbol:           lt.Symbol,
		Name:             lt.Name,
		Description:      lt.Description,
		Creator:          string(creatorID),
		TotalSupply:      lt.TotalSupply,
		InitialPrice:     lt.InitialPrice,
		InitialLiquidity: lt.InitialLiquidity,
	}, h.State.QueryBalance(creatorID))
	if err != nil {
		return toTrustedError(err)
	}

	h.Log.Infow("token launched", "traceid", v.TraceID, "symbol", tk.Symbol, "creator", creatorID)

	// Settle the launch fee. The exchange validated the creator can afford
	// it, so a failure here means a concurrent spend won the balance.
	tx, err := database.NewTx(creatorID, feeAccountID, h.Exchange.LaunchFee(), "launch fee "+tk.Symbol)
	if err != nil {
		return err
	}
	if err := h.State.SubmitTransaction(tx); err != nil {
		h.Log.Infow("launch fee settlement failed", "traceid", v.TraceID, "symbol", tk.Symbol, "ERROR", err)
	}

	return web.Respond(ctx, w, toTokenInfo(tk), http.StatusCreated)
}

// Buy purchases tokens from the pool and settles the base payment on the
// ledger into the pool's account.
func (h Handlers) Buy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var bt buyToken
	if err := web.Decode(r, &bt); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	buyerID, err := h.Aliases.Resolve(bt.Buyer)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	trade, tk, err := h.Exchange.Buy(exchange.BuyRequest{
		Symbol:         bt.Symbol,
		Buyer:          string(buyerID),
		BaseAmount:     bt.BaseAmount,
		MaxSlippagePct: bt.MaxSlippagePct,
	}, h.State.QueryBalance(buyerID))
	if err != nil {
		return toTrustedError(err)
	}

	h.Log.Infow("tokens bought", "traceid", v.TraceID, "symbol", tk.Symbol, "buyer", buyerID, "amount", trade.Amount)

	tx, err := database.NewTx(buyerID, poolAccountID(tk.Symbol), trade.BaseAmount, "buy "+tk.Symbol)
	if err != nil {
		return err
	}
	if err := h.State.SubmitTransaction(tx); err != nil {
		h.Log.Infow("buy settlement failed", "traceid", v.TraceID, "symbol", tk.Symbol, "ERROR", err)
	}

	resp := struct {
		Trade tradeInfo `json:"trade"`
		Token tokenInfo `json:"token"`
	}{
		Trade: toTradeInfo(trade),
		Token: toTokenInfo(tk),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Sell sells tokens back to the pool and settles the base payout on the
// ledger out of the pool's account.
func (h Handlers) Sell(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var st sellToken
	if err := web.Decode(r, &st); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	sellerID, err := h.Aliases.Resolve(st.Seller)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	trade, tk, err := h.Exchange.Sell(exchange.SellRequest{
		Symbol:         st.Symbol,
		Seller:         string(sellerID),
		TokenAmount:    st.TokenAmount,
		MaxSlippagePct: st.MaxSlippagePct,
	})
	if err != nil {
		return toTrustedError(err)
	}

	h.Log.Infow("tokens sold", "traceid", v.TraceID, "symbol", tk.Symbol, "seller", sellerID, "amount", trade.Amount)

	// The payout comes out of the pool's settlement account. Early sells can
	// outrun the base the pool account has collected from buys; the trade
	// stands and the shortfall is logged.
	tx, err := database.NewTx(poolAccountID(tk.Symbol), sellerID, trade.BaseAmount, "sell "+tk.Symbol)
	if err != nil {
		return err
	}
	if err := h.State.SubmitTransaction(tx); err != nil {
		h.Log.Infow("sell settlement failed", "traceid", v.TraceID, "symbol", tk.Symbol, "ERROR", err)
	}

	resp := struct {
		Trade tradeInfo `json:"trade"`
		Token tokenInfo `json:"token"`
	}{
		Trade: toTradeInfo(trade),
		Token: toTokenInfo(tk),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Tokens returns every launched token.
func (h Handlers) Tokens(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tokens := h.Exchange.Tokens()

	infos := make([]tokenInfo, len(tokens))
	for i, tk := range tokens {
		infos[i] = toTokenInfo(tk)
	}

	return web.Respond(ctx, w, infos, http.StatusOK)
}

// Token returns the registry entry for one symbol.
func (h Handlers) Token(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tk, err := h.Exchange.Token(web.Param(r, "symbol"))
	if err != nil {
		return toTrustedError(err)
	}

	return web.Respond(ctx, w, toTokenInfo(tk), http.StatusOK)
}

// Trending returns the most traded tokens.
func (h Handlers) Trending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	limit, err := strconv.Atoi(web.Param(r, "limit"))
	if err != nil {
		return errs.NewTrusted(errors.New("limit must be a number"), http.StatusBadRequest)
	}

	tokens := h.Exchange.Trending(limit)

	infos := make([]tokenInfo, len(tokens))
	for i, tk := range tokens {
		infos[i] = toTokenInfo(tk)
	}

	return web.Respond(ctx, w, infos, http.StatusOK)
}

// Pool returns the liquidity pool for one symbol.
func (h Handlers) Pool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	p, err := h.Exchange.Pool(web.Param(r, "symbol"))
	if err != nil {
		return toTrustedError(err)
	}

	return web.Respond(ctx, w, toPoolInfo(p), http.StatusOK)
}

// Trades returns the most recent trades.
func (h Handlers) Trades(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	limit, err := strconv.Atoi(web.Param(r, "limit"))
	if err != nil {
		return errs.NewTrusted(errors.New("limit must be a number"), http.StatusBadRequest)
	}

	trades := h.Exchange.RecentTrades(limit)

	infos := make([]tradeInfo, len(trades))
	for i, t := range trades {
		infos[i] = toTradeInfo(t)
	}

	return web.Respond(ctx, w, infos, http.StatusOK)
}

// Holdings returns the token positions for one account.
func (h Handlers) Holdings(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := h.Aliases.Resolve(web.Param(r, "account"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	holdings := h.Exchange.Holdings(string(accountID))

	infos := make(map[string]holdingInfo, len(holdings))
	for symbol, hld := range holdings {
		infos[symbol] = toHoldingInfo(hld)
	}

	return web.Respond(ctx, w, infos, http.StatusOK)
}

// Portfolio returns the valued holdings for one account.
func (h Handlers) Portfolio(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := h.Aliases.Resolve(web.Param(r, "account"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	pf := h.Exchange.Portfolio(string(accountID))

	return web.Respond(ctx, w, toPortfolioInfo(string(accountID), pf), http.StatusOK)
}

// =============================================================================

// toTrustedError maps the exchange error taxonomy to trusted web errors so
// the client sees the proper status code and message.
func toTrustedError(err error) error {
	switch {
	case errors.Is(err, token.ErrNotFound), errors.Is(err, pool.ErrNotFound):
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	var dup *token.DuplicateSymbolError
	if errors.As(err, &dup) {
		return errs.NewTrusted(err, http.StatusConflict)
	}

	var meta *token.InvalidMetadataError
	var supply *token.InvalidSupplyError
	var balance *exchange.InsufficientBalanceError
	var slippage *exchange.SlippageError
	var reserve *pool.ReserveExhaustedError
	var holdings *holding.InsufficientHoldingsError
	if errors.As(err, &meta) || errors.As(err, &supply) || errors.As(err, &balance) ||
		errors.As(err, &slippage) || errors.As(err, &reserve) || errors.As(err, &holdings) {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return err
}
