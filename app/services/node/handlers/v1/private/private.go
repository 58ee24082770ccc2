// Package private maintains the group of handlers for node administration.
package private

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/launchlab/launchpad/business/web/errs"
	"github.com/launchlab/launchpad/foundation/exchange"
	"github.com/launchlab/launchpad/foundation/exchange/token"
	"github.com/launchlab/launchpad/foundation/ledger/state"
	"github.com/launchlab/launchpad/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of private endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Exchange *exchange.Exchange
}

// Status returns the node's chain position and mempool depth.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.LatestBlock()

	resp := struct {
		LatestBlockHash   string `json:"latest_block_hash"`
		LatestBlockNumber uint64 `json:"latest_block_number"`
		MempoolLength     int    `json:"mempool_length"`
		TokenCount        int    `json:"token_count"`
	}{
		LatestBlockHash:   latest.Hash(),
		LatestBlockNumber: latest.Header.Number,
		MempoolLength:     h.State.MempoolLength(),
		TokenCount:        len(h.Exchange.Tokens()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// setTokenStatus contains the payload for an administrative status change.
type setTokenStatus struct {
	Symbol string `json:"symbol" validate:"required"`
	Status string `json:"status" validate:"required,oneof=PAUSED RUGPULLED LAUNCHING TRADING GRADUATED"`
}

// SetTokenStatus moves a token to an administrative lifecycle state.
func (h Handlers) SetTokenStatus(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var sts setTokenStatus
	if err := web.Decode(r, &sts); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	tk, err := h.Exchange.Token(sts.Symbol)
	if err != nil {
		if errors.Is(err, token.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	// Graduated is terminal for trade driven transitions and stays terminal
	// for administrative ones.
	if tk.Status == token.StatusGraduated {
		return errs.NewTrusted(errors.New("token has graduated, status is final"), http.StatusConflict)
	}

	tk, err = h.Exchange.SetStatus(sts.Symbol, token.Status(sts.Status))
	if err != nil {
		return err
	}

	h.Log.Infow("token status changed", "traceid", v.TraceID, "symbol", tk.Symbol, "status", tk.Status)

	resp := struct {
		Symbol string `json:"symbol"`
		Status string `json:"status"`
	}{
		Symbol: tk.Symbol,
		Status: string(tk.Status),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals the worker to mine whatever is in the mempool.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
