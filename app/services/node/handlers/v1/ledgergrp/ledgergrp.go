// Package ledgergrp maintains the group of handlers for the settlement
// ledger endpoints.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/launchlab/launchpad/business/web/errs"
	"github.com/launchlab/launchpad/foundation/events"
	"github.com/launchlab/launchpad/foundation/ledger/alias"
	"github.com/launchlab/launchpad/foundation/ledger/database"
	"github.com/launchlab/launchpad/foundation/ledger/state"
	"github.com/launchlab/launchpad/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	State   *state.State
	Aliases *alias.Registry
	WS      websocket.Upgrader
	Evts    *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Accounts returns the current balances for all accounts or one account.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var accounts []database.Account

	switch acct := web.Param(r, "account"); acct {
	case "":
		accounts = h.State.AllAccounts()

	default:
		accountID, err := h.Aliases.Resolve(acct)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}

		account, err := h.State.QueryAccount(accountID)
		if err != nil {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		accounts = append(accounts, account)
	}

	acts := make([]accountInfo, len(accounts))
	for i, account := range accounts {
		acts[i] = accountInfo{
			Account: string(account.AccountID),
			Name:    h.Aliases.Lookup(account.AccountID),
			Balance: account.Balance,
		}
	}

	bi := balancesInfo{
		LatestBlock: h.State.LatestBlock().Hash(),
		Uncommitted: h.State.MempoolLength(),
		Accounts:    acts,
	}

	return web.Respond(ctx, w, bi, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	mempool := h.State.Mempool()

	trans := make([]txInfo, len(mempool))
	for i, tx := range mempool {
		trans[i] = txInfo{
			ID:        tx.ID,
			From:      string(tx.FromID),
			FromName:  h.Aliases.Lookup(tx.FromID),
			To:        string(tx.ToID),
			ToName:    h.Aliases.Lookup(tx.ToID),
			Amount:    tx.Amount,
			Memo:      tx.Memo,
			TimeStamp: tx.TimeStamp,
		}
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// AddTransaction adds a direct transfer to the mempool.
func (h Handlers) AddTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var st submitTx
	if err := web.Decode(r, &st); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	fromID, err := h.Aliases.Resolve(st.From)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	toID, err := h.Aliases.Resolve(st.To)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tx, err := database.NewTx(fromID, toID, st.Amount, st.Memo)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "from", fromID, "to", toID, "amount", st.Amount)
	if err := h.State.SubmitTransaction(tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
		TxID   string `json:"tx_id"`
	}{
		Status: "transaction added to mempool",
		TxID:   tx.ID,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlocksByNumber returns the blocks in the specified range.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	if fromStr == "latest" || fromStr == "" {
		fromStr = fmt.Sprintf("%d", h.State.LatestBlock().Header.Number)
	}

	toStr := web.Param(r, "to")
	if toStr == "latest" || toStr == "" {
		toStr = fmt.Sprintf("%d", h.State.LatestBlock().Header.Number)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(errors.New("from must be a number or latest"), http.StatusBadRequest)
	}

	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return errs.NewTrusted(errors.New("to must be a number or latest"), http.StatusBadRequest)
	}

	if from > to {
		return errs.NewTrusted(errors.New("from must be less than or equal to to"), http.StatusBadRequest)
	}

	dbBlocks := h.State.QueryBlocksByNumber(from, to)
	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	blocks := make([]blockInfo, len(dbBlocks))
	for i, block := range dbBlocks {
		blocks[i] = toBlockInfo(block, h.Aliases.Lookup)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// RegisterAlias maps a human readable name to an account id.
func (h Handlers) RegisterAlias(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var ra registerAlias
	if err := web.Decode(r, &ra); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	accountID, err := database.ToAccountID(ra.Account)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.Aliases.Register(ra.Alias, accountID); err != nil {
		if errors.Is(err, alias.ErrExists) {
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "alias registered",
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// AliasList returns the registered aliases.
func (h Handlers) AliasList(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	aliases := h.Aliases.Copy()

	list := make(map[string]string, len(aliases))
	for a, accountID := range aliases {
		list[a] = string(accountID)
	}

	return web.Respond(ctx, w, list, http.StatusOK)
}
