// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/launchlab/launchpad/app/services/node/handlers/v1/exchangegrp"
	"github.com/launchlab/launchpad/app/services/node/handlers/v1/ledgergrp"
	"github.com/launchlab/launchpad/app/services/node/handlers/v1/private"
	"github.com/launchlab/launchpad/foundation/events"
	"github.com/launchlab/launchpad/foundation/exchange"
	"github.com/launchlab/launchpad/foundation/ledger/alias"
	"github.com/launchlab/launchpad/foundation/ledger/state"
	"github.com/launchlab/launchpad/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Exchange *exchange.Exchange
	Aliases  *alias.Registry
	Evts     *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	exg := exchangegrp.Handlers{
		Log:      cfg.Log,
		State:    cfg.State,
		Exchange: cfg.Exchange,
		Aliases:  cfg.Aliases,
	}

	app.Handle(http.MethodPost, version, "/token/launch", exg.Launch)
	app.Handle(http.MethodPost, version, "/token/buy", exg.Buy)
	app.Handle(http.MethodPost, version, "/token/sell", exg.Sell)
	app.Handle(http.MethodGet, version, "/token/list", exg.Tokens)
	app.Handle(http.MethodGet, version, "/token/list/:symbol", exg.Token)
	app.Handle(http.MethodGet, version, "/token/trending/:limit", exg.Trending)
	app.Handle(http.MethodGet, version, "/pool/list/:symbol", exg.Pool)
	app.Handle(http.MethodGet, version, "/trade/list/:limit", exg.Trades)
	app.Handle(http.MethodGet, version, "/holdings/list/:account", exg.Holdings)
	app.Handle(http.MethodGet, version, "/portfolio/:account", exg.Portfolio)

	lgr := ledgergrp.Handlers{
		Log:     cfg.Log,
		State:   cfg.State,
		Aliases: cfg.Aliases,
		Evts:    cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/genesis/list", lgr.Genesis)
	app.Handle(http.MethodGet, version, "/accounts/list", lgr.Accounts)
	app.Handle(http.MethodGet, version, "/accounts/list/:account", lgr.Accounts)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", lgr.Mempool)
	app.Handle(http.MethodPost, version, "/tx/add", lgr.AddTransaction)
	app.Handle(http.MethodGet, version, "/blocks/list/:from/:to", lgr.BlocksByNumber)
	app.Handle(http.MethodPost, version, "/alias/register", lgr.RegisterAlias)
	app.Handle(http.MethodGet, version, "/alias/list", lgr.AliasList)
	app.Handle(http.MethodGet, version, "/events", lgr.Events)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:      cfg.Log,
		State:    cfg.State,
		Exchange: cfg.Exchange,
	}

	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
	app.Handle(http.MethodPost, version, "/token/status", prv.SetTokenStatus)
	app.Handle(http.MethodGet, version, "/mining/signal", prv.SignalMining)
}
