package ledgergrp

import (
	"github.com/launchlab/launchpad/foundation/ledger/database"
)

// submitTx contains the payload for a direct base currency transfer.
type submitTx struct {
	From   string  `json:"from" validate:"required"`
	To     string  `json:"to" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Memo   string  `json:"memo"`
}

// registerAlias contains the payload for registering an account alias.
type registerAlias struct {
	Alias   string `json:"alias" validate:"required,min=2,max=30"`
	Account string `json:"account" validate:"required"`
}

// =============================================================================

// txInfo represents a ledger transaction.
type txInfo struct {
	ID        string  `json:"id"`
	From      string  `json:"from"`
	FromName  string  `json:"from_name"`
	To        string  `json:"to"`
	ToName    string  `json:"to_name"`
	Amount    float64 `json:"amount"`
	Memo      string  `json:"memo"`
	TimeStamp uint64  `json:"timestamp"`
}

// accountInfo represents one account balance.
type accountInfo struct {
	Account string  `json:"account"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// balancesInfo represents the full balances response.
type balancesInfo struct {
	LatestBlock string        `json:"latest_block"`
	Uncommitted int           `json:"uncommitted"`
	Accounts    []accountInfo `json:"accounts"`
}

// blockInfo represents one mined block with its transactions.
type blockInfo struct {
	Hash          string   `json:"hash"`
	PrevBlockHash string   `json:"prev_block_hash"`
	Beneficiary   string   `json:"beneficiary"`
	Difficulty    uint16   `json:"difficulty"`
	MiningReward  float64  `json:"mining_reward"`
	Number        uint64   `json:"number"`
	TimeStamp     uint64   `json:"timestamp"`
	Nonce         uint64   `json:"nonce"`
	TransHash     string   `json:"trans_hash"`
	Transactions  []txInfo `json:"transactions"`
}

func toBlockInfo(block database.Block, lookup func(database.AccountID) string) blockInfo {
	trans := make([]txInfo, len(block.Trans))
	for i, tx := range block.Trans {
		trans[i] = txInfo{
			ID:        tx.ID,
			From:      string(tx.FromID),
			FromName:  lookup(tx.FromID),
			To:        string(tx.ToID),
			ToName:    lookup(tx.ToID),
			Amount:    tx.Amount,
			Memo:      tx.Memo,
			TimeStamp: tx.TimeStamp,
		}
	}

	return blockInfo{
		Hash:          block.Hash(),
		PrevBlockHash: block.Header.PrevBlockHash,
		Beneficiary:   string(block.Header.BeneficiaryID),
		Difficulty:    block.Header.Difficulty,
		MiningReward:  block.Header.MiningReward,
		Number:        block.Header.Number,
		TimeStamp:     block.Header.TimeStamp,
		Nonce:         block.Header.Nonce,
		TransHash:     block.Header.TransHash,
		Transactions:  trans,
	}
}
