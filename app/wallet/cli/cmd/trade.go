package cmd

import (
	"github.com/spf13/cobra"
)

var (
	tradeSymbol   string
	tradeBase     float64
	tradeTokens   float64
	tradeSlippage float64
)

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy tokens with base currency",
	Run:   buyRun,
}

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell tokens back to the pool",
	Run:   sellRun,
}

func init() {
	rootCmd.AddCommand(buyCmd)
	buyCmd.Flags().StringVarP(&tradeSymbol, "symbol", "s", "", "Token symbol to trade.")
	buyCmd.Flags().Float64VarP(&tradeBase, "base", "b", 0, "Base currency to spend.")
	buyCmd.Flags().Float64VarP(&tradeSlippage, "slippage", "x", 5, "Maximum slippage percent to accept.")

	rootCmd.AddCommand(sellCmd)
	sellCmd.Flags().StringVarP(&tradeSymbol, "symbol", "s", "", "Token symbol to trade.")
	sellCmd.Flags().Float64VarP(&tradeTokens, "tokens", "k", 0, "Token amount to sell.")
	sellCmd.Flags().Float64VarP(&tradeSlippage, "slippage", "x", 5, "Maximum slippage percent to accept.")
}

func buyRun(cmd *cobra.Command, args []string) {
	payload := struct {
		Symbol         string  `json:"symbol"`
		Buyer          string  `json:"buyer"`
		BaseAmount     float64 `json:"base_amount"`
		MaxSlippagePct float64 `json:"max_slippage_pct"`
	}{
		Symbol:         tradeSymbol,
		Buyer:          loadAccountID(),
		BaseAmount:     tradeBase,
		MaxSlippagePct: tradeSlippage,
	}

	postJSON(nodeURL("/v1/token/buy"), payload)
}

func sellRun(cmd *cobra.Command, args []string) {
	payload := struct {
		Symbol         string  `json:"symbol"`
		Seller         string  `json:"seller"`
		TokenAmount    float64 `json:"token_amount"`
		MaxSlippagePct float64 `json:"max_slippage_pct"`
	}{
		Symbol:         tradeSymbol,
		Seller:         loadAccountID(),
		TokenAmount:    tradeTokens,
		MaxSlippagePct: tradeSlippage,
	}

	postJSON(nodeURL("/v1/token/sell"), payload)
}
