package cmd

import (
	"github.com/spf13/cobra"
)

var (
	launchSymbol    string
	launchName      string
	launchDesc      string
	launchSupply    float64
	launchPrice     float64
	launchLiquidity float64
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch a new token",
	Run:   launchRun,
}

func init() {
	rootCmd.AddCommand(launchCmd)
	launchCmd.Flags().StringVarP(&launchSymbol, "symbol", "s", "", "Token symbol, 2-10 characters.")
	launchCmd.Flags().StringVarP(&launchName, "name", "n", "", "Token name, 3-50 characters.")
	launchCmd.Flags().StringVarP(&launchDesc, "description", "d", "", "Token description.")
	launchCmd.Flags().Float64VarP(&launchSupply, "supply", "y", 1_000_000, "Total supply to mint.")
	launchCmd.Flags().Float64VarP(&launchPrice, "price", "r", 0.01, "Initial price per token.")
	launchCmd.Flags().Float64VarP(&launchLiquidity, "liquidity", "l", 100, "Initial base currency liquidity.")
}

func launchRun(cmd *cobra.Command, args []string) {
	payload := struct {
		Symbol           string  `json:"symbol"`
		Name             string  `json:"name"`
		Description      string  `json:"description"`
		Creator          string  `json:"creator"`
		TotalSupply      float64 `json:"total_supply"`
		InitialPrice     float64 `json:"initial_price"`
		InitialLiquidity float64 `json:"initial_liquidity"`
	}{
		Symbol:           launchSymbol,
		Name:             launchName,
		Description:      launchDesc,
		Creator:          loadAccountID(),
		TotalSupply:      launchSupply,
		InitialPrice:     launchPrice,
		InitialLiquidity: launchLiquidity,
	}

	postJSON(nodeURL("/v1/token/launch"), payload)
}
