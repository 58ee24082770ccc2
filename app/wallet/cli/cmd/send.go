package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	to     string
	amount float64
	memo   string
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send base currency to another account",
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account or @alias to send to.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
	sendCmd.Flags().StringVarP(&memo, "memo", "m", "", "Memo to record with the transfer.")
}

func sendRun(cmd *cobra.Command, args []string) {
	payload := struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
		Memo   string  `json:"memo"`
	}{
		From:   loadAccountID(),
		To:     to,
		Amount: amount,
		Memo:   memo,
	}

	postJSON(nodeURL("/v1/tx/add"), payload)
}

// postJSON marshals the payload, posts it to the node and prints the
// response body.
func postJSON(url string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(body))
}
