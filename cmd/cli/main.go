package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "walletd-cli",
		Short: "walletd CLI tool",
		Long:  `A command line interface for interacting with the walletd API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the walletd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}
	walletCmd.AddCommand(createWalletCmd(), getWalletCmd(), balanceCmd(), listTransactionsCmd(), depositCmd(), withdrawCmd())

	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}
	txCmd.AddCommand(getTransactionCmd())

	rootCmd.AddCommand(walletCmd, txCmd)

	return rootCmd
}

func createWalletCmd() *cobra.Command {
	var owner string
	var initialBalance int64

	cmd := &cobra.Command{
		Use:   "create <wallet-id>",
		Short: "Create a new wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/wallets/", map[string]any{
				"wallet_id":       args[0],
				"owner":           owner,
				"initial_balance": initialBalance,
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Wallet owner")
	cmd.Flags().Int64Var(&initialBalance, "initial-balance", 0, "Initial balance")

	return cmd
}

func getWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <wallet-id>",
		Short: "Get a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/wallets/" + args[0])
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <wallet-id>",
		Short: "Get a wallet's current balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/wallets/" + args[0] + "/balance")
		},
	}
}

func listTransactionsCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "transactions <wallet-id>",
		Short: "List a wallet's transactions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(fmt.Sprintf("/api/v1/wallets/%s/transactions?limit=%d&offset=%d", args[0], limit, offset))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	return cmd
}

func depositCmd() *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "deposit <wallet-id>",
		Short: "Deposit an amount into a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/wallets/"+args[0]+"/deposit", map[string]any{"amount": amount})
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount to deposit")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var amount int64

	cmd := &cobra.Command{
		Use:   "withdraw <wallet-id>",
		Short: "Withdraw an amount from a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/wallets/"+args[0]+"/withdraw", map[string]any{"amount": amount})
		},
	}

	cmd.Flags().Int64Var(&amount, "amount", 0, "Amount to withdraw")

	return cmd
}

func getTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <transaction-id>",
		Short: "Get a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/transactions/" + args[0])
		},
	}
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func postJSON(path string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	client := &http.Client{Timeout: timeout}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Println(string(body))
	} else {
		printJSON(parsed)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}

	fmt.Println(string(out))
}
