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
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "condorpay-cli",
		Short: "CondorPay CLI tool",
		Long:  `A command line interface for interacting with the CondorPay API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CondorPay API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")

	transferCmd := &cobra.Command{
		Use:   "transfer <source-account-id> <destination> <amount>",
		Short: "Create a transfer",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			description, _ := cmd.Flags().GetString("description")
			post("/api/v1/transfers", map[string]any{
				"source_account_id": args[0],
				"destination":       args[1],
				"amount":            args[2],
				"description":       description,
			})
		},
	}
	transferCmd.Flags().String("description", "", "Transfer description")

	topupCmd := &cobra.Command{
		Use:   "topup <source-account-id> <phone> <carrier> <amount>",
		Short: "Create a phone top-up",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			topUpType, _ := cmd.Flags().GetString("type")
			post("/api/v1/topups", map[string]any{
				"source_account_id": args[0],
				"phone_number":      args[1],
				"carrier":           args[2],
				"amount":            args[3],
				"type":              topUpType,
			})
		},
	}
	topupCmd.Flags().String("type", "PREPAID", "Top-up type (PREPAID or POSTPAID)")

	reverseCmd := &cobra.Command{
		Use:   "reverse <transaction-id>",
		Short: "Reverse a confirmed transfer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/transactions/"+args[0]+"/reverse", nil)
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show account balances",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/accounts/" + args[0] + "/balance")
		},
	}

	carriersCmd := &cobra.Command{
		Use:   "carriers",
		Short: "List supported carriers",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/carriers")
		},
	}

	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions",
		Run: func(cmd *cobra.Command, args []string) {
			accountID, _ := cmd.Flags().GetString("account")
			path := "/api/v1/transactions"
			if accountID != "" {
				path += "?account_id=" + accountID
			}
			get(path)
		},
	}
	transactionsCmd.Flags().String("account", "", "Filter by account ID")

	rootCmd.AddCommand(transferCmd, topupCmd, reverseCmd, balanceCmd, carriersCmd, transactionsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func post(path string, payload map[string]any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	do(req)
}

func get(path string) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	do(req)
}

func do(req *http.Request) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
