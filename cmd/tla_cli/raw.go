package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tallyledger/tally_ledger_app/internal/dto"
)

func rawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Import and inspect raw transactions",
	}

	cmd.AddCommand(rawImportCmd())
	cmd.AddCommand(rawListCmd())

	return cmd
}

func rawImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import raw transactions from a JSON file",
		Long:  `Reads a JSON file with source, accountCode, and transactions, and imports them. Rows already imported for the same source are skipped and counted as duplicates.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var req dto.ImportTransactionsRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return err
			}

			var resp dto.ImportTransactionsResponse
			err = newAPIClient().do(cmd.Context(), http.MethodPost, "/api/v1/raw-transactions/import", nil, req, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the JSON import file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func rawListCmd() *cobra.Command {
	var accountCode, status, nextToken string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List raw transactions for one account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := url.Values{}
			query.Set("accountCode", accountCode)
			if status != "" {
				query.Set("status", status)
			}
			if limit > 0 {
				query.Set("limit", strconv.Itoa(limit))
			}
			if nextToken != "" {
				query.Set("nextToken", nextToken)
			}

			var resp dto.ListRawTransactionsResponse
			path := "/api/v1/raw-transactions?" + query.Encode()
			if err := newAPIClient().do(cmd.Context(), http.MethodGet, path, nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&accountCode, "account-code", "", "account code (required)")
	cmd.Flags().StringVar(&status, "status", "", "filter: UNRECONCILED|PARTIALLY_RECONCILED|FULLY_RECONCILED")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&nextToken, "next-token", "", "cursor from a previous page")
	_ = cmd.MarkFlagRequired("account-code")

	return cmd
}
