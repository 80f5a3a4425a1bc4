package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallyledger/tally_ledger_app/internal/dto"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the chart of accounts",
	}

	cmd.AddCommand(accountsCreateCmd())
	cmd.AddCommand(accountsBatchCmd())
	cmd.AddCommand(accountsListCmd())

	return cmd
}

func accountsCreateCmd() *cobra.Command {
	var req dto.CreateAccountRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create one account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp dto.AccountResponse
			err := newAPIClient().do(cmd.Context(), http.MethodPost, "/api/v1/accounts", nil, req, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&req.Code, "code", "", "account code (required)")
	cmd.Flags().StringVar(&req.Name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&req.AccountType, "type", "", "ASSET|LIABILITY|EQUITY|REVENUE|EXPENSE (required)")
	cmd.Flags().StringVar(&req.NormalSide, "normal-side", "", "DEBIT|CREDIT (required)")
	cmd.Flags().BoolVar(&req.AllowContra, "allow-contra", false, "confirm creation of a contra account")
	cmd.Flags().StringVar(&req.CreatedBy, "created-by", "", "audit identity")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("normal-side")

	return cmd
}

func accountsBatchCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Create accounts from a JSON file",
		Long:  `Reads a JSON file containing {"accounts": [...]} and creates each account, reporting a per-row outcome.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var req dto.CreateAccountsBatchRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return err
			}

			var resp dto.CreateAccountsBatchResponse
			err = newAPIClient().do(cmd.Context(), http.MethodPost, "/api/v1/accounts/batch", nil, req, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the JSON batch file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func accountsListCmd() *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := "/api/v1/accounts"
			if includeInactive {
				path += "?includeInactive=true"
			}
			var resp dto.ListAccountsResponse
			if err := newAPIClient().do(cmd.Context(), http.MethodGet, path, nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "include-inactive", false, "include deactivated accounts")

	return cmd
}
