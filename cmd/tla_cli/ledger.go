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

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Post and inspect journal entries",
	}

	cmd.AddCommand(ledgerPostCmd())
	cmd.AddCommand(ledgerShowCmd())
	cmd.AddCommand(ledgerListCmd())

	return cmd
}

func ledgerPostCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a journal entry from a JSON file",
		Long:  `Reads a JSON file with entryDate, memo, and at least two balanced lines, and posts it as an immutable journal entry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var req dto.PostJournalEntryRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return err
			}

			var resp dto.PostJournalEntryResponse
			err = newAPIClient().do(cmd.Context(), http.MethodPost, "/api/v1/journal-entries", nil, req, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the JSON entry file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func ledgerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <journal-entry-id>",
		Short: "Show one journal entry with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.GetJournalEntryResponse
			path := "/api/v1/journal-entries/" + url.PathEscape(args[0])
			if err := newAPIClient().do(cmd.Context(), http.MethodGet, path, nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
}

func ledgerListCmd() *cobra.Command {
	var limit int
	var nextToken string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := url.Values{}
			if limit > 0 {
				query.Set("limit", strconv.Itoa(limit))
			}
			if nextToken != "" {
				query.Set("nextToken", nextToken)
			}
			path := "/api/v1/journal-entries"
			if encoded := query.Encode(); encoded != "" {
				path += "?" + encoded
			}

			var resp dto.ListJournalEntriesResponse
			if err := newAPIClient().do(cmd.Context(), http.MethodGet, path, nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&nextToken, "next-token", "", "cursor from a previous page")

	return cmd
}
