package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tallyledger/tally_ledger_app/internal/dto"
)

func reconcileCmd() *cobra.Command {
	var file, idempotencyKey string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Post a journal entry and allocate it against raw transactions",
		Long: `Reads a JSON file with entryDate, journalLines, and
transactionAllocations, and applies it atomically. Re-running with the same
idempotency key replays the first result instead of double-posting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var req dto.ReconcileRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return err
			}

			if idempotencyKey == "" {
				idempotencyKey = uuid.NewString()
				cmd.Printf("Generated idempotency key: %s\n", idempotencyKey)
			}
			headers := map[string]string{"Idempotency-Key": idempotencyKey}

			var resp dto.ReconcileResponse
			err = newAPIClient().do(cmd.Context(), http.MethodPost, "/api/v1/reconciliations", headers, req, &resp)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the JSON reconciliation file (required)")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "stable key for safe retries (generated when omitted)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
