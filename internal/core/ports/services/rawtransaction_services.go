package services

import (
	"context"

	"github.com/tallyledger/tally_ledger_app/internal/dto"
)

// ImportSvcFacade brings externally sourced transactions into the ledger.
type ImportSvcFacade interface {
	// ImportTransactions creates one import batch and inserts the rows,
	// skipping natural-key duplicates. Counts always satisfy
	// inserted + duplicate == attempted unless a fatal error is returned.
	ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest) (*dto.ImportTransactionsResponse, error)

	// ListRawTransactions pages through an account's imported transactions.
	ListRawTransactions(ctx context.Context, params dto.ListRawTransactionsParams) (*dto.ListRawTransactionsResponse, error)
}

// ReconciliationSvcFacade links raw transactions to new journal entries.
type ReconciliationSvcFacade interface {
	// Reconcile atomically posts a balanced journal entry and applies the
	// requested allocations, enforcing the allocation bound and
	// exactly-once semantics per idempotency key.
	Reconcile(ctx context.Context, idempotencyKey string, req dto.ReconcileRequest) (*dto.ReconcileResponse, error)
}
