package repositories

import (
	"context"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
)

// RawTransactionReader defines read operations for imported transactions.
type RawTransactionReader interface {
	// FindRawTransactionByID retrieves one raw transaction.
	FindRawTransactionByID(ctx context.Context, rawTransactionID string) (*domain.RawTransaction, error)

	// ListRawTransactions retrieves a page for one account, optionally
	// filtered by reconciliation status, ordered by occurred_at descending.
	ListRawTransactions(ctx context.Context, accountID string, status *domain.ReconciliationStatus, limit int, nextToken *string) ([]domain.RawTransaction, *string, error)
}

// RawTransactionImporter defines the write operations used by the importer.
// Imports are deliberately not atomic as a set: each row is inserted on its
// own so a re-run of the same file skips duplicates instead of failing.
type RawTransactionImporter interface {
	// SaveImportBatch inserts the batch header recording the attempted row
	// count.
	SaveImportBatch(ctx context.Context, batch domain.ImportBatch) error

	// InsertRawTransaction inserts one transaction. A natural-key collision
	// on (source, external_id) returns inserted=false with a nil error; any
	// other failure is fatal to the import.
	InsertRawTransaction(ctx context.Context, txn domain.RawTransaction) (inserted bool, err error)
}

// Reconciler applies a reconciliation as a single atomic transaction.
type Reconciler interface {
	// ApplyReconciliation claims the idempotency key, locks the referenced
	// raw transactions, re-evaluates every allocation bound under the lock,
	// posts the journal entry, and applies all allocations in one storage
	// transaction. If the key was already claimed by a committed
	// reconciliation, the stored first result is returned with
	// replayed=true and nothing is re-applied.
	ApplyReconciliation(ctx context.Context, idempotencyKey string, entry domain.JournalEntry, lines []domain.JournalLine, allocations []domain.AllocationInput) (result *domain.ReconcileResult, replayed bool, err error)
}

// RawTransactionRepositoryFacade combines the raw transaction interfaces.
type RawTransactionRepositoryFacade interface {
	RawTransactionReader
	RawTransactionImporter
	Reconciler
}
