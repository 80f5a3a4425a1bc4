package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
	"github.com/tallyledger/tally_ledger_app/internal/models"
	"github.com/tallyledger/tally_ledger_app/internal/utils/mapping"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
	"github.com/tallyledger/tally_ledger_app/internal/utils/pagination"
)

type PgxRawTransactionRepository struct {
	BaseRepository
}

// newPgxRawTransactionRepository creates a new repository for imported
// transactions, batches, and reconciliations.
func newPgxRawTransactionRepository(pool *pgxpool.Pool) portsrepo.RawTransactionRepositoryFacade {
	return &PgxRawTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RawTransactionRepositoryFacade = (*PgxRawTransactionRepository)(nil)

const rawTxnColumns = `raw_transaction_id, source, external_id, occurred_at, description, amount, currency_code, metadata, account_id, import_batch_id, allocated_amount, reconciliation_status, created_at, created_by`

func scanRawTransaction(row pgx.Row) (models.RawTransaction, error) {
	var m models.RawTransaction
	err := row.Scan(
		&m.RawTransactionID,
		&m.Source,
		&m.ExternalID,
		&m.OccurredAt,
		&m.Description,
		&m.Amount,
		&m.CurrencyCode,
		&m.Metadata,
		&m.AccountID,
		&m.ImportBatchID,
		&m.AllocatedAmount,
		&m.ReconciliationStatus,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveImportBatch inserts the batch header.
func (r *PgxRawTransactionRepository) SaveImportBatch(ctx context.Context, batch domain.ImportBatch) error {
	m := mapping.ToModelImportBatch(batch)

	query := `
		INSERT INTO import_batches (import_batch_id, source, account_id, file_name, row_count, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ImportBatchID,
		m.Source,
		m.AccountID,
		m.FileName,
		m.RowCount,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return apperrors.NewInternal("failed to save import batch "+m.ImportBatchID, err)
	}
	return nil
}

// InsertRawTransaction inserts one transaction. A collision on the
// (source, external_id) natural key reports inserted=false with no error so
// the importer can count it as a duplicate and move on.
func (r *PgxRawTransactionRepository) InsertRawTransaction(ctx context.Context, txn domain.RawTransaction) (bool, error) {
	m := mapping.ToModelRawTransaction(txn)

	query := `
		INSERT INTO raw_transactions (` + rawTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (source, external_id) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RawTransactionID,
		m.Source,
		m.ExternalID,
		m.OccurredAt,
		m.Description,
		m.Amount,
		m.CurrencyCode,
		m.Metadata,
		m.AccountID,
		m.ImportBatchID,
		m.AllocatedAmount,
		m.ReconciliationStatus,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return false, apperrors.NewInternal("failed to insert raw transaction "+m.RawTransactionID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindRawTransactionByID retrieves one raw transaction.
func (r *PgxRawTransactionRepository) FindRawTransactionByID(ctx context.Context, rawTransactionID string) (*domain.RawTransaction, error) {
	query := `SELECT ` + rawTxnColumns + ` FROM raw_transactions WHERE raw_transaction_id = $1;`

	m, err := scanRawTransaction(r.Pool.QueryRow(ctx, query, rawTransactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTransactionNotFound(rawTransactionID)
		}
		return nil, apperrors.NewInternal("failed to find raw transaction "+rawTransactionID, err)
	}

	txn := mapping.ToDomainRawTransaction(m)
	return &txn, nil
}

// ListRawTransactions retrieves one page for an account, newest occurrence
// first, optionally filtered by reconciliation status.
func (r *PgxRawTransactionRepository) ListRawTransactions(ctx context.Context, accountID string, status *domain.ReconciliationStatus, limit int, nextToken *string) ([]domain.RawTransaction, *string, error) {
	query := `SELECT ` + rawTxnColumns + ` FROM raw_transactions WHERE account_id = $1`
	args := []any{accountID}

	if status != nil {
		args = append(args, string(*status))
		query += ` AND reconciliation_status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.New(apperrors.KindValidation, "invalid nextToken")
		}
		args = append(args, occurredAt, createdAt)
		query += ` AND (occurred_at, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, limit+1)
	query += ` ORDER BY occurred_at DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewInternal("failed to list raw transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.RawTransaction, 0, limit)
	for rows.Next() {
		m, err := scanRawTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewInternal("failed to scan raw transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewInternal("failed to iterate raw transaction rows", err)
	}

	var token *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[limit-1]
		encoded := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		token = &encoded
	}
	return mapping.ToDomainRawTransactionSlice(modelTxns), token, nil
}

// claimIdempotencyKey inserts the key inside the transaction. When the key
// was already claimed by a committed reconciliation, the stored first
// response is returned instead; a concurrent in-flight claimant blocks this
// insert until it commits or rolls back, so losers always observe the final
// outcome.
func claimIdempotencyKey(ctx context.Context, tx pgx.Tx, key string, entry domain.JournalEntry) (*domain.ReconcileResult, bool, error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO idempotency_keys (idempotency_key, created_at, created_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (idempotency_key) DO NOTHING;
	`, key, entry.CreatedAt, entry.CreatedBy)
	if err != nil {
		return nil, false, apperrors.NewInternal("failed to claim idempotency key", err)
	}
	if tag.RowsAffected() == 1 {
		return nil, false, nil
	}

	var response []byte
	err = tx.QueryRow(ctx, `SELECT response FROM idempotency_keys WHERE idempotency_key = $1;`, key).Scan(&response)
	if err != nil {
		return nil, false, apperrors.NewInternal("failed to read stored idempotency response", err)
	}

	var result domain.ReconcileResult
	if err := json.Unmarshal(response, &result); err != nil {
		return nil, false, apperrors.NewInternal("failed to decode stored idempotency response", err)
	}
	return &result, true, nil
}

// lockRawTransactions loads and row-locks every referenced transaction so
// concurrent reconciliations against the same rows serialize. Any missing
// identifier fails the whole call.
func lockRawTransactions(ctx context.Context, tx pgx.Tx, ids []string) (map[string]domain.RawTransaction, error) {
	rows, err := tx.Query(ctx, `SELECT `+rawTxnColumns+` FROM raw_transactions WHERE raw_transaction_id = ANY($1) FOR UPDATE;`, ids)
	if err != nil {
		return nil, apperrors.NewInternal("failed to lock raw transactions", err)
	}
	defer rows.Close()

	locked := make(map[string]domain.RawTransaction, len(ids))
	for rows.Next() {
		m, err := scanRawTransaction(rows)
		if err != nil {
			return nil, apperrors.NewInternal("failed to scan locked raw transaction", err)
		}
		locked[m.RawTransactionID] = mapping.ToDomainRawTransaction(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate locked raw transactions", err)
	}

	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return nil, apperrors.NewTransactionNotFound(id)
		}
	}
	return locked, nil
}

// ApplyReconciliation posts the entry and applies every allocation in one
// storage transaction, exactly once per idempotency key.
func (r *PgxRawTransactionRepository) ApplyReconciliation(ctx context.Context, idempotencyKey string, entry domain.JournalEntry, lines []domain.JournalLine, allocations []domain.AllocationInput) (*domain.ReconcileResult, bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer r.Rollback(ctx, tx)

	stored, replayed, err := claimIdempotencyKey(ctx, tx, idempotencyKey, entry)
	if err != nil {
		return nil, false, err
	}
	if replayed {
		return stored, true, nil
	}

	ids := make([]string, 0, len(allocations))
	seen := make(map[string]struct{}, len(allocations))
	for _, alloc := range allocations {
		if _, ok := seen[alloc.RawTransactionID]; !ok {
			seen[alloc.RawTransactionID] = struct{}{}
			ids = append(ids, alloc.RawTransactionID)
		}
	}

	locked, err := lockRawTransactions(ctx, tx, ids)
	if err != nil {
		return nil, false, err
	}

	// Bound every allocation against a running remaining balance so a
	// request naming the same transaction twice is checked on the combined
	// total, not per line.
	remaining := make(map[string]money.Money, len(locked))
	allocated := make(map[string]money.Money, len(locked))
	for id, txn := range locked {
		remaining[id] = txn.Remaining()
		allocated[id] = txn.AllocatedAmount
	}
	for _, alloc := range allocations {
		id := alloc.RawTransactionID
		if alloc.AmountApplied.Cmp(remaining[id]) > 0 {
			return nil, false, apperrors.NewOverAllocated(id, remaining[id].String(), alloc.AmountApplied.String())
		}
		remaining[id] = remaining[id].Sub(alloc.AmountApplied)
		allocated[id] = allocated[id].Add(alloc.AmountApplied)
	}

	if err := insertEntryInTx(ctx, tx, entry, lines); err != nil {
		return nil, false, err
	}

	allocBatch := &pgx.Batch{}
	allocQuery := `
		INSERT INTO reconciliation_allocations (allocation_id, idempotency_key, journal_entry_id, raw_transaction_id, amount_applied, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, alloc := range allocations {
		row := domain.ReconciliationAllocation{
			AllocationID:     uuid.NewString(),
			IdempotencyKey:   idempotencyKey,
			JournalEntryID:   entry.JournalEntryID,
			RawTransactionID: alloc.RawTransactionID,
			AmountApplied:    alloc.AmountApplied,
			AuditFields: domain.AuditFields{
				CreatedAt: entry.CreatedAt,
				CreatedBy: entry.CreatedBy,
			},
		}
		allocBatch.Queue(allocQuery,
			row.AllocationID,
			row.IdempotencyKey,
			row.JournalEntryID,
			row.RawTransactionID,
			row.AmountApplied.Decimal(),
			row.CreatedAt,
			row.CreatedBy,
		)
	}
	updateQuery := `
		UPDATE raw_transactions SET allocated_amount = $2, reconciliation_status = $3
		WHERE raw_transaction_id = $1;
	`
	for _, id := range ids {
		status := domain.StatusForAllocation(allocated[id], locked[id].Amount.Abs())
		allocBatch.Queue(updateQuery, id, allocated[id].Decimal(), string(status))
	}

	results := tx.SendBatch(ctx, allocBatch)
	for i := 0; i < len(allocations)+len(ids); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, false, apperrors.NewInternal("failed to apply allocation", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, false, apperrors.NewInternal("failed to apply allocations", err)
	}

	result := &domain.ReconcileResult{
		JournalEntryID:           entry.JournalEntryID,
		JournalNumber:            entry.JournalNumber,
		AllocationCount:          len(allocations),
		ReconciledTransactionIDs: ids,
	}

	response, err := json.Marshal(result)
	if err != nil {
		return nil, false, apperrors.NewInternal("failed to encode reconciliation result", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE idempotency_keys SET journal_entry_id = $2, response = $3
		WHERE idempotency_key = $1;
	`, idempotencyKey, entry.JournalEntryID, response)
	if err != nil {
		return nil, false, apperrors.NewInternal("failed to store idempotency response", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, false, err
	}
	return result, false, nil
}
