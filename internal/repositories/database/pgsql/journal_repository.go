package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
	"github.com/tallyledger/tally_ledger_app/internal/models"
	"github.com/tallyledger/tally_ledger_app/internal/utils/mapping"
	"github.com/tallyledger/tally_ledger_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const (
	entryColumns = `journal_entry_id, journal_number, entry_date, status, memo, source_type, source_ref, created_at, created_by`
	lineColumns  = `line_id, journal_entry_id, line_number, account_id, line_type, amount, currency_code, description, created_at, created_by`

	journalNumberConstraint = "journal_entries_journal_number_key"

	insertEntryQuery = `
		INSERT INTO journal_entries (journal_entry_id, journal_number, entry_date, status, memo, source_type, source_ref, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	insertLineQuery = `
		INSERT INTO journal_entry_lines (line_id, journal_entry_id, line_number, account_id, line_type, amount, currency_code, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.JournalNumber,
		&m.EntryDate,
		&m.Status,
		&m.Memo,
		&m.SourceType,
		&m.SourceRef,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// insertEntryInTx writes the header and queues every line in one pgx batch
// within the supplied transaction. Shared with the reconciliation path.
func insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	modelEntry := mapping.ToModelJournalEntry(entry)

	_, err := tx.Exec(ctx, insertEntryQuery,
		modelEntry.JournalEntryID,
		modelEntry.JournalNumber,
		modelEntry.EntryDate,
		modelEntry.Status,
		modelEntry.Memo,
		modelEntry.SourceType,
		modelEntry.SourceRef,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, journalNumberConstraint) {
			return apperrors.New(apperrors.KindDuplicateJournalNumber, "journal number already exists: "+modelEntry.JournalNumber)
		}
		return apperrors.NewInternal("failed to insert journal entry "+modelEntry.JournalEntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(insertLineQuery,
			modelLine.LineID,
			modelLine.JournalEntryID,
			modelLine.LineNumber,
			modelLine.AccountID,
			modelLine.LineType,
			modelLine.Amount,
			modelLine.CurrencyCode,
			modelLine.Description,
			entry.CreatedAt,
			entry.CreatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewInternal("failed to insert journal entry line", err)
		}
	}
	return nil
}

// SaveEntry persists the header and every line atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryInTx(ctx, tx, entry, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.KindNotFound, "journal entry not found: "+journalEntryID)
		}
		return nil, apperrors.NewInternal("failed to find journal entry "+journalEntryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE journal_entry_id = $1 ORDER BY line_number;`

	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to find lines for entry "+journalEntryID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0)
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineID,
			&m.JournalEntryID,
			&m.LineNumber,
			&m.AccountID,
			&m.LineType,
			&m.Amount,
			&m.CurrencyCode,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewInternal("failed to scan journal line row", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal("failed to iterate journal line rows", err)
	}
	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// ListEntries retrieves one page of entry headers, newest entry date first
// with created_at as the tiebreak, and a cursor for the following page.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	args := make([]any, 0, 3)

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.New(apperrors.KindValidation, "invalid nextToken")
		}
		query += ` WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, entryDate, createdAt)
	}

	// Fetch one extra row to learn whether another page exists.
	args = append(args, limit+1)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewInternal("failed to list journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewInternal("failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewInternal("failed to iterate journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		encoded := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &encoded
	}
	return entries, token, nil
}
