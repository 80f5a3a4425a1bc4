package repositories

import (
	"context"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
)

// JournalReader defines read operations for posted journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its identifier.
	FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines ordered by line number.
	FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a page of journal entries ordered by entry date
	// descending, with a cursor token for the next page.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveEntry persists the header and every line as one atomic unit:
	// either all rows are written or none. A journal number collision
	// reports apperrors.KindDuplicateJournalNumber so the caller can retry
	// with a fresh suffix.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
