package services

import (
	"context"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
)

// JournalSvcFacade posts and reads balanced journal entries.
type JournalSvcFacade interface {
	// PostEntry validates (balance first, then account resolution) and
	// atomically persists a journal entry, returning its identifier and
	// generated journal number. Posted entries are immutable.
	PostEntry(ctx context.Context, req dto.PostJournalEntryRequest) (*dto.PostJournalEntryResponse, error)

	// GetEntry retrieves an entry header with its lines.
	GetEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}
