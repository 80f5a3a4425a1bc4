package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry mirrors one row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID string
	JournalNumber  string
	EntryDate      time.Time
	Status         string
	Memo           string
	SourceType     string
	SourceRef      string
	CreatedAt      time.Time
	CreatedBy      string
}

// JournalLine mirrors one row of the journal_entry_lines table.
type JournalLine struct {
	LineID         string
	JournalEntryID string
	LineNumber     int
	AccountID      string
	LineType       string
	Amount         decimal.Decimal
	CurrencyCode   string
	Description    string
	CreatedAt      time.Time
	CreatedBy      string
}
