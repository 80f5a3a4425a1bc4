package domain

import (
	"time"

	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

// EntryStatus indicates the state of a journal entry. Posted entries are
// immutable; no draft or void states are modeled.
type EntryStatus string

const (
	Posted EntryStatus = "POSTED"
)

// LineType indicates whether a journal line is a debit or a credit.
type LineType string

const (
	Debit  LineType = "DEBIT"
	Credit LineType = "CREDIT"
)

// JournalEntry is a single balanced financial event composed of at least two
// lines whose debit and credit totals match exactly at scale 4.
type JournalEntry struct {
	JournalEntryID string        `json:"journalEntryID"`
	JournalNumber  string        `json:"journalNumber"`
	EntryDate      time.Time     `json:"entryDate"`
	Status         EntryStatus   `json:"status"`
	Memo           string        `json:"memo,omitempty"`
	SourceType     string        `json:"sourceType,omitempty"`
	SourceRef      string        `json:"sourceRef,omitempty"`
	Lines          []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single line within a journal entry, affecting one account.
// Line numbers are dense, 1-based, assigned in input order.
type JournalLine struct {
	LineID         string      `json:"lineID"`
	JournalEntryID string      `json:"journalEntryID"`
	LineNumber     int         `json:"lineNumber"`
	AccountID      string      `json:"accountID"`
	LineType       LineType    `json:"lineType"`
	Amount         money.Money `json:"amount"`
	CurrencyCode   string      `json:"currencyCode"`
	Description    string      `json:"description,omitempty"`
}
