package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction mirrors one row of the raw_transactions table.
type RawTransaction struct {
	RawTransactionID     string
	Source               string
	ExternalID           string
	OccurredAt           time.Time
	Description          string
	Amount               decimal.Decimal
	CurrencyCode         string
	Metadata             map[string]any
	AccountID            string
	ImportBatchID        string
	AllocatedAmount      decimal.Decimal
	ReconciliationStatus string
	CreatedAt            time.Time
	CreatedBy            string
}

// ImportBatch mirrors one row of the import_batches table.
type ImportBatch struct {
	ImportBatchID string
	Source        string
	AccountID     string
	FileName      string
	RowCount      int
	CreatedAt     time.Time
	CreatedBy     string
}
