package domain

import (
	"time"

	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

// ReconciliationStatus tracks how much of a raw transaction's amount has
// been matched against posted journal entries.
type ReconciliationStatus string

const (
	Unreconciled        ReconciliationStatus = "UNRECONCILED"
	PartiallyReconciled ReconciliationStatus = "PARTIALLY_RECONCILED"
	FullyReconciled     ReconciliationStatus = "FULLY_RECONCILED"
)

// StatusForAllocation derives the reconciliation status from the cumulative
// allocated amount versus the transaction's absolute amount. The status is a
// pure function of these two values.
func StatusForAllocation(allocated, absAmount money.Money) ReconciliationStatus {
	switch {
	case allocated.IsZero():
		return Unreconciled
	case allocated.Cmp(absAmount) < 0:
		return PartiallyReconciled
	default:
		return FullyReconciled
	}
}

// RawTransaction is an externally sourced transaction awaiting
// reconciliation. Amount is signed: negative for outflows, positive for
// inflows. AllocatedAmount only ever increases, never past abs(Amount).
type RawTransaction struct {
	RawTransactionID string               `json:"rawTransactionID"`
	Source           string               `json:"source"`
	ExternalID       string               `json:"externalID"`
	OccurredAt       time.Time            `json:"occurredAt"`
	Description      string               `json:"description,omitempty"`
	Amount           money.Money          `json:"amount"`
	CurrencyCode     string               `json:"currencyCode"`
	Metadata         map[string]any       `json:"metadata,omitempty"`
	AccountID        string               `json:"accountID"`
	ImportBatchID    string               `json:"importBatchID"`
	AllocatedAmount  money.Money          `json:"allocatedAmount"`
	Status           ReconciliationStatus `json:"reconciliationStatus"`
	AuditFields
}

// Remaining is the unallocated portion of the transaction's absolute amount.
func (t RawTransaction) Remaining() money.Money {
	return t.Amount.Abs().Sub(t.AllocatedAmount)
}

// ImportBatch groups the raw transactions brought in by one import call.
// Immutable; used only for traceability.
type ImportBatch struct {
	ImportBatchID string `json:"importBatchID"`
	Source        string `json:"source"`
	AccountID     string `json:"accountID"`
	FileName      string `json:"fileName,omitempty"`
	RowCount      int    `json:"rowCount"`
	AuditFields
}

// ReconciliationAllocation links one raw transaction to one reconciliation
// with the positive amount applied toward its outstanding balance.
type ReconciliationAllocation struct {
	AllocationID     string      `json:"allocationID"`
	IdempotencyKey   string      `json:"idempotencyKey"`
	JournalEntryID   string      `json:"journalEntryID"`
	RawTransactionID string      `json:"rawTransactionID"`
	AmountApplied    money.Money `json:"amountApplied"`
	AuditFields
}

// AllocationInput is one requested allocation: a positive amount to apply
// from a reconciliation toward a raw transaction's outstanding balance.
type AllocationInput struct {
	RawTransactionID string      `json:"rawTransactionId"`
	AmountApplied    money.Money `json:"amountApplied"`
}

// ReconcileResult is the outcome of a reconciliation: the posted journal
// identifiers, the number of allocations applied, and the raw transactions
// involved (not necessarily fully reconciled).
type ReconcileResult struct {
	JournalEntryID           string   `json:"journalEntryId"`
	JournalNumber            string   `json:"journalNumber"`
	AllocationCount          int      `json:"allocationCount"`
	ReconciledTransactionIDs []string `json:"reconciledTransactionIds"`
}
