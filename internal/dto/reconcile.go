package dto

// ReconcileAllocationInput requests one allocation against an existing raw
// transaction. AmountApplied is a positive decimal string.
type ReconcileAllocationInput struct {
	RawTransactionID string `json:"rawTransactionId" binding:"required"`
	AmountApplied    string `json:"amountApplied" binding:"required"`
}

// ReconcileRequest atomically posts a balanced journal entry and applies
// the listed allocations. The idempotency key travels in the
// Idempotency-Key header, not the body.
type ReconcileRequest struct {
	EntryDate   string                     `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Memo        string                     `json:"memo"`
	SourceType  string                     `json:"sourceType"`
	SourceRef   string                     `json:"sourceRef"`
	CreatedBy   string                     `json:"createdBy"`
	Allocations []ReconcileAllocationInput `json:"transactionAllocations" binding:"required,min=1,dive"`
	Lines       []JournalLineInput         `json:"journalLines" binding:"required,min=2,dive"`
}

// ReconcileResponse reports the reconciliation outcome.
type ReconcileResponse struct {
	JournalEntryID           string   `json:"journalEntryId"`
	JournalNumber            string   `json:"journalNumber"`
	AllocationCount          int      `json:"allocationCount"`
	ReconciledTransactionIDs []string `json:"reconciledTransactionIds"`
}
