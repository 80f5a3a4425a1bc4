package dto

import (
	"time"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
)

// ImportTransactionInput is one externally sourced transaction row. Amount
// is signed: negative for outflows, positive for inflows.
type ImportTransactionInput struct {
	ExternalID   string         `json:"externalId" binding:"required"`
	OccurredAt   time.Time      `json:"occurredAt" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Description  string         `json:"description"`
	Amount       string         `json:"amount" binding:"required"`
	CurrencyCode string         `json:"currencyCode" binding:"required,len=3"`
	Metadata     map[string]any `json:"metadata"`
}

// ImportTransactionsRequest imports a batch of transactions for one account.
type ImportTransactionsRequest struct {
	Source       string                   `json:"source" binding:"required"`
	AccountCode  string                   `json:"accountCode" binding:"required"`
	FileName     string                   `json:"fileName"`
	CreatedBy    string                   `json:"createdBy"`
	Transactions []ImportTransactionInput `json:"transactions" binding:"required,min=1,dive"`
}

// ImportTransactionsResponse reports the per-batch counters. When no fatal
// error occurs, insertedCount + duplicateCount == attemptedCount.
type ImportTransactionsResponse struct {
	ImportBatchID  string `json:"importBatchId"`
	AccountID      string `json:"accountId"`
	AttemptedCount int    `json:"attemptedCount"`
	InsertedCount  int    `json:"insertedCount"`
	DuplicateCount int    `json:"duplicateCount"`
}

// RawTransactionResponse is the external representation of one raw
// transaction together with its reconciliation progress.
type RawTransactionResponse struct {
	ID                   string    `json:"id"`
	Source               string    `json:"source"`
	ExternalID           string    `json:"externalId"`
	OccurredAt           time.Time `json:"occurredAt"`
	Description          string    `json:"description,omitempty"`
	Amount               string    `json:"amount"`
	CurrencyCode         string    `json:"currencyCode"`
	AccountID            string    `json:"accountId"`
	ImportBatchID        string    `json:"importBatchId"`
	AllocatedAmount      string    `json:"allocatedAmount"`
	ReconciliationStatus string    `json:"reconciliationStatus"`
}

// ListRawTransactionsParams are the query parameters for listing.
type ListRawTransactionsParams struct {
	AccountCode string  `form:"accountCode" binding:"required"`
	Status      string  `form:"status" binding:"omitempty,oneof=UNRECONCILED PARTIALLY_RECONCILED FULLY_RECONCILED"`
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
}

// ListRawTransactionsResponse is one page plus the next cursor.
type ListRawTransactionsResponse struct {
	Transactions []RawTransactionResponse `json:"transactions"`
	NextToken    *string                  `json:"nextToken,omitempty"`
}

// ToRawTransactionResponse converts a domain raw transaction.
func ToRawTransactionResponse(t *domain.RawTransaction) RawTransactionResponse {
	return RawTransactionResponse{
		ID:                   t.RawTransactionID,
		Source:               t.Source,
		ExternalID:           t.ExternalID,
		OccurredAt:           t.OccurredAt,
		Description:          t.Description,
		Amount:               t.Amount.String(),
		CurrencyCode:         t.CurrencyCode,
		AccountID:            t.AccountID,
		ImportBatchID:        t.ImportBatchID,
		AllocatedAmount:      t.AllocatedAmount.String(),
		ReconciliationStatus: string(t.Status),
	}
}

// ToRawTransactionResponses converts a slice of domain raw transactions.
func ToRawTransactionResponses(txns []domain.RawTransaction) []RawTransactionResponse {
	responses := make([]RawTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToRawTransactionResponse(&txns[i])
	}
	return responses
}
