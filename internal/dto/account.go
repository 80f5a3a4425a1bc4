package dto

import (
	"time"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
)

// CreateAccountRequest is the payload for creating one chart-of-accounts
// entry. A normal side opposite the type's convention is a contra account
// and must be explicitly confirmed with AllowContra.
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalSide  string `json:"normalSide" binding:"required,oneof=DEBIT CREDIT"`
	AllowContra bool   `json:"allowContra"`
	CreatedBy   string `json:"createdBy"`
}

// AccountResponse is the external representation of an account.
type AccountResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	AccountType string    `json:"accountType"`
	NormalSide  string    `json:"normalSide"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateAccountsBatchRequest creates several accounts in one call. Rows are
// processed independently; the response reports a per-row outcome.
type CreateAccountsBatchRequest struct {
	Accounts []CreateAccountRequest `json:"accounts" binding:"required,min=1,dive"`
}

// AccountBatchOutcome is the per-row result of a batch create.
type AccountBatchOutcome struct {
	Code    string           `json:"code"`
	Status  string           `json:"status"` // created | duplicate | contra_confirmation_required | error
	Account *AccountResponse `json:"account,omitempty"`
	Message string           `json:"message,omitempty"`
}

// CreateAccountsBatchResponse summarizes a batch create.
type CreateAccountsBatchResponse struct {
	CreatedCount int                   `json:"createdCount"`
	FailedCount  int                   `json:"failedCount"`
	Outcomes     []AccountBatchOutcome `json:"outcomes"`
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain account to its response form.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          a.AccountID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		NormalSide:  string(a.NormalSide),
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
