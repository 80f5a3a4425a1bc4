package services

import (
	"context"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
)

// AccountDirectorySvc resolves account codes for the posting paths.
type AccountDirectorySvc interface {
	// ResolveAccountID maps an active account code to its identifier with
	// an exact, case-sensitive match. Unknown or inactive codes fail with
	// apperrors.KindMissingAccount.
	ResolveAccountID(ctx context.Context, code string) (string, error)

	// ResolveAccountIDs is the batch form. When any code cannot be
	// resolved, the error carries the full set of missing codes so callers
	// report them all at once.
	ResolveAccountIDs(ctx context.Context, codes []string) (map[string]string, error)
}

// AccountManagerSvc covers chart-of-accounts maintenance.
type AccountManagerSvc interface {
	// CreateAccount creates one account, enforcing the contra confirmation
	// policy and code uniqueness.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// CreateAccountsBatch creates several accounts with per-row outcomes;
	// one bad row does not abort the rest.
	CreateAccountsBatch(ctx context.Context, req dto.CreateAccountsBatchRequest) (*dto.CreateAccountsBatchResponse, error)

	// ListAccounts returns the chart of accounts ordered by code.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)

	// DeactivateAccount soft-deletes an account by code.
	DeactivateAccount(ctx context.Context, code string) error
}

// AccountSvcFacade combines directory and maintenance operations.
type AccountSvcFacade interface {
	AccountDirectorySvc
	AccountManagerSvc
}
