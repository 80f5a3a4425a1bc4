package repositories

import (
	"context"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByCode resolves an active account by its exact code.
	// Inactive or unknown codes report apperrors.KindNotFound.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes resolves multiple active accounts, keyed by code.
	// Codes with no active account are absent from the result; the
	// caller decides how to report them.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// FindAccountByID retrieves an account by its identifier regardless of
	// active state.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts returns the chart of accounts ordered by code.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount inserts a new account. A code collision among active
	// accounts reports apperrors.KindDuplicateAccountCode.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount flips the active flag off. Accounts are never
	// physically deleted.
	DeactivateAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
