package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs every repository against a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:        newPgxAccountRepository(dbPool),
		JournalRepo:        newPgxJournalRepository(dbPool),
		RawTransactionRepo: newPgxRawTransactionRepository(dbPool),
	}
}
