package services

import (
	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	return &portssvc.ServiceContainer{
		Account:        accountSvc,
		Journal:        NewJournalService(repos.JournalRepo, accountSvc),
		Import:         NewImportService(repos.RawTransactionRepo, accountSvc),
		Reconciliation: NewReconciliationService(repos.RawTransactionRepo, accountSvc),
	}
}
