package services

// ServiceContainer holds instances of all application services. It is the
// single entry point handlers use to reach core functionality.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Import         ImportSvcFacade
	Reconciliation ReconciliationSvcFacade
}
