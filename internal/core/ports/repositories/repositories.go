package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service layer. Constructed once at startup against a shared pool;
// no repository initializes storage lazily.
type RepositoryProvider struct {
	AccountRepo        AccountRepositoryFacade
	JournalRepo        JournalRepositoryFacade
	RawTransactionRepo RawTransactionRepositoryFacade
}
