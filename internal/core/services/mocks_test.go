package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
)

// MockAccountRepository is a mock for the account repository facade.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// MockJournalRepository is a mock for the journal repository facade.
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

// MockRawTransactionRepository is a mock for the raw transaction facade.
type MockRawTransactionRepository struct {
	mock.Mock
}

func (m *MockRawTransactionRepository) FindRawTransactionByID(ctx context.Context, rawTransactionID string) (*domain.RawTransaction, error) {
	args := m.Called(ctx, rawTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawTransaction), args.Error(1)
}

func (m *MockRawTransactionRepository) ListRawTransactions(ctx context.Context, accountID string, status *domain.ReconciliationStatus, limit int, nextToken *string) ([]domain.RawTransaction, *string, error) {
	args := m.Called(ctx, accountID, status, limit, nextToken)
	var txns []domain.RawTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.RawTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockRawTransactionRepository) SaveImportBatch(ctx context.Context, batch domain.ImportBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockRawTransactionRepository) InsertRawTransaction(ctx context.Context, txn domain.RawTransaction) (bool, error) {
	args := m.Called(ctx, txn)
	return args.Bool(0), args.Error(1)
}

func (m *MockRawTransactionRepository) ApplyReconciliation(ctx context.Context, idempotencyKey string, entry domain.JournalEntry, lines []domain.JournalLine, allocations []domain.AllocationInput) (*domain.ReconcileResult, bool, error) {
	args := m.Called(ctx, idempotencyKey, entry, lines, allocations)
	var result *domain.ReconcileResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.ReconcileResult)
	}
	return result, args.Bool(1), args.Error(2)
}
