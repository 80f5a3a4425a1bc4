package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/core/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockRawRepo     *MockRawTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ReconciliationSvcFacade
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockRawRepo = new(MockRawTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	accountSvc := services.NewAccountService(suite.mockAccountRepo)
	suite.service = services.NewReconciliationService(suite.mockRawRepo, accountSvc)
}

func reconcileRequest() dto.ReconcileRequest {
	return dto.ReconcileRequest{
		EntryDate: "2024-02-01",
		Memo:      "Groceries",
		CreatedBy: "tester",
		Allocations: []dto.ReconcileAllocationInput{
			{RawTransactionID: "raw-1", AmountApplied: "45.00"},
		},
		Lines: []dto.JournalLineInput{
			{AccountCode: "6100", Type: "DEBIT", Amount: "45.00"},
			{AccountCode: "1000", Type: "CREDIT", Amount: "45.00"},
		},
	}
}

func (suite *ReconciliationServiceTestSuite) expectAccounts(codes ...string) {
	found := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		found[code] = domain.Account{AccountID: "id-" + code, Code: code}
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, mock.Anything).Return(found, nil).Once()
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_Success() {
	ctx := context.Background()
	suite.expectAccounts("6100", "1000")

	result := &domain.ReconcileResult{
		JournalEntryID:           "je-1",
		JournalNumber:            "JRN-20240201-AAAAAAAA",
		AllocationCount:          1,
		ReconciledTransactionIDs: []string{"raw-1"},
	}
	suite.mockRawRepo.On("ApplyReconciliation", ctx, "key-1", mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("[]domain.AllocationInput")).
		Return(result, false, nil).Once()

	resp, err := suite.service.Reconcile(ctx, "key-1", reconcileRequest())

	suite.Require().NoError(err)
	suite.Equal("je-1", resp.JournalEntryID)
	suite.Equal(1, resp.AllocationCount)
	suite.Equal([]string{"raw-1"}, resp.ReconciledTransactionIDs)
	suite.mockRawRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_KeyRequired() {
	ctx := context.Background()

	resp, err := suite.service.Reconcile(ctx, "", reconcileRequest())

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindIdempotencyRequired))
	suite.mockRawRepo.AssertNotCalled(suite.T(), "ApplyReconciliation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_RejectsZeroAllocation() {
	ctx := context.Background()
	req := reconcileRequest()
	req.Allocations[0].AmountApplied = "0"

	resp, err := suite.service.Reconcile(ctx, "key-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_RejectsNegativeAllocation() {
	ctx := context.Background()
	req := reconcileRequest()
	req.Allocations[0].AmountApplied = "-45.00"

	resp, err := suite.service.Reconcile(ctx, "key-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindInvalidAmountFormat))
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_RejectsZeroAmountLines() {
	ctx := context.Background()
	req := reconcileRequest()
	req.Lines[0].Amount = "0"
	req.Lines[1].Amount = "0"

	resp, err := suite.service.Reconcile(ctx, "key-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
	suite.mockRawRepo.AssertNotCalled(suite.T(), "ApplyReconciliation",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_ShapeBeforeAmounts() {
	ctx := context.Background()
	req := reconcileRequest()
	req.Lines = req.Lines[:1] // one line, also would be unbalanced

	resp, err := suite.service.Reconcile(ctx, "key-1", req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_ReplayReturnsStoredResult() {
	ctx := context.Background()
	suite.expectAccounts("6100", "1000")

	stored := &domain.ReconcileResult{
		JournalEntryID:           "je-original",
		JournalNumber:            "JRN-20240201-BBBBBBBB",
		AllocationCount:          1,
		ReconciledTransactionIDs: []string{"raw-1"},
	}
	suite.mockRawRepo.On("ApplyReconciliation", ctx, "key-1", mock.Anything, mock.Anything, mock.Anything).
		Return(stored, true, nil).Once()

	resp, err := suite.service.Reconcile(ctx, "key-1", reconcileRequest())

	suite.Require().NoError(err)
	suite.Equal("je-original", resp.JournalEntryID)
	suite.mockRawRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_OverAllocationSurfaces() {
	ctx := context.Background()
	suite.expectAccounts("6100", "1000")

	overErr := apperrors.NewOverAllocated("raw-1", "10.0000", "45.0000")
	suite.mockRawRepo.On("ApplyReconciliation", ctx, "key-1", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, false, overErr).Once()

	resp, err := suite.service.Reconcile(ctx, "key-1", reconcileRequest())

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindOverAllocated))
	suite.mockRawRepo.AssertExpectations(suite.T())
}

func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}

// fakeSerializingReconciler imitates the store's row-lock behavior: calls
// serialize on a mutex and allocation bounds are re-checked against the
// shared remaining amount under that lock.
type fakeSerializingReconciler struct {
	MockRawTransactionRepository

	mu        sync.Mutex
	remaining money.Money
	applied   int
}

func (f *fakeSerializingReconciler) ApplyReconciliation(_ context.Context, _ string, entry domain.JournalEntry, _ []domain.JournalLine, allocations []domain.AllocationInput) (*domain.ReconcileResult, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, alloc := range allocations {
		if alloc.AmountApplied.Cmp(f.remaining) > 0 {
			return nil, false, apperrors.NewOverAllocated(alloc.RawTransactionID, f.remaining.String(), alloc.AmountApplied.String())
		}
		f.remaining = f.remaining.Sub(alloc.AmountApplied)
	}
	f.applied++
	return &domain.ReconcileResult{
		JournalEntryID:           entry.JournalEntryID,
		JournalNumber:            entry.JournalNumber,
		AllocationCount:          len(allocations),
		ReconciledTransactionIDs: []string{allocations[0].RawTransactionID},
	}, false, nil
}

func TestReconcile_ConcurrentAllocationsNeverOvershoot(t *testing.T) {
	ctx := context.Background()

	// One raw transaction with 45.00 remaining; two concurrent
	// reconciliations each try to allocate the full amount. Exactly one may
	// win.
	remaining, err := money.Parse("45.00")
	if err != nil {
		t.Fatal(err)
	}
	fake := &fakeSerializingReconciler{remaining: remaining}

	mockAccountRepo := new(MockAccountRepository)
	found := map[string]domain.Account{
		"6100": {AccountID: "id-6100", Code: "6100"},
		"1000": {AccountID: "id-1000", Code: "1000"},
	}
	mockAccountRepo.On("FindAccountsByCodes", mock.Anything, mock.Anything).Return(found, nil)

	service := services.NewReconciliationService(fake, services.NewAccountService(mockAccountRepo))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "key-" + string(rune('a'+i))
			_, errs[i] = service.Reconcile(ctx, key, reconcileRequest())
		}(i)
	}
	wg.Wait()

	var successes, overAllocated int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case apperrors.IsKind(err, apperrors.KindOverAllocated):
			overAllocated++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || overAllocated != 1 {
		t.Fatalf("want exactly one success and one over-allocation, got %d successes, %d over-allocations", successes, overAllocated)
	}
	if !fake.remaining.IsZero() {
		t.Fatalf("remaining should be exactly zero, got %s", fake.remaining.String())
	}
	if fake.applied != 1 {
		t.Fatalf("exactly one reconciliation should have applied, got %d", fake.applied)
	}
}
