package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/core/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
)

type ImportServiceTestSuite struct {
	suite.Suite
	mockRawRepo     *MockRawTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.ImportSvcFacade
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockRawRepo = new(MockRawTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	accountSvc := services.NewAccountService(suite.mockAccountRepo)
	suite.service = services.NewImportService(suite.mockRawRepo, accountSvc)
}

func importRequest() dto.ImportTransactionsRequest {
	occurred := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	return dto.ImportTransactionsRequest{
		Source:      "chase_checking",
		AccountCode: "1000",
		FileName:    "jan.csv",
		CreatedBy:   "importer",
		Transactions: []dto.ImportTransactionInput{
			{ExternalID: "txn-001", OccurredAt: occurred, Amount: "-45.00", CurrencyCode: "USD", Description: "Coffee"},
			{ExternalID: "txn-002", OccurredAt: occurred, Amount: "1500.00", CurrencyCode: "USD", Description: "Salary"},
			{ExternalID: "txn-003", OccurredAt: occurred, Amount: "-12.99", CurrencyCode: "USD"},
		},
	}
}

func (suite *ImportServiceTestSuite) expectAccount(code, id string) {
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, code).
		Return(&domain.Account{AccountID: id, Code: code, IsActive: true}, nil).Once()
}

func (suite *ImportServiceTestSuite) TestImportTransactions_CountsDuplicates() {
	ctx := context.Background()
	suite.expectAccount("1000", "acct-1")

	suite.mockRawRepo.On("SaveImportBatch", ctx, mock.AnythingOfType("domain.ImportBatch")).Return(nil).Once()
	suite.mockRawRepo.On("InsertRawTransaction", ctx, mock.MatchedBy(func(t domain.RawTransaction) bool { return t.ExternalID == "txn-001" })).
		Return(true, nil).Once()
	suite.mockRawRepo.On("InsertRawTransaction", ctx, mock.MatchedBy(func(t domain.RawTransaction) bool { return t.ExternalID == "txn-002" })).
		Return(false, nil).Once()
	suite.mockRawRepo.On("InsertRawTransaction", ctx, mock.MatchedBy(func(t domain.RawTransaction) bool { return t.ExternalID == "txn-003" })).
		Return(true, nil).Once()

	resp, err := suite.service.ImportTransactions(ctx, importRequest())

	suite.Require().NoError(err)
	suite.Equal(3, resp.AttemptedCount)
	suite.Equal(2, resp.InsertedCount)
	suite.Equal(1, resp.DuplicateCount)
	suite.Equal(resp.AttemptedCount, resp.InsertedCount+resp.DuplicateCount)
	suite.Equal("acct-1", resp.AccountID)
	suite.NotEmpty(resp.ImportBatchID)

	suite.mockRawRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportTransactions_UnknownAccountFailsFast() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, "1000").
		Return(nil, apperrors.New(apperrors.KindNotFound, "account not found: 1000")).Once()

	resp, err := suite.service.ImportTransactions(ctx, importRequest())

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindMissingAccount))
	suite.mockRawRepo.AssertNotCalled(suite.T(), "SaveImportBatch", mock.Anything, mock.Anything)
}

func (suite *ImportServiceTestSuite) TestImportTransactions_InvalidAmountAbortsBeforeAnyWrite() {
	ctx := context.Background()
	suite.expectAccount("1000", "acct-1")

	req := importRequest()
	req.Transactions[1].Amount = "1500.123456"

	resp, err := suite.service.ImportTransactions(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindInvalidAmountFormat))
	suite.mockRawRepo.AssertNotCalled(suite.T(), "SaveImportBatch", mock.Anything, mock.Anything)
	suite.mockRawRepo.AssertNotCalled(suite.T(), "InsertRawTransaction", mock.Anything, mock.Anything)
}

func (suite *ImportServiceTestSuite) TestImportTransactions_RowsStartUnreconciled() {
	ctx := context.Background()
	suite.expectAccount("1000", "acct-1")

	req := importRequest()
	req.Transactions = req.Transactions[:1]
	req.Transactions[0].CurrencyCode = "usd"

	suite.mockRawRepo.On("SaveImportBatch", ctx, mock.AnythingOfType("domain.ImportBatch")).Return(nil).Once()
	suite.mockRawRepo.On("InsertRawTransaction", ctx, mock.MatchedBy(func(t domain.RawTransaction) bool {
		return t.Status == domain.Unreconciled && t.AllocatedAmount.IsZero() &&
			t.AccountID == "acct-1" && t.CurrencyCode == "USD"
	})).Return(true, nil).Once()

	_, err := suite.service.ImportTransactions(ctx, req)

	suite.Require().NoError(err)
	suite.mockRawRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestListRawTransactions_InvalidStatus() {
	ctx := context.Background()
	suite.expectAccount("1000", "acct-1")

	resp, err := suite.service.ListRawTransactions(ctx, dto.ListRawTransactionsParams{
		AccountCode: "1000",
		Status:      "HALF_DONE",
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.True(apperrors.IsKind(err, apperrors.KindValidation))
}

func (suite *ImportServiceTestSuite) TestListRawTransactions_StatusFilter() {
	ctx := context.Background()
	suite.expectAccount("1000", "acct-1")

	status := domain.PartiallyReconciled
	suite.mockRawRepo.On("ListRawTransactions", ctx, "acct-1", &status, 20, (*string)(nil)).
		Return([]domain.RawTransaction{}, nil, nil).Once()

	resp, err := suite.service.ListRawTransactions(ctx, dto.ListRawTransactionsParams{
		AccountCode: "1000",
		Status:      "PARTIALLY_RECONCILED",
	})

	suite.Require().NoError(err)
	suite.NotNil(resp)
	suite.mockRawRepo.AssertExpectations(suite.T())
}

func TestImportService(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
