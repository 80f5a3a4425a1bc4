package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
	"github.com/tallyledger/tally_ledger_app/internal/handlers"
	"github.com/tallyledger/tally_ledger_app/internal/platform/config"
)

// --- Mock services ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ResolveAccountID(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) ResolveAccountIDs(ctx context.Context, codes []string) (map[string]string, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccountsBatch(ctx context.Context, req dto.CreateAccountsBatchRequest) (*dto.CreateAccountsBatchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateAccountsBatchResponse), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) PostEntry(ctx context.Context, req dto.PostJournalEntryRequest) (*dto.PostJournalEntryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostJournalEntryResponse), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest) (*dto.ImportTransactionsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportTransactionsResponse), args.Error(1)
}

func (m *MockImportService) ListRawTransactions(ctx context.Context, params dto.ListRawTransactionsParams) (*dto.ListRawTransactionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListRawTransactionsResponse), args.Error(1)
}

var _ portssvc.ImportSvcFacade = (*MockImportService)(nil)

type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, idempotencyKey string, req dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	args := m.Called(ctx, idempotencyKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReconcileResponse), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Suite setup ---

type HandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccount        *MockAccountService
	mockJournal        *MockJournalService
	mockImport         *MockImportService
	mockReconciliation *MockReconciliationService
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockAccount = new(MockAccountService)
	suite.mockJournal = new(MockJournalService)
	suite.mockImport = new(MockImportService)
	suite.mockReconciliation = new(MockReconciliationService)

	services := &portssvc.ServiceContainer{
		Account:        suite.mockAccount,
		Journal:        suite.mockJournal,
		Import:         suite.mockImport,
		Reconciliation: suite.mockReconciliation,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

func (suite *HandlerTestSuite) request(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) testEnvelope {
	var env testEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// --- Tests ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	account := &domain.Account{AccountID: "id-1", Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalSide: domain.DebitSide, IsActive: true}
	suite.mockAccount.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(account, nil).Once()

	body := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET", NormalSide: "DEBIT"}
	w := suite.request(http.MethodPost, "/api/v1/accounts", body, nil)

	suite.Equal(http.StatusCreated, w.Code)
	env := suite.decode(w)
	suite.True(env.Success)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &resp))
	suite.Equal("1000", resp.Code)
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingFailure() {
	// Missing required fields never reaches the service.
	w := suite.request(http.MethodPost, "/api/v1/accounts", gin.H{"code": "1000"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w)
	suite.False(env.Success)
	suite.Equal("VALIDATION_ERROR", env.Error.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_DuplicateConflict() {
	suite.mockAccount.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewDuplicateAccountCode("1000")).Once()

	body := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET", NormalSide: "DEBIT"}
	w := suite.request(http.MethodPost, "/api/v1/accounts", body, nil)

	suite.Equal(http.StatusConflict, w.Code)
	env := suite.decode(w)
	suite.Equal("DUPLICATE_ACCOUNT_CODE", env.Error.Code)
}

func (suite *HandlerTestSuite) TestPostEntry_Unbalanced() {
	suite.mockJournal.On("PostEntry", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnbalancedEntry("100.0000", "99.0000")).Once()

	body := dto.PostJournalEntryRequest{
		EntryDate: "2024-01-31",
		Lines: []dto.JournalLineInput{
			{AccountCode: "6000", Type: "DEBIT", Amount: "100.00"},
			{AccountCode: "1000", Type: "CREDIT", Amount: "99.00"},
		},
	}
	w := suite.request(http.MethodPost, "/api/v1/journal-entries", body, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w)
	suite.Equal("UNBALANCED_ENTRY", env.Error.Code)
	suite.Equal("100.0000", env.Error.Details["debitTotal"])
}

func (suite *HandlerTestSuite) TestPostEntry_RejectsSingleLine() {
	body := dto.PostJournalEntryRequest{
		EntryDate: "2024-01-31",
		Lines: []dto.JournalLineInput{
			{AccountCode: "6000", Type: "DEBIT", Amount: "100.00"},
		},
	}
	w := suite.request(http.MethodPost, "/api/v1/journal-entries", body, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournal.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockJournal.On("GetEntry", mock.Anything, "nope").
		Return(nil, apperrors.New(apperrors.KindNotFound, "journal entry not found: nope")).Once()

	w := suite.request(http.MethodGet, "/api/v1/journal-entries/nope", nil, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestReconcile_MissingIdempotencyKey() {
	// The service owns the check; the handler passes the empty header on.
	suite.mockReconciliation.On("Reconcile", mock.Anything, "", mock.Anything).
		Return(nil, apperrors.New(apperrors.KindIdempotencyRequired, "Idempotency-Key header is required")).Once()

	body := dto.ReconcileRequest{
		EntryDate: "2024-02-01",
		Allocations: []dto.ReconcileAllocationInput{
			{RawTransactionID: "raw-1", AmountApplied: "45.00"},
		},
		Lines: []dto.JournalLineInput{
			{AccountCode: "6100", Type: "DEBIT", Amount: "45.00"},
			{AccountCode: "1000", Type: "CREDIT", Amount: "45.00"},
		},
	}
	w := suite.request(http.MethodPost, "/api/v1/reconciliations", body, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w)
	suite.Equal("IDEMPOTENCY_REQUIRED", env.Error.Code)
}

func (suite *HandlerTestSuite) TestReconcile_OverAllocatedConflict() {
	suite.mockReconciliation.On("Reconcile", mock.Anything, "key-1", mock.Anything).
		Return(nil, apperrors.NewOverAllocated("raw-1", "10.0000", "45.0000")).Once()

	body := dto.ReconcileRequest{
		EntryDate: "2024-02-01",
		Allocations: []dto.ReconcileAllocationInput{
			{RawTransactionID: "raw-1", AmountApplied: "45.00"},
		},
		Lines: []dto.JournalLineInput{
			{AccountCode: "6100", Type: "DEBIT", Amount: "45.00"},
			{AccountCode: "1000", Type: "CREDIT", Amount: "45.00"},
		},
	}
	w := suite.request(http.MethodPost, "/api/v1/reconciliations", body, map[string]string{"Idempotency-Key": "key-1"})

	suite.Equal(http.StatusConflict, w.Code)
	env := suite.decode(w)
	suite.Equal("OVER_ALLOCATED", env.Error.Code)
	suite.Equal("10.0000", env.Error.Details["remaining"])
}

func (suite *HandlerTestSuite) TestImport_Success() {
	resp := &dto.ImportTransactionsResponse{ImportBatchID: "batch-1", AccountID: "acct-1", AttemptedCount: 2, InsertedCount: 1, DuplicateCount: 1}
	suite.mockImport.On("ImportTransactions", mock.Anything, mock.Anything).Return(resp, nil).Once()

	body := gin.H{
		"source":      "chase_checking",
		"accountCode": "1000",
		"transactions": []gin.H{
			{"externalId": "t1", "occurredAt": "2024-01-15T09:30:00Z", "amount": "-45.00", "currencyCode": "USD"},
			{"externalId": "t2", "occurredAt": "2024-01-15T09:31:00Z", "amount": "99.00", "currencyCode": "USD"},
		},
	}
	w := suite.request(http.MethodPost, "/api/v1/raw-transactions/import", body, nil)

	suite.Equal(http.StatusCreated, w.Code)
	env := suite.decode(w)
	suite.True(env.Success)

	var got dto.ImportTransactionsResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &got))
	suite.Equal(1, got.DuplicateCount)
}

func (suite *HandlerTestSuite) TestListRawTransactions_RequiresAccountCode() {
	w := suite.request(http.MethodGet, "/api/v1/raw-transactions", nil, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockImport.AssertNotCalled(suite.T(), "ListRawTransactions", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestInternalErrorIsOpaque() {
	suite.mockAccount.On("ListAccounts", mock.Anything, false).
		Return(nil, apperrors.NewInternal("select failed", nil)).Once()

	w := suite.request(http.MethodGet, "/api/v1/accounts", nil, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	env := suite.decode(w)
	suite.Equal("INTERNAL_ERROR", env.Error.Code)
	suite.Equal("internal server error", env.Error.Message)
	suite.NotContains(env.Error.Message, "select failed")
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Service token auth ---

type AuthTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockAccount *MockAccountService
}

func (suite *AuthTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockAccount = new(MockAccountService)

	services := &portssvc.ServiceContainer{
		Account:        suite.mockAccount,
		Journal:        new(MockJournalService),
		Import:         new(MockImportService),
		Reconciliation: new(MockReconciliationService),
	}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{ServiceToken: "sekret"}, services)
}

func (suite *AuthTestSuite) TestMissingTokenRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AuthTestSuite) TestValidTokenAccepted() {
	suite.mockAccount.On("ListAccounts", mock.Anything, false).
		Return([]domain.Account{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccount.AssertExpectations(suite.T())
}

func (suite *AuthTestSuite) TestHealthStaysPublic() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func TestServiceTokenAuth(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
