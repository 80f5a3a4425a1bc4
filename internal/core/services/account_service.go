package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
	"github.com/tallyledger/tally_ledger_app/internal/middleware"
)

// accountService implements the account directory and chart-of-accounts
// maintenance on top of the account repository.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ResolveAccountID resolves one active account code to its identifier.
func (s *accountService) ResolveAccountID(ctx context.Context, code string) (string, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return "", apperrors.NewMissingAccount([]string{code})
		}
		return "", err
	}
	return account.AccountID, nil
}

// ResolveAccountIDs resolves a batch of codes; the error reports every
// missing code, not just the first.
func (s *accountService) ResolveAccountIDs(ctx context.Context, codes []string) (map[string]string, error) {
	unique := uniqueStrings(codes)
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, unique)
	if err != nil {
		return nil, err
	}

	missing := make([]string, 0)
	resolved := make(map[string]string, len(unique))
	for _, code := range unique {
		account, found := accounts[code]
		if !found {
			missing = append(missing, code)
			continue
		}
		resolved[code] = account.AccountID
	}

	if len(missing) > 0 {
		return nil, apperrors.NewMissingAccount(missing)
	}
	return resolved, nil
}

// CreateAccount creates one account. A normal side opposite the account
// type's convention is a contra account and requires explicit confirmation.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: domain.AccountType(req.AccountType),
		NormalSide:  domain.NormalSide(req.NormalSide),
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: req.CreatedBy,
		},
	}

	if account.IsContra() && !req.AllowContra {
		expected := domain.ExpectedNormalSide[account.AccountType]
		return nil, &apperrors.AppError{
			Kind:    apperrors.KindContraConfirmationRequired,
			Message: "contra account requested; re-run with allowContra=true",
			Details: map[string]any{
				"accountType":        req.AccountType,
				"expectedNormalSide": string(expected),
				"providedNormalSide": req.NormalSide,
			},
		}
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !apperrors.IsKind(err, apperrors.KindDuplicateAccountCode) {
			logger.Error("failed to save account", slog.String("code", req.Code), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// CreateAccountsBatch creates several accounts independently, collecting a
// per-row outcome instead of aborting on the first failure.
func (s *accountService) CreateAccountsBatch(ctx context.Context, req dto.CreateAccountsBatchRequest) (*dto.CreateAccountsBatchResponse, error) {
	resp := &dto.CreateAccountsBatchResponse{
		Outcomes: make([]dto.AccountBatchOutcome, 0, len(req.Accounts)),
	}

	for _, rowReq := range req.Accounts {
		account, err := s.CreateAccount(ctx, rowReq)
		if err == nil {
			accountResp := dto.ToAccountResponse(account)
			resp.CreatedCount++
			resp.Outcomes = append(resp.Outcomes, dto.AccountBatchOutcome{
				Code:    rowReq.Code,
				Status:  "created",
				Account: &accountResp,
			})
			continue
		}

		resp.FailedCount++
		outcome := dto.AccountBatchOutcome{Code: rowReq.Code, Message: err.Error()}
		switch apperrors.KindOf(err) {
		case apperrors.KindDuplicateAccountCode:
			outcome.Status = "duplicate"
		case apperrors.KindContraConfirmationRequired:
			outcome.Status = "contra_confirmation_required"
		default:
			outcome.Status = "error"
		}
		resp.Outcomes = append(resp.Outcomes, outcome)
	}

	return resp, nil
}

// ListAccounts returns the chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, includeInactive)
}

// DeactivateAccount soft-deletes an account by code. Deactivation frees the
// code for resolution purposes but the row is kept forever.
func (s *accountService) DeactivateAccount(ctx context.Context, code string) error {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return apperrors.NewMissingAccount([]string{code})
		}
		return fmt.Errorf("failed to find account for deactivation: %w", err)
	}
	return s.accountRepo.DeactivateAccount(ctx, account.AccountID)
}

// uniqueStrings returns a slice containing only the unique strings from the
// input, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
