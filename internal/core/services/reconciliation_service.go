package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
	"github.com/tallyledger/tally_ledger_app/internal/middleware"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

// reconciliationService links imported transactions to new journal entries.
// Validation runs in a fixed order so a request with several problems always
// reports the same one: key, shape, amounts, balance, accounts; the
// allocation bound is only checked under the row locks in the store.
type reconciliationService struct {
	rawTxnRepo portsrepo.RawTransactionRepositoryFacade
	accountSvc portssvc.AccountDirectorySvc
}

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(rawTxnRepo portsrepo.RawTransactionRepositoryFacade, accountSvc portssvc.AccountDirectorySvc) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{rawTxnRepo: rawTxnRepo, accountSvc: accountSvc}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile posts a balanced journal entry and applies the requested
// allocations in one atomic unit, exactly once per idempotency key.
func (s *reconciliationService) Reconcile(ctx context.Context, idempotencyKey string, req dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if idempotencyKey == "" {
		return nil, apperrors.New(apperrors.KindIdempotencyRequired, "Idempotency-Key header is required")
	}
	if len(req.Lines) < 2 {
		return nil, apperrors.New(apperrors.KindValidation, "a journal entry requires at least two lines")
	}
	if len(req.Allocations) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "at least one transaction allocation is required")
	}

	entryDate, err := time.Parse(entryDateLayout, req.EntryDate)
	if err != nil {
		return nil, apperrors.New(apperrors.KindValidation, "entryDate must be formatted as YYYY-MM-DD")
	}

	// Same request may name one raw transaction several times; the store
	// applies allocations in order against a running remaining balance.
	allocations := make([]domain.AllocationInput, len(req.Allocations))
	for i, alloc := range req.Allocations {
		amount, err := money.ParseUnsigned(alloc.AmountApplied)
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			return nil, apperrors.New(apperrors.KindValidation, "amountApplied must be greater than zero")
		}
		allocations[i] = domain.AllocationInput{
			RawTransactionID: alloc.RawTransactionID,
			AmountApplied:    amount,
		}
	}

	journalEntryID := uuid.NewString()
	lines, err := buildEntryLines(ctx, s.accountSvc, journalEntryID, req.Lines)
	if err != nil {
		return nil, err
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = "RECONCILIATION"
	}
	entry := domain.JournalEntry{
		JournalEntryID: journalEntryID,
		JournalNumber:  newJournalNumber(entryDate),
		EntryDate:      entryDate,
		Status:         domain.Posted,
		Memo:           req.Memo,
		SourceType:     sourceType,
		SourceRef:      req.SourceRef,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: req.CreatedBy,
		},
	}

	result, replayed, err := s.rawTxnRepo.ApplyReconciliation(ctx, idempotencyKey, entry, lines, allocations)
	if apperrors.IsKind(err, apperrors.KindDuplicateJournalNumber) {
		entry.JournalNumber = newJournalNumber(entryDate)
		result, replayed, err = s.rawTxnRepo.ApplyReconciliation(ctx, idempotencyKey, entry, lines, allocations)
		if apperrors.IsKind(err, apperrors.KindDuplicateJournalNumber) {
			err = apperrors.Wrap(apperrors.KindInternal, "could not generate a unique journal number", err)
		}
	}
	if err != nil {
		logger.Error("reconciliation failed",
			slog.String("idempotency_key", idempotencyKey),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("reconciliation applied",
		slog.String("idempotency_key", idempotencyKey),
		slog.String("journal_entry_id", result.JournalEntryID),
		slog.Int("allocation_count", result.AllocationCount),
		slog.Bool("replayed", replayed),
	)
	return &dto.ReconcileResponse{
		JournalEntryID:           result.JournalEntryID,
		JournalNumber:            result.JournalNumber,
		AllocationCount:          result.AllocationCount,
		ReconciledTransactionIDs: result.ReconciledTransactionIDs,
	}, nil
}
