package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	portsrepo "github.com/tallyledger/tally_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/tallyledger/tally_ledger_app/internal/core/ports/services"
	"github.com/tallyledger/tally_ledger_app/internal/dto"
	"github.com/tallyledger/tally_ledger_app/internal/middleware"
	"github.com/tallyledger/tally_ledger_app/internal/utils/accounting"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

const (
	entryDateLayout = "2006-01-02"

	// lineCurrencyCode is stamped on every journal line. Multi-currency
	// entries are not supported.
	lineCurrencyCode = "USD"

	defaultPageLimit = 20
	maxPageLimit     = 100
)

// journalService posts and reads immutable journal entries.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountDirectorySvc
}

// NewJournalService creates the journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountDirectorySvc) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo, accountSvc: accountSvc}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// newJournalNumber builds a human-readable entry number from the entry date
// and a random suffix, e.g. JRN-20240131-9F8A2C41. Uniqueness is enforced by
// the store; on collision the caller regenerates once.
func newJournalNumber(entryDate time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("JRN-%s-%s", entryDate.Format("20060102"), suffix)
}

// buildEntryLines validates each line amount, checks the debit/credit
// balance, resolves the account codes, and materializes persistable lines.
// Validation order is fixed: amounts, then balance, then accounts.
func buildEntryLines(ctx context.Context, accountSvc portssvc.AccountDirectorySvc, journalEntryID string, inputs []dto.JournalLineInput) ([]domain.JournalLine, error) {
	amounts := make([]money.Money, len(inputs))
	lineAmounts := make([]accounting.LineAmount, len(inputs))
	for i, input := range inputs {
		amount, err := money.ParseUnsigned(input.Amount)
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			return nil, apperrors.New(apperrors.KindValidation, "line amounts must be greater than zero")
		}
		amounts[i] = amount
		lineAmounts[i] = accounting.LineAmount{Type: domain.LineType(input.Type), Amount: amount}
	}

	if _, err := accounting.ValidateBalanced(lineAmounts); err != nil {
		return nil, err
	}

	codes := make([]string, len(inputs))
	for i, input := range inputs {
		codes[i] = input.AccountCode
	}
	accountIDs, err := accountSvc.ResolveAccountIDs(ctx, codes)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.JournalLine, len(inputs))
	for i, input := range inputs {
		lines[i] = domain.JournalLine{
			LineID:         uuid.NewString(),
			JournalEntryID: journalEntryID,
			LineNumber:     i + 1,
			AccountID:      accountIDs[input.AccountCode],
			LineType:       domain.LineType(input.Type),
			Amount:         amounts[i],
			CurrencyCode:   lineCurrencyCode,
			Description:    input.Description,
		}
	}
	return lines, nil
}

// PostEntry validates and atomically persists one balanced journal entry.
func (s *journalService) PostEntry(ctx context.Context, req dto.PostJournalEntryRequest) (*dto.PostJournalEntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryDate, err := time.Parse(entryDateLayout, req.EntryDate)
	if err != nil {
		return nil, apperrors.New(apperrors.KindValidation, "entryDate must be formatted as YYYY-MM-DD")
	}

	journalEntryID := uuid.NewString()
	lines, err := buildEntryLines(ctx, s.accountSvc, journalEntryID, req.Lines)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		JournalEntryID: journalEntryID,
		JournalNumber:  newJournalNumber(entryDate),
		EntryDate:      entryDate,
		Status:         domain.Posted,
		Memo:           req.Memo,
		SourceType:     req.SourceType,
		SourceRef:      req.SourceRef,
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC(),
			CreatedBy: req.CreatedBy,
		},
	}

	err = s.journalRepo.SaveEntry(ctx, entry, lines)
	if apperrors.IsKind(err, apperrors.KindDuplicateJournalNumber) {
		// Random suffix collided; one regeneration is plenty.
		entry.JournalNumber = newJournalNumber(entryDate)
		err = s.journalRepo.SaveEntry(ctx, entry, lines)
		if apperrors.IsKind(err, apperrors.KindDuplicateJournalNumber) {
			err = apperrors.Wrap(apperrors.KindInternal, "could not generate a unique journal number", err)
		}
	}
	if err != nil {
		logger.Error("failed to save journal entry", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("journal entry posted",
		slog.String("journal_entry_id", entry.JournalEntryID),
		slog.String("journal_number", entry.JournalNumber),
		slog.Int("line_count", len(lines)),
	)
	return &dto.PostJournalEntryResponse{
		JournalEntryID: entry.JournalEntryID,
		JournalNumber:  entry.JournalNumber,
	}, nil
}

// GetEntry retrieves an entry header with its lines.
func (s *journalService) GetEntry(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of entry headers, newest entry date first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := clampLimit(params.Limit)
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListJournalEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// clampLimit normalizes a page size to [1, maxPageLimit] with a default.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
