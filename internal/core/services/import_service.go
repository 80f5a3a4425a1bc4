package services

import (
	"context"
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
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

// importService brings externally sourced transactions into the ledger.
type importService struct {
	rawTxnRepo portsrepo.RawTransactionRepositoryFacade
	accountSvc portssvc.AccountDirectorySvc
}

// NewImportService creates the import service.
func NewImportService(rawTxnRepo portsrepo.RawTransactionRepositoryFacade, accountSvc portssvc.AccountDirectorySvc) portssvc.ImportSvcFacade {
	return &importService{rawTxnRepo: rawTxnRepo, accountSvc: accountSvc}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// ImportTransactions records one import batch and inserts its rows one by
// one so a re-run of the same file skips already-imported rows instead of
// failing. All rows are validated before any row is written.
func (s *importService) ImportTransactions(ctx context.Context, req dto.ImportTransactionsRequest) (*dto.ImportTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountID, err := s.accountSvc.ResolveAccountID(ctx, req.AccountCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := domain.ImportBatch{
		ImportBatchID: uuid.NewString(),
		Source:        req.Source,
		AccountID:     accountID,
		FileName:      req.FileName,
		RowCount:      len(req.Transactions),
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: req.CreatedBy,
		},
	}

	txns := make([]domain.RawTransaction, len(req.Transactions))
	for i, row := range req.Transactions {
		amount, err := money.Parse(row.Amount)
		if err != nil {
			return nil, err
		}
		txns[i] = domain.RawTransaction{
			RawTransactionID: uuid.NewString(),
			Source:           req.Source,
			ExternalID:       row.ExternalID,
			OccurredAt:       row.OccurredAt,
			Description:      row.Description,
			Amount:           amount,
			CurrencyCode:     strings.ToUpper(row.CurrencyCode),
			Metadata:         row.Metadata,
			AccountID:        accountID,
			ImportBatchID:    batch.ImportBatchID,
			AllocatedAmount:  money.Zero(),
			Status:           domain.Unreconciled,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: req.CreatedBy,
			},
		}
	}

	if err := s.rawTxnRepo.SaveImportBatch(ctx, batch); err != nil {
		logger.Error("failed to save import batch", slog.String("error", err.Error()))
		return nil, err
	}

	resp := &dto.ImportTransactionsResponse{
		ImportBatchID:  batch.ImportBatchID,
		AccountID:      accountID,
		AttemptedCount: len(txns),
	}
	for i := range txns {
		inserted, err := s.rawTxnRepo.InsertRawTransaction(ctx, txns[i])
		if err != nil {
			logger.Error("failed to insert raw transaction",
				slog.String("external_id", txns[i].ExternalID),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		if inserted {
			resp.InsertedCount++
		} else {
			resp.DuplicateCount++
		}
	}

	logger.Info("import batch completed",
		slog.String("import_batch_id", batch.ImportBatchID),
		slog.Int("attempted", resp.AttemptedCount),
		slog.Int("inserted", resp.InsertedCount),
		slog.Int("duplicates", resp.DuplicateCount),
	)
	return resp, nil
}

// ListRawTransactions pages through one account's imported transactions,
// optionally filtered by reconciliation status.
func (s *importService) ListRawTransactions(ctx context.Context, params dto.ListRawTransactionsParams) (*dto.ListRawTransactionsResponse, error) {
	accountID, err := s.accountSvc.ResolveAccountID(ctx, params.AccountCode)
	if err != nil {
		return nil, err
	}

	var status *domain.ReconciliationStatus
	if params.Status != "" {
		st := domain.ReconciliationStatus(params.Status)
		switch st {
		case domain.Unreconciled, domain.PartiallyReconciled, domain.FullyReconciled:
			status = &st
		default:
			return nil, apperrors.New(apperrors.KindValidation, "unknown reconciliation status: "+params.Status)
		}
	}

	txns, nextToken, err := s.rawTxnRepo.ListRawTransactions(ctx, accountID, status, clampLimit(params.Limit), params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListRawTransactionsResponse{
		Transactions: dto.ToRawTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
