package mapping

import (
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	"github.com/tallyledger/tally_ledger_app/internal/models"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

// ToModelRawTransaction converts a domain raw transaction to its DB row.
func ToModelRawTransaction(d domain.RawTransaction) models.RawTransaction {
	return models.RawTransaction{
		RawTransactionID:     d.RawTransactionID,
		Source:               d.Source,
		ExternalID:           d.ExternalID,
		OccurredAt:           d.OccurredAt,
		Description:          d.Description,
		Amount:               d.Amount.Decimal(),
		CurrencyCode:         d.CurrencyCode,
		Metadata:             d.Metadata,
		AccountID:            d.AccountID,
		ImportBatchID:        d.ImportBatchID,
		AllocatedAmount:      d.AllocatedAmount.Decimal(),
		ReconciliationStatus: string(d.Status),
		CreatedAt:            d.CreatedAt,
		CreatedBy:            d.CreatedBy,
	}
}

// ToDomainRawTransaction converts a DB row to the domain representation.
func ToDomainRawTransaction(m models.RawTransaction) domain.RawTransaction {
	return domain.RawTransaction{
		RawTransactionID: m.RawTransactionID,
		Source:           m.Source,
		ExternalID:       m.ExternalID,
		OccurredAt:       m.OccurredAt,
		Description:      m.Description,
		Amount:           money.FromDecimal(m.Amount),
		CurrencyCode:     m.CurrencyCode,
		Metadata:         m.Metadata,
		AccountID:        m.AccountID,
		ImportBatchID:    m.ImportBatchID,
		AllocatedAmount:  money.FromDecimal(m.AllocatedAmount),
		Status:           domain.ReconciliationStatus(m.ReconciliationStatus),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}

// ToModelImportBatch converts a domain import batch to its DB row.
func ToModelImportBatch(d domain.ImportBatch) models.ImportBatch {
	return models.ImportBatch{
		ImportBatchID: d.ImportBatchID,
		Source:        d.Source,
		AccountID:     d.AccountID,
		FileName:      d.FileName,
		RowCount:      d.RowCount,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainRawTransactionSlice converts a slice of DB rows.
func ToDomainRawTransactionSlice(ms []models.RawTransaction) []domain.RawTransaction {
	txns := make([]domain.RawTransaction, len(ms))
	for i, m := range ms {
		txns[i] = ToDomainRawTransaction(m)
	}
	return txns
}
