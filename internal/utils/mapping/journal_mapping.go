package mapping

import (
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	"github.com/tallyledger/tally_ledger_app/internal/models"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

// ToModelJournalEntry converts a domain journal entry header to its DB row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		JournalNumber:  d.JournalNumber,
		EntryDate:      d.EntryDate,
		Status:         string(d.Status),
		Memo:           d.Memo,
		SourceType:     d.SourceType,
		SourceRef:      d.SourceRef,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainJournalEntry converts a DB row to the domain header.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		JournalNumber:  m.JournalNumber,
		EntryDate:      m.EntryDate,
		Status:         domain.EntryStatus(m.Status),
		Memo:           m.Memo,
		SourceType:     m.SourceType,
		SourceRef:      m.SourceRef,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}

// ToModelJournalLine converts a domain line to its DB row.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		LineNumber:     d.LineNumber,
		AccountID:      d.AccountID,
		LineType:       string(d.LineType),
		Amount:         d.Amount.Decimal(),
		CurrencyCode:   d.CurrencyCode,
		Description:    d.Description,
	}
}

// ToDomainJournalLine converts a DB row to the domain line.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		LineNumber:     m.LineNumber,
		AccountID:      m.AccountID,
		LineType:       domain.LineType(m.LineType),
		Amount:         money.FromDecimal(m.Amount),
		CurrencyCode:   m.CurrencyCode,
		Description:    m.Description,
	}
}

// ToDomainJournalLineSlice converts a slice of DB rows to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		lines[i] = ToDomainJournalLine(m)
	}
	return lines
}
