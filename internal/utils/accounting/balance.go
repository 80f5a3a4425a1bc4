// Package accounting holds the double-entry balance check shared by the
// journal poster and the reconciliation engine.
package accounting

import (
	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

// LineAmount is one (type, amount) pair of a prospective journal entry.
type LineAmount struct {
	Type   domain.LineType
	Amount money.Money
}

// Totals carries the independently summed debit and credit totals.
type Totals struct {
	DebitTotal  money.Money
	CreditTotal money.Money
}

// ValidateBalanced partitions the lines by type, sums each partition, and
// requires exact equality of the two totals at scale 4. It never rounds or
// coerces; a mismatch fails with both formatted totals attached. Callers run
// this before any persistence side effect.
func ValidateBalanced(lines []LineAmount) (Totals, error) {
	debitTotal := money.Zero()
	creditTotal := money.Zero()

	for _, line := range lines {
		if line.Type == domain.Debit {
			debitTotal = debitTotal.Add(line.Amount)
		} else {
			creditTotal = creditTotal.Add(line.Amount)
		}
	}

	if !debitTotal.Equal(creditTotal) {
		return Totals{}, apperrors.NewUnbalancedEntry(debitTotal.String(), creditTotal.String())
	}

	return Totals{DebitTotal: debitTotal, CreditTotal: creditTotal}, nil
}
