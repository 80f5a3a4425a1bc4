package mapping

import (
	"github.com/tallyledger/tally_ledger_app/internal/core/domain"
	"github.com/tallyledger/tally_ledger_app/internal/models"
)

// ToModelAccount converts a domain account to its DB row representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: string(d.AccountType),
		NormalSide:  string(d.NormalSide),
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainAccount converts a DB row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		NormalSide:  domain.NormalSide(m.NormalSide),
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		},
	}
}
