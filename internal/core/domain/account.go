package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which an account type conventionally increases.
type NormalSide string

const (
	DebitSide  NormalSide = "DEBIT"
	CreditSide NormalSide = "CREDIT"
)

// ExpectedNormalSide maps each account type to its conventional normal side.
// An account configured opposite this map is a contra account.
var ExpectedNormalSide = map[AccountType]NormalSide{
	Asset:     DebitSide,
	Expense:   DebitSide,
	Liability: CreditSide,
	Equity:    CreditSide,
	Revenue:   CreditSide,
}

// Account is one row of the chart of accounts. Accounts are never physically
// deleted, only deactivated; the code stays unique among active accounts.
type Account struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	NormalSide  NormalSide  `json:"normalSide"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// IsContra reports whether the configured normal side opposes the account
// type's convention.
func (a Account) IsContra() bool {
	return ExpectedNormalSide[a.AccountType] != a.NormalSide
}
