package models

import "time"

// Account mirrors one row of the chart_of_accounts table.
type Account struct {
	AccountID   string
	Code        string
	Name        string
	AccountType string
	NormalSide  string
	IsActive    bool
	CreatedAt   time.Time
	CreatedBy   string
}
