package domain

import "github.com/shopspring/decimal"

// Totals is the administrator's system-wide summary: number of accounts and
// the sum of all balances.
type Totals struct {
	AccountCount int             `json:"accountCount"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}
