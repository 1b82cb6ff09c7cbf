package dto

import (
	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetActiveRequest defines the administrator block/unblock payload.
// Active is a pointer so "false" binds distinguishably from "absent".
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// TotalsResponse defines the administrator's system summary.
type TotalsResponse struct {
	AccountCount int             `json:"accountCount"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// ToTotalsResponse converts domain.Totals to its response DTO.
func ToTotalsResponse(t *domain.Totals) TotalsResponse {
	return TotalsResponse{
		AccountCount: t.AccountCount,
		TotalBalance: t.TotalBalance,
	}
}
