package dto

import (
	"time"

	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for one ledger entry.
type TransactionResponse struct {
	Timestamp       time.Time              `json:"timestamp"`
	Type            domain.TransactionType `json:"type"`
	Amount          decimal.Decimal        `json:"amount"`
	BalanceAfter    decimal.Decimal        `json:"balanceAfter"`
	Description     string                 `json:"description"`
	ReferenceNumber string                 `json:"referenceNumber,omitempty"`
}

// TransactionHistoryResponse wraps an account's ledger, most recent first.
type TransactionHistoryResponse struct {
	AccountNumber string                `json:"accountNumber"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// ToTransactionHistoryResponse converts ledger entries to response DTOs.
func ToTransactionHistoryResponse(accountNumber string, txns []domain.Transaction) TransactionHistoryResponse {
	out := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		out[i] = TransactionResponse{
			Timestamp:       txn.Timestamp,
			Type:            txn.Type,
			Amount:          txn.Amount,
			BalanceAfter:    txn.BalanceAfter,
			Description:     txn.Description,
			ReferenceNumber: txn.ReferenceNumber,
		}
	}
	return TransactionHistoryResponse{AccountNumber: accountNumber, Transactions: out}
}
