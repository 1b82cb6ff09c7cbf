package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of balance mutation a ledger entry records.
type TransactionType string

const (
	Deposit     TransactionType = "DEPOSIT"
	Withdraw    TransactionType = "WITHDRAW"
	TransferIn  TransactionType = "TRANSFER_IN"
	TransferOut TransactionType = "TRANSFER_OUT"
)

// Transaction is one immutable entry in an account's ledger. The ledger is
// an unbounded, append-only slice held on the account; entries are never
// mutated or removed once appended.
type Transaction struct {
	Timestamp       time.Time       `json:"timestamp"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"` // Always positive
	BalanceAfter    decimal.Decimal `json:"balanceAfter"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"` // Counterparty account number on transfer legs
}
