package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType determines the minimum balance an account must retain after
// any debit, and the minimum qualifying initial deposit.
type AccountType string

const (
	Savings AccountType = "SAVINGS"
	Current AccountType = "CURRENT"
	Premium AccountType = "PREMIUM"
)

var minimumBalances = map[AccountType]decimal.Decimal{
	Savings: decimal.NewFromInt(500),
	Current: decimal.NewFromInt(1000),
	Premium: decimal.NewFromInt(5000),
}

// MinimumBalance returns the balance floor for the account type.
// Unknown types get the zero decimal; callers validate the type first.
func (t AccountType) MinimumBalance() decimal.Decimal {
	return minimumBalances[t]
}

// IsValid reports whether t is one of the supported account types.
func (t AccountType) IsValid() bool {
	_, ok := minimumBalances[t]
	return ok
}

// Account represents one account in the institution's table.
// This is the primary representation used by services.
type Account struct {
	AccountNumber  string          `json:"accountNumber"` // System-generated, unique, immutable
	HolderName     string          `json:"holderName"`
	Username       string          `json:"username"`       // Unique, immutable
	CredentialHash string          `json:"credentialHash"` // bcrypt hash; never the plaintext secret
	DateOfBirth    string          `json:"dateOfBirth"`    // Captured as given; never parsed
	Mobile         string          `json:"mobile"`         // Exactly 10 decimal digits
	Email          string          `json:"email"`
	Balance        decimal.Decimal `json:"balance"`
	AccountType    AccountType     `json:"accountType"`
	IsActive       bool            `json:"isActive"` // false means blocked; only an administrator unblocks
	FailedAttempts int             `json:"failedAttempts"`
	CreatedAt      time.Time       `json:"createdAt"`
	Transactions   []Transaction   `json:"transactions"` // Append-only, insertion order, unbounded
}

// Clone returns a deep copy, so callers can hand out or retain account state
// without exposing the store's live pointers.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Transactions = make([]Transaction, len(a.Transactions))
	copy(cp.Transactions, a.Transactions)
	return &cp
}

// AppendTransaction records an immutable ledger entry. BalanceAfter must
// already be set to the account's balance as observed after the mutation.
func (a *Account) AppendTransaction(txn Transaction) {
	a.Transactions = append(a.Transactions, txn)
}

// History returns the ledger in most-recent-first order for display.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.Transactions))
	for i, txn := range a.Transactions {
		out[len(a.Transactions)-1-i] = txn
	}
	return out
}
