package dto

import (
	"time"

	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// Binding tags reject malformed requests at the transport edge; the account
// service re-validates authoritatively so the rules hold for every caller.
type CreateAccountRequest struct {
	HolderName      string             `json:"holderName" binding:"required,holdername"`
	Username        string             `json:"username" binding:"required,min=8,max=15"`
	Email           string             `json:"email" binding:"required"`
	Mobile          string             `json:"mobile" binding:"required,len=10,numeric"`
	DateOfBirth     string             `json:"dateOfBirth" binding:"required"`
	Password        string             `json:"password" binding:"required"`
	ConfirmPassword string             `json:"confirmPassword" binding:"required,eqfield=Password"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=SAVINGS CURRENT PREMIUM"`
	InitialDeposit  decimal.Decimal    `json:"initialDeposit" binding:"required"`
}

// AccountResponse defines the data returned for an account.
// The credential hash is deliberately absent.
type AccountResponse struct {
	AccountNumber    string             `json:"accountNumber"`
	HolderName       string             `json:"holderName"`
	Username         string             `json:"username"`
	Email            string             `json:"email"`
	Mobile           string             `json:"mobile"`
	DateOfBirth      string             `json:"dateOfBirth"`
	AccountType      domain.AccountType `json:"accountType"`
	Balance          decimal.Decimal    `json:"balance"`
	IsActive         bool               `json:"isActive"`
	CreatedAt        time.Time          `json:"createdAt"`
	TransactionCount int                `json:"transactionCount"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber:    acc.AccountNumber,
		HolderName:       acc.HolderName,
		Username:         acc.Username,
		Email:            acc.Email,
		Mobile:           acc.Mobile,
		DateOfBirth:      acc.DateOfBirth,
		AccountType:      acc.AccountType,
		Balance:          acc.Balance,
		IsActive:         acc.IsActive,
		CreatedAt:        acc.CreatedAt,
		TransactionCount: len(acc.Transactions),
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AmountRequest carries the amount for deposits and withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransferRequest defines the data needed for a cross-account transfer.
type TransferRequest struct {
	DestinationAccountNumber string          `json:"destinationAccountNumber" binding:"required"`
	Amount                   decimal.Decimal `json:"amount" binding:"required"`
}

// ChangeCredentialRequest defines the data needed to change an account password.
type ChangeCredentialRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}
