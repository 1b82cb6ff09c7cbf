package dto

import (
	"time"

	"github.com/sarnathbank/banking_app/internal/core/domain"
)

// LoginRequest defines the credentials presented at login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the session returned on a successful login.
// Account is absent for administrator sessions.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Role      string           `json:"role"`
	Account   *AccountResponse `json:"account,omitempty"`
}

// ToLoginResponse converts a domain.Session to its response DTO.
func ToLoginResponse(session *domain.Session) LoginResponse {
	resp := LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Role:      string(session.Role),
	}
	if session.Account != nil {
		acc := ToAccountResponse(session.Account)
		resp.Account = &acc
	}
	return resp
}
