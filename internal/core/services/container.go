package services

import (
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/sarnathbank/banking_app/internal/platform/config"
)

// NewServiceContainer wires all services around one account repository.
func NewServiceContainer(repo ports.AccountRepository, cfg *config.Config) *ports.ServiceContainer {
	return &ports.ServiceContainer{
		Account:  NewAccountService(repo),
		Transfer: NewTransferService(repo),
		Auth:     NewAuthService(repo, cfg),
		Admin:    NewAdminService(repo),
	}
}
