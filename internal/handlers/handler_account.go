package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/sarnathbank/banking_app/internal/dto"
	"github.com/sarnathbank/banking_app/internal/middleware"
)

// accountHandler handles HTTP requests for the authenticated account holder.
type accountHandler struct {
	accountService  ports.AccountSvcFacade
	transferService ports.TransferSvcFacade
}

func newAccountHandler(as ports.AccountSvcFacade, ts ports.TransferSvcFacade) *accountHandler {
	return &accountHandler{accountService: as, transferService: ts}
}

// registerAccountCreationRoute registers the unauthenticated account opening route.
func registerAccountCreationRoute(rg *gin.RouterGroup, accountService ports.AccountSvcFacade) {
	h := newAccountHandler(accountService, nil)
	rg.POST("/accounts", h.createAccount)
}

// registerAccountRoutes registers the session-bound account operations.
func registerAccountRoutes(rg *gin.RouterGroup, accountService ports.AccountSvcFacade, transferService ports.TransferSvcFacade) {
	h := newAccountHandler(accountService, transferService)

	me := rg.Group("/accounts/me")
	{
		me.GET("", h.getAccount)
		me.GET("/transactions", h.listTransactions)
		me.POST("/deposits", h.deposit)
		me.POST("/withdrawals", h.withdraw)
		me.POST("/transfers", h.transfer)
		me.PUT("/password", h.changePassword)
	}
}

// sessionAccountNumber resolves the caller's account number from the session
// context. Administrator sessions are not bound to an account.
func sessionAccountNumber(c *gin.Context) (string, bool) {
	role, _ := middleware.GetSessionRole(c.Request.Context())
	if role != string(domain.RoleUser) {
		return "", false
	}
	return middleware.GetSessionSubject(c.Request.Context())
}

// createAccount godoc
// @Summary Open a new account
// @Description Validates the profile, records the initial deposit and returns the new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Username already taken"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		default:
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created successfully", slog.String("account_number", newAccount.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

// getAccount godoc
// @Summary View the caller's account details
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := sessionAccountNumber(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions godoc
// @Summary List the caller's transaction history
// @Description Returns the account ledger, most recent first
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.TransactionHistoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /accounts/me/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := sessionAccountNumber(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.accountService.ListTransactions(c.Request.Context(), accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list transactions in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionHistoryResponse(accountNumber, txns))
}

// deposit godoc
// @Summary Deposit money into the caller's account
// @Tags accounts
// @Accept json
// @Produce json
// @Param amount body dto.AmountRequest true "Deposit amount"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Account blocked"
// @Security BearerAuth
// @Router /accounts/me/deposits [post]
func (h *accountHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := sessionAccountNumber(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.Deposit(c.Request.Context(), accountNumber, req.Amount)
	if err != nil {
		h.respondMutationError(c, logger, err, "deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// withdraw godoc
// @Summary Withdraw money from the caller's account
// @Description Fails if the withdrawal would breach the account type's minimum balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param amount body dto.AmountRequest true "Withdrawal amount"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Account blocked"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /accounts/me/withdrawals [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := sessionAccountNumber(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.Withdraw(c.Request.Context(), accountNumber, req.Amount)
	if err != nil {
		h.respondMutationError(c, logger, err, "withdrawal")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// transfer godoc
// @Summary Transfer money to another account
// @Description Applies both legs atomically; rejected transfers mutate neither account
// @Tags accounts
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid amount or same-account transfer"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Account blocked"
// @Failure 404 {object} map[string]string "Source or destination account not found"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /accounts/me/transfers [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := sessionAccountNumber(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.transferService.Transfer(c.Request.Context(), accountNumber, req.DestinationAccountNumber, req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrSameAccountTransfer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot transfer to the same account"})
			return
		}
		if errors.Is(err, apperrors.ErrDestinationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination account not found"})
			return
		}
		// A plain ErrNotFound names the caller's own account and falls
		// through to the generic mapping.
		h.respondMutationError(c, logger, err, "transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// changePassword godoc
// @Summary Change the caller's password
// @Tags accounts
// @Accept json
// @Produce json
// @Param passwords body dto.ChangeCredentialRequest true "Old and new passwords"
// @Success 204 "Password changed"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Current password incorrect"
// @Security BearerAuth
// @Router /accounts/me/password [put]
func (h *accountHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber, ok := sessionAccountNumber(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ChangeCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for changePassword", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.accountService.ChangeCredential(c.Request.Context(), accountNumber, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password incorrect"})
		default:
			h.respondMutationError(c, logger, err, "password change")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// respondMutationError maps the error kinds shared by every balance
// mutation to HTTP statuses.
func (h *accountHandler) respondMutationError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAccountBlocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is blocked. Contact administrator."})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error("Persistence failure, mutation rolled back", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation could not be saved and was not applied"})
	default:
		logger.Error("Unexpected service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply " + action})
	}
}
