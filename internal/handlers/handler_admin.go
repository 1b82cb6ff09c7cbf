package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/sarnathbank/banking_app/internal/dto"
	"github.com/sarnathbank/banking_app/internal/middleware"
)

// adminHandler handles the administrator-only capability surface.
type adminHandler struct {
	adminService ports.AdminSvcFacade
}

func newAdminHandler(as ports.AdminSvcFacade) *adminHandler {
	return &adminHandler{adminService: as}
}

// registerAdminRoutes registers routes gated to administrator sessions.
func registerAdminRoutes(rg *gin.RouterGroup, adminService ports.AdminSvcFacade) {
	h := newAdminHandler(adminService)

	admin := rg.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/accounts", h.listAccounts)
		admin.GET("/totals", h.totals)
		admin.PUT("/accounts/:accountNumber/active", h.setActive)
	}
}

// listAccounts godoc
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Success 200 {array} dto.AccountResponse
// @Failure 403 {object} map[string]string "Administrator access required"
// @Security BearerAuth
// @Router /admin/accounts [get]
func (h *adminHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.adminService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// totals godoc
// @Summary System totals
// @Description Returns the account count and the sum of all balances
// @Tags admin
// @Produce json
// @Success 200 {object} dto.TotalsResponse
// @Failure 403 {object} map[string]string "Administrator access required"
// @Security BearerAuth
// @Router /admin/totals [get]
func (h *adminHandler) totals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	totals, err := h.adminService.Totals(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute totals in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTotalsResponse(totals))
}

// setActive godoc
// @Summary Block or unblock an account
// @Description Setting active=true also resets the failed login counter
// @Tags admin
// @Accept json
// @Produce json
// @Param accountNumber path string true "Account number"
// @Param state body dto.SetActiveRequest true "Desired active state"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Administrator access required"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /admin/accounts/{accountNumber}/active [put]
func (h *adminHandler) setActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setActive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.adminService.SetActive(c.Request.Context(), accountNumber, *req.Active)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to set active state in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
