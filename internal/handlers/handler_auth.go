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
	"github.com/ulule/limiter/v3"
)

// authHandler handles login requests for account holders and administrators.
type authHandler struct {
	authService ports.AuthSvcFacade
}

func newAuthHandler(as ports.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public, rate-limited login routes.
func registerAuthRoutes(r *gin.Engine, authService ports.AuthSvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(authService)

	auth := r.Group("/auth", middleware.RateLimit(loginLimiter))
	{
		auth.POST("/login", h.login)
		auth.POST("/admin/login", h.adminLogin)
	}
}

// login godoc
// @Summary Log in as an account holder
// @Description Evaluates credentials against the lockout state machine and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 403 {object} map[string]string "Account blocked"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var credErr *apperrors.InvalidCredentialError
		switch {
		case errors.As(err, &credErr):
			body := gin.H{"error": credErr.Error(), "newlyBlocked": credErr.NewlyBlocked}
			if !credErr.NewlyBlocked {
				body["attemptsRemaining"] = credErr.AttemptsRemaining
			}
			c.JSON(http.StatusUnauthorized, body)
		case errors.Is(err, apperrors.ErrAccountBlocked):
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is blocked. Contact administrator."})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		default:
			logger.Error("Login failed in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}

// adminLogin godoc
// @Summary Log in as the administrator
// @Description Verifies the stored administrator credential and returns an admin session token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Administrator credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/admin/login [post]
func (h *authHandler) adminLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for admin login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	session, err := h.authService.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		} else {
			logger.Error("Admin login failed in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}
