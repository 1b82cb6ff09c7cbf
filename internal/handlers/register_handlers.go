package handlers

import (
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/sarnathbank/banking_app/internal/middleware"
	"github.com/sarnathbank/banking_app/internal/platform/config"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *ports.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Register public authentication routes (rate limited per IP)
	registerAuthRoutes(r, services.Auth, loginLimiter)

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *ports.ServiceContainer,
) {
	// Account creation happens before any session exists, so it lives
	// outside the authenticated group.
	public := r.Group("/api/v1")
	registerAccountCreationRoute(public, services.Account)

	// Apply AuthMiddleware to the rest of the v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	registerAccountRoutes(v1, services.Account, services.Transfer)
	registerAdminRoutes(v1, services.Admin)
}

// registerCustomValidators adds domain validation rules to gin's binding
// validator so malformed payloads are rejected at the transport edge.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// holdername: letters and spaces only, non-empty handled by "required".
	_ = v.RegisterValidation("holdername", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && r != ' ' {
				return false
			}
		}
		return true
	})
}
