package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/auth"
	"github.com/amfdata/contact-exchange/internal/config"
	"github.com/amfdata/contact-exchange/internal/handler"
	middlewarepkg "github.com/amfdata/contact-exchange/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserAdminHandler
	Contacts  *handler.ContactsHandler
	Import    *handler.ImportHandler
	Sync      *handler.SyncHandler
	Companies *handler.CompaniesHandler
	Activity  *handler.ActivityHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin", "superadmin"))
	admin.GET("/contacts", handlers.Contacts.List)
	admin.POST("/contacts", handlers.Contacts.Create)
	admin.GET("/contacts/:email", handlers.Contacts.Get)
	admin.POST("/contacts/import", handlers.Import.Import, middlewarepkg.ImportRateLimiter(cfg.RateLimitImport))
	if handlers.Sync != nil {
		admin.POST("/contacts/sync", handlers.Sync.Sync)
	}
	admin.GET("/companies", handlers.Companies.List)
	admin.GET("/activities", handlers.Activity.List)

	super := secured.Group("/admin/users", middlewarepkg.RequireRole("superadmin"))
	super.GET("", handlers.Users.List)
	super.POST("", handlers.Users.Create)
	super.PATCH("/:id", handlers.Users.Update)
	super.DELETE("/:id", handlers.Users.Delete)
}
