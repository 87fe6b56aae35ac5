package router

import (
	"github.com/gin-gonic/gin"
	exportapp "github.com/obraerp/backend/internal/application/export"
	"github.com/obraerp/backend/internal/domain/identity"
	"github.com/obraerp/backend/internal/infrastructure/ratelimit"
	"github.com/obraerp/backend/internal/interfaces/http/handler"
	"github.com/obraerp/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Registrable is a handler that mounts its own routes
type Registrable interface {
	Register(rg *gin.RouterGroup)
}

// Handlers holds every HTTP handler of the API
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Organization *handler.OrganizationHandler
	System       *handler.SystemHandler

	Accounting    *handler.AccountingHandler
	Accounts      *handler.AccountHandler
	Journal       *handler.JournalHandler
	ExchangeRates *handler.ExchangeRateHandler

	Clients     Registrable
	Projects    Registrable
	Employees   Registrable
	Providers   Registrable
	Inspections Registrable
	Rubros      Registrable
	Budgets     *handler.BudgetHandler
	Invoices    *handler.InvoiceHandler
	Search      *handler.SearchHandler

	Import *handler.ImportHandler
	Export *handler.ExportHandler
}

// Guards holds what the session and rate limit middleware need
type Guards struct {
	Authenticator middleware.Authenticator
	Organizations middleware.OrganizationLookup
	LoginLimiter  ratelimit.Limiter
	SystemLimiter ratelimit.Limiter
	Recorder      middleware.RateLimitRecorder
	Logger        *zap.Logger
}

// Setup mounts the probes on engine and the API under /api/v1
func Setup(engine *gin.Engine, h Handlers, g Guards) {
	log := g.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine.GET("/health", h.Health.Health)
	engine.GET("/ready", h.Health.Ready)

	r := NewRouter(engine, WithAPIVersion("v1"))

	public := NewDomainGroup("public", "")
	public.GET("/ping", h.Health.Health)
	public.GET("/info", h.Health.Info)

	login := NewDomainGroup("auth", "/auth")
	login.POST("/login", limit(g.LoginLimiter, "login", g, log), h.Auth.Login)
	login.POST("/refresh", h.Auth.Refresh)

	session := NewDomainGroup("session", "").
		Use(middleware.SessionAuth(g.Authenticator, log), middleware.SpanAttributes(), middleware.TenantGuard())

	adminOnly := middleware.RequireRole(identity.RoleAdmin, identity.RoleSuperAdmin)
	accountingOn := middleware.RequireAccounting(g.Organizations, log)

	session.Group("auth", "/auth").
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me)

	session.Group("organization", "/organization").
		GET("", h.Organization.Get).
		PUT("", adminOnly, h.Organization.Update)

	session.Group("users", "/users").
		Use(adminOnly).
		GET("", h.Organization.ListUsers).
		POST("", h.Organization.CreateUser).
		DELETE("/:id", h.Organization.DeactivateUser)

	session.Group("clients", "/clients").
		GET("/export", h.Export.For(exportapp.EntityClients)).
		POST("/import", h.Import.Clients).
		Mount(h.Clients.Register)

	session.Group("projects", "/projects").
		GET("/export", h.Export.For(exportapp.EntityProjects)).
		Mount(h.Projects.Register).
		Mount(h.Budgets.Register)

	session.Group("employees", "/employees").Mount(h.Employees.Register)
	session.Group("providers", "/providers").Mount(h.Providers.Register)
	session.Group("invoices", "/invoices").Mount(h.Invoices.Register)

	session.Group("inspections", "/inspections").
		GET("/export", h.Export.For(exportapp.EntityInspections)).
		Mount(h.Inspections.Register)

	session.Group("rubros", "/rubros").
		POST("/import", h.Import.Rubros).
		Mount(h.Rubros.Register)

	session.GET("/search", h.Search.Search)

	session.Group("accounting", "/accounting").
		GET("/status", h.Accounting.Status).
		POST("/enable", adminOnly, h.Accounting.Enable).
		POST("/disable", adminOnly, h.Accounting.Disable).
		POST("/setup-chart", adminOnly, h.Accounting.SetupChart)

	session.Group("accounts", "/accounts").
		Use(accountingOn).
		GET("", h.Accounts.List).
		POST("", h.Accounts.Create).
		GET("/tree", h.Accounts.Tree).
		GET("/export", h.Export.For(exportapp.EntityAccounts)).
		POST("/import", h.Import.Accounts).
		GET("/:id", h.Accounts.Get).
		PUT("/:id", h.Accounts.Update).
		DELETE("/:id", h.Accounts.Delete)

	session.Group("journal-entries", "/journal-entries").
		Use(accountingOn).
		GET("", h.Journal.List).
		POST("", h.Journal.Create).
		GET("/export", h.Export.For(exportapp.EntityJournalEntries)).
		GET("/:id", h.Journal.Get).
		DELETE("/:id", h.Journal.Delete)

	session.Group("exchange-rates", "/exchange-rates").
		Use(accountingOn).
		GET("", h.ExchangeRates.List).
		POST("", h.ExchangeRates.Create).
		GET("/convert", h.ExchangeRates.Convert).
		GET("/:id", h.ExchangeRates.Get).
		DELETE("/:id", h.ExchangeRates.Delete)

	session.Group("system", "/system").
		Use(middleware.RequireRole(identity.RoleSuperAdmin), limit(g.SystemLimiter, "system", g, log)).
		GET("/organizations", h.System.ListOrganizations).
		POST("/organizations", h.System.CreateOrganization)

	r.Register(public).Register(login).Register(session)
	r.Setup()
}

// limit returns the rate limit middleware, or a pass-through when limiter is nil
func limit(limiter ratelimit.Limiter, group string, g Guards, log *zap.Logger) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(middleware.RateLimitConfig{
		Group:    group,
		Limiter:  limiter,
		Recorder: g.Recorder,
		Logger:   log,
	})
}
