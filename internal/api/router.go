package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/starterkit/webapi/docs"
	"github.com/starterkit/webapi/internal/api/handler"
	"github.com/starterkit/webapi/internal/api/middleware"
	"github.com/starterkit/webapi/internal/api/web"
	"github.com/starterkit/webapi/internal/core/domain"
	"github.com/starterkit/webapi/internal/core/ports"
	"github.com/starterkit/webapi/internal/pkg/i18n"
)

// Dependencies carries everything the router needs. Mongo and Redis are nil
// when the in-memory backends are selected; the readiness probe skips them.
type Dependencies struct {
	Users      ports.UserService
	Items      ports.ItemService
	ClientApps ports.ClientAppService
	Tokens     ports.TokenService
	Sessions   ports.SessionService
	Translator *i18n.Translator
	Mongo      *mongo.Database
	Redis      *redis.Client
	Env        string
	Log        zerolog.Logger
}

// capabilities is the declarative permission table for session-protected
// routes. Reading it top to bottom gives the full RBAC surface of the
// dashboard; routes not listed require authentication only.
var capabilities = middleware.Capabilities{
	"GET /admin":                   {domain.RoleAdmin, domain.RoleModerator},
	"GET /admin/users":             {domain.RoleAdmin, domain.RoleModerator},
	"POST /admin/users":            {domain.RoleAdmin},
	"POST /admin/users/:id":        {domain.RoleAdmin},
	"POST /admin/users/:id/delete": {domain.RoleAdmin},
	"GET /admin/items":             {domain.RoleAdmin, domain.RoleModerator},
	"GET /admin/client-apps":       {domain.RoleAdmin},
	"POST /admin/client-apps":      {domain.RoleAdmin},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Translator, deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("webapi"))
	e.Use(middleware.Locale(deps.Translator))
	e.Use(middleware.Session(deps.Sessions))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Translator)
	tokenHandler := handler.NewTokenHandler(deps.Tokens)
	userHandler := handler.NewUserHandler(deps.Users)
	itemHandler := handler.NewItemHandler(deps.Items)
	appHandler := handler.NewClientAppHandler(deps.ClientApps)
	i18nHandler := handler.NewI18nHandler(deps.Translator)
	adminHandler := handler.NewAdminHandler(deps.Users, deps.Items, deps.ClientApps, deps.Translator)
	portalHandler := handler.NewPortalHandler(deps.Users, deps.Items, deps.Translator)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	infoHandler := handler.NewInfoHandler(deps.Env, deps.Translator)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/info", infoHandler.Info)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoSwagger.WrapHandler)

	// --- Public HTML surfaces ---
	e.GET("/", portalHandler.Landing)
	e.GET("/home", portalHandler.Home)
	e.GET("/auth/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/logout", authHandler.Logout)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, middleware.RequireUser(false))

	// --- User portal (session required) ---
	portal := e.Group("", middleware.RequireUser(true))
	portal.GET("/user-portal", portalHandler.PortalRedirect)
	portal.GET("/user/search", portalHandler.Search)

	// --- Admin dashboard (session + capability table) ---
	admin := e.Group("/admin", middleware.RequireUser(true), middleware.RBAC(capabilities))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.POST("/users", adminHandler.CreateUser)
	admin.POST("/users/:id", adminHandler.UpdateUser)
	admin.POST("/users/:id/delete", adminHandler.DeleteUser)
	admin.GET("/items", adminHandler.Items)
	admin.GET("/client-apps", adminHandler.ClientApps)
	admin.POST("/client-apps", adminHandler.CreateClientApp)

	// --- JSON API ---
	v1 := e.Group("/api/v1")

	v1.POST("/auth/token", tokenHandler.Issue)

	v1.GET("/i18n/locales", i18nHandler.Locales)
	v1.GET("/i18n/translations/:locale", i18nHandler.Translations)
	v1.GET("/i18n/translate/:key", i18nHandler.Translate)

	// Item reads are a public catalog; everything else needs a bearer token.
	v1.GET("/items", itemHandler.List)
	v1.GET("/items/:id", itemHandler.Get)

	protected := v1.Group("", middleware.TokenAuth(deps.Tokens))

	protected.GET("/users", userHandler.List)
	protected.POST("/users", userHandler.Create)
	protected.GET("/users/:id", userHandler.Get)
	protected.PUT("/users/:id", userHandler.Update)
	protected.DELETE("/users/:id", userHandler.Delete)

	protected.POST("/items", itemHandler.Create)
	protected.PUT("/items/:id", itemHandler.Update)
	protected.PATCH("/items/:id/status", itemHandler.UpdateStatus)
	protected.DELETE("/items/:id", itemHandler.Delete)

	protected.GET("/client-apps", appHandler.List)
	protected.POST("/client-apps", appHandler.Create)
	protected.GET("/client-apps/:id", appHandler.Get)
	protected.PUT("/client-apps/:id", appHandler.Update)
	protected.POST("/client-apps/:id/regenerate-secret", appHandler.RegenerateSecret)
	protected.DELETE("/client-apps/:id", appHandler.Delete)

	return e, nil
}
