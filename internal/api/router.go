package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/teamroster/employee-directory/docs"
	"github.com/teamroster/employee-directory/internal/api/handler"
	"github.com/teamroster/employee-directory/internal/api/middleware"
	"github.com/teamroster/employee-directory/internal/core/ports"
)

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Gate       ports.SessionGate
	Tokens     ports.TokenIssuer
	Directory  ports.DirectoryService
	Bookmarks  ports.BookmarkService
	Promotions ports.PromotionService
	Queue      handler.Enqueuer
	// Pingers are checked by the readiness endpoint, keyed by name.
	Pingers map[string]handler.Pinger

	JWTSecret string
}

// @title                      Employee Directory API
// @version                    1.0
// @description                Paged employee roster with search, department filters, bookmarks and promotions.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit("64K"))
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Gate, deps.Tokens)
	directoryHandler := handler.NewDirectoryHandler(deps.Directory, deps.Bookmarks)
	bookmarkHandler := handler.NewBookmarkHandler(deps.Bookmarks, deps.Directory)
	promotionHandler := handler.NewPromotionHandler(deps.Promotions, deps.Queue)
	healthHandler := handler.NewHealthHandler(deps.Gate, deps.Pingers)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Session-gated routes ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret), middleware.RequireSession(deps.Gate))

	v1.GET("/directory", directoryHandler.Get)
	v1.POST("/directory/next", directoryHandler.Next)
	v1.POST("/directory/reload", directoryHandler.Reload)
	v1.PUT("/directory/search", directoryHandler.Search)
	v1.PUT("/directory/departments", directoryHandler.Departments)
	v1.POST("/directory/employees", directoryHandler.Create)

	v1.GET("/employees/:id", directoryHandler.Detail)
	v1.POST("/employees/:id/promote", promotionHandler.Promote)
	v1.GET("/promotions", promotionHandler.List)

	v1.GET("/bookmarks", bookmarkHandler.List)
	v1.POST("/bookmarks", bookmarkHandler.Add)
	v1.DELETE("/bookmarks/:id", bookmarkHandler.Remove)

	// --- Health checks, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
