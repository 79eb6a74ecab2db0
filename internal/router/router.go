package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/handler"
	"taskboard/internal/storage"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
	profileHandler *handler.ProfileHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded profile images are served straight from the public directory.
	e.Static(storage.PublicPrefix, cfg.UploadDir)

	registerPages(e, jwtService)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes read the session token from the cookie. Verification
	// failures, including a missing cookie, expiry and tampering, all mean
	// "no session" and answer 401.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "unauthorized",
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	// Project routes
	secured.GET("/projects", projectHandler.List)
	secured.POST("/projects", projectHandler.Create)
	secured.PUT("/projects/:id", projectHandler.Rename)
	secured.DELETE("/projects/:id", projectHandler.Delete)
	secured.GET("/projects/:id/tasks", projectHandler.Tasks)
	secured.GET("/projects/:id/lists", projectHandler.Lists)

	// Task routes
	secured.POST("/tasks", taskHandler.Create)
	secured.GET("/tasks/:id", taskHandler.Details)
	secured.PUT("/tasks/:id", taskHandler.Update)
	secured.PUT("/tasks/:id/status", taskHandler.UpdateStatus)
	secured.DELETE("/tasks/:id", taskHandler.Delete)
	secured.POST("/tasks/:id/comments", taskHandler.AddComment)
	secured.GET("/tasks/:id/comments", taskHandler.Comments)

	// Profile routes
	secured.GET("/profile", profileHandler.Get)
	secured.PUT("/profile", profileHandler.Update)
	secured.POST("/profile/image", profileHandler.UploadImage)
	secured.DELETE("/profile/image", profileHandler.DeleteImage)

	// Admin routes
	secured.GET("/admin/stats", adminHandler.Stats)
	secured.GET("/admin/users", adminHandler.ListUsers)
	secured.DELETE("/admin/users/:id", adminHandler.DeleteUser)
}

// registerPages wires the server-rendered page shells. The dashboard and
// admin prefixes redirect anonymous visitors to login; auth pages and the
// landing page redirect signed-in visitors to the dashboard.
func registerPages(e *echo.Echo, jwtService *auth.JWTService) {
	requireSession := auth.RequireSessionPage(jwtService)
	redirectAuthed := auth.RedirectAuthenticated(jwtService)

	public := e.Group("", redirectAuthed)
	public.GET("/", pageShell("Taskboard"))
	public.GET("/auth/login", pageShell("Sign in"))
	public.GET("/auth/register", pageShell("Create account"))

	dashboard := e.Group("/dashboard", requireSession)
	dashboard.GET("", pageShell("Dashboard"))
	dashboard.GET("/profile", pageShell("Profile"))
	dashboard.GET("/project/:id", pageShell("Project board"))

	admin := e.Group("/admin", requireSession)
	admin.GET("", pageShell("Admin"))
	admin.GET("/users", pageShell("Users"))
}

// pageShell serves a minimal HTML shell; the pages are consumers of the
// /api actions only.
func pageShell(title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.HTML(http.StatusOK,
			`<!doctype html><html><head><title>`+title+`</title></head>`+
				`<body><div id="app" data-page="`+title+`"></div></body></html>`)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
