package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/prajnahall/studyhall-admin/internal/handler"    // import the handlers that implement business logic
	"github.com/prajnahall/studyhall-admin/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/prajnahall/studyhall-admin/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	// Login exchanges credentials for an access/refresh pair.
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and issues a new access token.
	g.POST("/refresh", a.Refresh)
	// Logout invalidates the refresh token carried in the body, so it does
	// not need JWT authentication.
	g.POST("/logout", a.Logout)

	// Creating operator accounts is reserved for admins and therefore lives
	// on the protected surface.
	admin := e.Group("/v1/auth")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/register", a.Register)

	// Protected identity endpoint.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	auth.GET("/me", a.Me)
}

// RegisterDashboard wires every hall-management route under /v1.  All of
// them require a valid operator token; destructive seat operations are
// additionally restricted to admins.
func RegisterDashboard(
	e *echo.Echo,
	jwtSecret string,
	students *handler.StudentHandler,
	seats *handler.SeatHandler,
	bookings *handler.BookingHandler,
	maintenance *handler.MaintenanceHandler,
	dashboard *handler.DashboardHandler,
	notify *handler.NotifyHandler,
) {
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))

	// Students: register, profile upkeep, bookings and seat moves.
	v1.GET("/students", students.List)
	v1.POST("/students", students.Create)
	v1.GET("/students/export", students.Export)
	v1.GET("/students/:id", students.Get)
	v1.PUT("/students/:id", students.Update)
	v1.DELETE("/students/:id", students.Delete)
	v1.POST("/students/:id/book", students.Book)
	v1.POST("/students/:id/change-seat", students.ChangeSeat)
	v1.GET("/students/:id/seat-options", students.SeatOptions)
	v1.GET("/students/:id/bookings", students.History)

	// Seats: inventory, the availability board and reconciliation.
	v1.GET("/seats", seats.List)
	v1.POST("/seats", seats.Create)
	v1.GET("/seats/board", seats.Board)
	v1.GET("/seats/export", seats.Export)
	v1.PUT("/seats/:id", seats.Update)
	v1.POST("/seats/reconcile", seats.Reconcile)

	// Inventory surgery is admin-only.
	adm := e.Group("/v1")
	adm.Use(middleware.JWTAuth(jwtSecret))
	adm.Use(middleware.RequireRole(model.RoleAdmin))
	adm.DELETE("/seats/:id", seats.Delete)
	adm.POST("/seats/import", seats.Import)

	// Ledgers and the landing page summary.
	v1.GET("/bookings", bookings.List)
	v1.GET("/maintenance", maintenance.List)
	v1.GET("/maintenance/categories", maintenance.Categories)
	v1.POST("/maintenance", maintenance.Create)
	v1.DELETE("/maintenance/:id", maintenance.Delete)
	v1.GET("/dashboard", dashboard.Summary)

	// Notify stub: records the request, sends nothing.
	v1.POST("/notify", notify.Send)
}
