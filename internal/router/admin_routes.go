package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sizzer/salon-booking/internal/handler"
	"github.com/sizzer/salon-booking/internal/middleware"
	"github.com/sizzer/salon-booking/internal/model"
)

// RegisterAdmin registers the platform administration surface.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	adh *handler.AdminHandler, ph *handler.PaymentHandler) {

	g := e.Group("/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin))

	g.GET("/admin/users", adh.ListUsers)
	g.GET("/admin/salons", adh.ListSalons)
	g.GET("/admin/appointments", adh.ListAppointments)
	g.GET("/admin/stats", adh.GetStats)

	g.PUT("/payments/:id/status", ph.UpdateStatus)
	g.DELETE("/payments/:id", ph.Delete)
}
