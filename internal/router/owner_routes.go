package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sizzer/salon-booking/internal/handler"
	"github.com/sizzer/salon-booking/internal/middleware"
	"github.com/sizzer/salon-booking/internal/model"
)

// RegisterOwner registers the salon management surface. Admins pass the
// role gate too so they can operate on any salon.
func RegisterOwner(e *echo.Echo, jwtSecret string,
	sh *handler.SalonHandler, svh *handler.ServiceHandler,
	sth *handler.StaffHandler, ah *handler.AppointmentHandler,
	dh *handler.OwnerDashboardHandler) {

	g := e.Group("/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleAdmin))

	g.GET("/salons/owner", sh.ListMine)
	g.POST("/salons", sh.Create)
	g.PUT("/salons/:id", sh.Update)
	g.DELETE("/salons/:id", sh.Delete)

	g.POST("/salons/:id/services", svh.Create)
	g.PUT("/services/:id", svh.Update)
	g.DELETE("/services/:id", svh.Delete)

	g.POST("/salons/:id/staff", sth.Create)
	g.PUT("/staff/:id", sth.Update)
	g.DELETE("/staff/:id", sth.Delete)

	g.GET("/appointments/owner", ah.ListForOwner)
	g.PUT("/appointments/:id/assign", ah.AssignStaff)
	g.PUT("/appointments/:id/complete", ah.Complete)
	g.DELETE("/appointments/:id", ah.Delete)

	g.GET("/owner/dashboard", dh.Get)
}
