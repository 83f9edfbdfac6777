package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sizzer/salon-booking/internal/handler"
	"github.com/sizzer/salon-booking/internal/middleware"
	"github.com/sizzer/salon-booking/internal/model"
)

// RegisterUser registers endpoints available to any authenticated account:
// profile, the customer side of booking, reviews and payments.
func RegisterUser(e *echo.Echo, jwtSecret string,
	uh *handler.UserHandler, ah *handler.AppointmentHandler,
	rh *handler.ReviewHandler, ph *handler.PaymentHandler) {

	g := e.Group("/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleOwner, model.RoleAdmin))

	g.GET("/users/profile", uh.GetProfile)
	g.PUT("/users/profile", uh.UpdateProfile)

	g.POST("/appointments", ah.Create)
	g.GET("/appointments", ah.ListMine)
	g.DELETE("/appointments/cancel/:id", ah.Cancel)

	g.POST("/reviews", rh.Create)
	g.DELETE("/reviews/:id", rh.Delete)

	g.POST("/payments", ph.Create)
	g.GET("/payments", ph.List)
	g.GET("/payments/:id", ph.Get)
}
