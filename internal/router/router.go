// Package router wires handlers to routes. Public browse endpoints carry
// the response cache; everything under /api with state-changing semantics
// sits behind JWT and role middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sizzer/salon-booking/internal/handler"
	"github.com/sizzer/salon-booking/internal/metrics"
)

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.Health)
	e.GET("/metrics", metrics.Handler())
}

// RegisterAuth registers the token endpoints under /api/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterPublic registers the guest-visible catalog. cacheMW wraps the
// pure-read endpoints; the service listing is left uncached because its
// body varies with the optional caller identity.
func RegisterPublic(e *echo.Echo, cacheMW echo.MiddlewareFunc,
	sh *handler.SalonHandler, svh *handler.ServiceHandler,
	sth *handler.StaffHandler, rh *handler.ReviewHandler) {

	e.GET("/api/salons", sh.ListPublic, cacheMW)
	e.GET("/api/salons/:id", sh.Get, cacheMW)
	e.GET("/api/salons/:id/services", svh.ListBySalon)
	e.GET("/api/salons/:id/staff", sth.ListBySalon, cacheMW)
	e.GET("/api/reviews/salon/:id", rh.ListBySalon, cacheMW)
}
