package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mkaufhold/headspa-booking/internal/handler"
	"github.com/mkaufhold/headspa-booking/internal/middleware"
)

// RegisterAdmin registers dashboard endpoints under /v1/admin.  All routes
// require a valid JWT signed with jwtSecret and the ADMIN role.  Tokens
// are issued by the studio's identity provider, not by this service.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// Reservation management: full customer detail, optional per-day filter.
	g.GET("/reservations", h.ListReservations)
	g.DELETE("/reservations/:id", h.DeleteReservation)

	// Block management: single slot, whole day, inclusive date range.
	g.GET("/blocks", h.ListBlocks)
	g.POST("/blocks", h.CreateBlock)
	g.POST("/blocks/day", h.BlockDay)
	g.POST("/blocks/range", h.BlockRange)
	g.DELETE("/blocks/:id", h.DeleteBlock)
}
