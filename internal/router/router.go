package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/mkaufhold/headspa-booking/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the anonymous booking endpoints under /v1.
// These routes serve the customer-facing widget and apply no JWT or role
// middleware.  The booking commit endpoint is guarded by the provided
// rate limiter so an abusive client cannot flood the reservation table.
func RegisterPublic(e *echo.Echo, h *handler.BookingHandler, limiter echo.MiddlewareFunc) {
	// Availability of a single day: slot grid, unavailable labels and
	// the day's eligibility verdict in one response.
	e.GET("/v1/availability", h.GetAvailability)
	// Earliest free (date, slot) pair within the search window.
	e.GET("/v1/availability/next", h.GetNextAvailable)
	// Commit a booking.  Rate limited per client IP and route.
	e.POST("/v1/bookings", h.CreateBooking, limiter)
}
