// Package handler exposes HTTP handlers for both the anonymous booking
// widget and the administrator dashboard.  This file defines the public
// booking API.  Availability answers for anonymous clients are computed
// from the PII-free public_reservations projection; customer data never
// appears in these responses.
package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkaufhold/headspa-booking/internal/availability"
	"github.com/mkaufhold/headspa-booking/internal/booking"
)

// BookingHandler serves the public availability and booking endpoints.
type BookingHandler struct {
	Availability *availability.Service // availability, eligibility and search
	Booking      *booking.Service      // the booking commit protocol
}

// NewBookingHandler constructs a BookingHandler.  Both services must be
// non-nil.
func NewBookingHandler(avail *availability.Service, book *booking.Service) *BookingHandler {
	if avail == nil || book == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Availability: avail, Booking: book}
}

// GetAvailability handles GET /v1/availability?date=YYYY-MM-DD.  It
// returns the configured slot grid, the unavailable labels for the day
// and whether the day is bookable at all.  A failed store read yields
// 500, never an empty (i.e. fully free) answer.
func (h *BookingHandler) GetAvailability(c echo.Context) error {
	day, err := parseDateParam(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or missing date, want YYYY-MM-DD"})
	}
	ctx := c.Request().Context()

	unavailable, err := h.Availability.Unavailable(ctx, day)
	if err != nil {
		log.Printf("booking-api: availability query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load availability, please try again"})
	}
	eligible, err := h.Availability.Eligible(ctx, day)
	if err != nil {
		log.Printf("booking-api: eligibility check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load availability, please try again"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":        availability.DateKey(day),
		"eligible":    eligible,
		"slots":       h.Availability.Slots(),
		"unavailable": unavailable,
	})
}

// GetNextAvailable handles GET /v1/availability/next.  It returns the
// earliest free (date, slot) pair, or 404 when the whole search window
// is booked out - a legitimate outcome, reported without error detail.
func (h *BookingHandler) GetNextAvailable(c echo.Context) error {
	day, slot, err := h.Availability.NextAvailable(c.Request().Context())
	if err != nil {
		if errors.Is(err, availability.ErrNoAvailability) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no free appointment found in the search window"})
		}
		log.Printf("booking-api: next-available search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not search for appointments, please try again"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date": availability.DateKey(day),
		"time": slot,
	})
}

// bookingRequest is the JSON body of POST /v1/bookings.
type bookingRequest struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"`
	Service string `json:"service"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// CreateBooking handles POST /v1/bookings.  Validation problems and
// slot conflicts are recovered client-side (400/409 with a prompt);
// store failures return a generic retry message while the widget keeps
// the user's input for another attempt.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	var day time.Time
	if body.Date != "" {
		var err error
		day, err = parseDateParam(body.Date)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
	}

	res, err := h.Booking.Book(c.Request().Context(), booking.Request{
		Date:    day,
		Time:    body.Time,
		Service: body.Service,
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
	})
	switch {
	case err == nil:
		// fall through to the success response
	case errors.Is(err, booking.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please fill in all fields"})
	case errors.Is(err, booking.ErrUnknownSlot):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time slot"})
	case errors.Is(err, booking.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "this time slot is no longer available, please choose another time"})
	default:
		log.Printf("booking-api: booking failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save your booking, please try again"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      res.ID,
		"date":    availability.DateKey(res.Date),
		"time":    res.Time,
		"service": res.Service,
		"name":    res.Name,
	})
}

// parseDateParam parses a YYYY-MM-DD date in UTC.
func parseDateParam(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
