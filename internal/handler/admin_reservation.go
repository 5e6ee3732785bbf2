package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkaufhold/headspa-booking/internal/availability"
	"github.com/mkaufhold/headspa-booking/internal/blocklist"
	"github.com/mkaufhold/headspa-booking/internal/event"
	"github.com/mkaufhold/headspa-booking/internal/model"
	"github.com/mkaufhold/headspa-booking/internal/repository"
)

// AdminHandler serves the dashboard endpoints.  All methods assume JWT
// authentication and the ADMIN role have been enforced by middleware.
// Unlike the public API, responses here include full customer fields.
type AdminHandler struct {
	Reservations *repository.ReservationRepo // full reservation access
	Blocks       *repository.BlockRepo       // block listing
	Blocklist    *blocklist.Service          // block creation and removal
	Bus          *event.Bus                  // availability-changed notifications
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(res *repository.ReservationRepo, blocks *repository.BlockRepo, bl *blocklist.Service, bus *event.Bus) *AdminHandler {
	if res == nil || blocks == nil || bl == nil || bus == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Reservations: res, Blocks: blocks, Blocklist: bl, Bus: bus}
}

// reservationItem is the dashboard representation of a reservation.
type reservationItem struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"`
}

// ListReservations handles GET /v1/admin/reservations.  An optional
// ?date=YYYY-MM-DD query narrows the list to one calendar day.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		list []model.Reservation
		err  error
	)
	if dateStr := c.QueryParam("date"); dateStr != "" {
		day, perr := parseDateParam(dateStr)
		if perr != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
		list, err = h.Reservations.ListByDate(ctx, day)
	} else {
		list, err = h.Reservations.ListAll(ctx)
	}
	if err != nil {
		log.Printf("admin-api: list reservations failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	items := make([]reservationItem, 0, len(list))
	for _, r := range list {
		items = append(items, reservationItem{
			ID:      r.ID,
			Name:    r.Name,
			Email:   r.Email,
			Phone:   r.Phone,
			Service: r.Service,
			Date:    availability.DateKey(r.Date),
			Time:    r.Time,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteReservation handles DELETE /v1/admin/reservations/:id.  Freeing
// the slot changes availability, so a BlocksChanged notification is
// broadcast for dependent views and caches.
func (h *AdminHandler) DeleteReservation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		log.Printf("admin-api: delete reservation %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	h.Bus.Publish(event.BlocksChanged{})
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}
