package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mkaufhold/headspa-booking/internal/availability"
	"github.com/mkaufhold/headspa-booking/internal/blocklist"
	"github.com/mkaufhold/headspa-booking/internal/repository"
)

// blockItem is the dashboard representation of a block.
type blockItem struct {
	ID     uint64  `json:"id"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Time   string  `json:"time"`
	Reason *string `json:"reason,omitempty"`
}

// ListBlocks handles GET /v1/admin/blocks.
func (h *AdminHandler) ListBlocks(c echo.Context) error {
	list, err := h.Blocks.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("admin-api: list blocks failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]blockItem, 0, len(list))
	for _, b := range list {
		items = append(items, blockItem{
			ID:     b.ID,
			Date:   availability.DateKey(b.Date),
			Time:   b.Time,
			Reason: b.Reason,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateBlock handles POST /v1/admin/blocks: block one (date, slot)
// pair.  An already blocked pair is reported with 409 and no write.
func (h *AdminHandler) CreateBlock(c echo.Context) error {
	var body struct {
		Date   string  `json:"date"`
		Time   string  `json:"time"`
		Reason *string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	day, err := parseDateParam(body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}
	if body.Time == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time is required"})
	}

	if err := h.Blocklist.BlockSlot(c.Request().Context(), day, body.Time, body.Reason); err != nil {
		if errors.Is(err, blocklist.ErrAlreadyBlocked) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot is already blocked"})
		}
		log.Printf("admin-api: block slot failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"date": availability.DateKey(day), "time": body.Time})
}

// BlockDay handles POST /v1/admin/blocks/day: block every remaining
// slot of one day.  A fully blocked day is reported with 409.
func (h *AdminHandler) BlockDay(c echo.Context) error {
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	day, err := parseDateParam(body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
	}

	inserted, err := h.Blocklist.BlockDay(c.Request().Context(), day)
	if err != nil {
		if errors.Is(err, blocklist.ErrAlreadyBlocked) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "day is already fully blocked"})
		}
		log.Printf("admin-api: block day failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"date": availability.DateKey(day), "inserted": inserted})
}

// BlockRange handles POST /v1/admin/blocks/range: block every slot of
// every day in an inclusive date range with one batch write.
func (h *AdminHandler) BlockRange(c echo.Context) error {
	var body struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, err := parseDateParam(body.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, want YYYY-MM-DD"})
	}
	end, err := parseDateParam(body.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date, want YYYY-MM-DD"})
	}

	days, inserted, err := h.Blocklist.BlockRange(c.Request().Context(), start, end)
	if err != nil {
		switch {
		case errors.Is(err, blocklist.ErrInvalidRange):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not be before start_date"})
		case errors.Is(err, blocklist.ErrAlreadyBlocked):
			return c.JSON(http.StatusConflict, echo.Map{"error": "range is already fully blocked"})
		}
		log.Printf("admin-api: block range failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"days": days, "inserted": inserted})
}

// DeleteBlock handles DELETE /v1/admin/blocks/:id.
func (h *AdminHandler) DeleteBlock(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
	}
	if err := h.Blocklist.Unblock(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "block not found"})
		}
		log.Printf("admin-api: delete block %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}
