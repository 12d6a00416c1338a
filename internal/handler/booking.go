package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/repository"
)

// BookingHandler serves the read side of the payment ledger.
type BookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewBookingHandler(b *repository.BookingRepo) *BookingHandler {
	if b == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: b}
}

// List returns one month of ledger rows, newest first, with the running
// total. ?month= defaults to the current month; ?received_by= narrows to
// one operator's collections.
func (h *BookingHandler) List(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must look like 2025-01"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListByMonth(ctx, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}

	receivedBy := strings.TrimSpace(c.QueryParam("received_by"))
	out := make([]model.Booking, 0, len(rows))
	var total float64
	for _, b := range rows {
		if receivedBy != "" && !strings.EqualFold(b.ReceivedBy, receivedBy) {
			continue
		}
		out = append(out, b)
		total += b.Amount
	}
	return c.JSON(http.StatusOK, echo.Map{
		"month":        month,
		"bookings":     out,
		"total":        len(out),
		"total_amount": total,
	})
}
