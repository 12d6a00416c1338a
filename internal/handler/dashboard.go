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

// DashboardHandler aggregates one month of activity into the numbers the
// landing page shows.
type DashboardHandler struct {
	Students *repository.StudentRepo
	Bookings *repository.BookingRepo
	Records  *repository.MaintenanceRepo
}

func NewDashboardHandler(students *repository.StudentRepo, bookings *repository.BookingRepo, records *repository.MaintenanceRepo) *DashboardHandler {
	if students == nil || bookings == nil || records == nil {
		panic("nil dependency passed to NewDashboardHandler")
	}
	return &DashboardHandler{Students: students, Bookings: bookings, Records: records}
}

// Summary computes the month's collection split by payment type, the
// number of students who joined, and the maintenance spend.
func (h *DashboardHandler) Summary(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must look like 2025-01"})
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByMonth(ctx, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	var upi, cash float64
	for _, b := range bookings {
		switch b.PaymentType {
		case model.PaymentUPI:
			upi += b.Amount
		case model.PaymentCash:
			cash += b.Amount
		}
	}

	records, err := h.Records.ListByMonth(ctx, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list maintenance failed"})
	}
	var spend float64
	for _, m := range records {
		spend += m.Amount
	}

	students, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list students failed"})
	}
	joined := 0
	for _, s := range students {
		if !s.JoinDate.Before(monthStart) && s.JoinDate.Before(monthEnd) {
			joined++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"month":             month,
		"upi_total":         upi,
		"cash_total":        cash,
		"collection_total":  upi + cash,
		"students_joined":   joined,
		"maintenance_total": spend,
	})
}
