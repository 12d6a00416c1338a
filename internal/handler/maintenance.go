package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/repository"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// MaintenanceHandler serves the monthly expense ledger.
type MaintenanceHandler struct {
	Records *repository.MaintenanceRepo
}

func NewMaintenanceHandler(r *repository.MaintenanceRepo) *MaintenanceHandler {
	if r == nil {
		panic("nil repository passed to NewMaintenanceHandler")
	}
	return &MaintenanceHandler{Records: r}
}

type maintenanceCreateReq struct {
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Comment  string  `json:"comment"`
}

// Categories returns the fixed expense categories the dashboard offers.
func (h *MaintenanceHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"categories": model.MaintenanceCategories})
}

// List returns one month of expenses with the month total.
func (h *MaintenanceHandler) List(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must look like 2025-01"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	rows, err := h.Records.ListByMonth(ctx, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list maintenance failed"})
	}
	var total float64
	for _, m := range rows {
		total += m.Amount
	}
	return c.JSON(http.StatusOK, echo.Map{
		"month":        month,
		"records":      rows,
		"total":        len(rows),
		"total_amount": total,
	})
}

func (h *MaintenanceHandler) Create(c echo.Context) error {
	var req maintenanceCreateReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if !model.ValidMaintenanceCategory(req.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	op := currentOperator(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Records.Append(ctx, model.MaintenanceRecord{
		Category:  req.Category,
		Amount:    req.Amount,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedBy: op.Name,
		HallCode:  op.HallCode,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create record failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (h *MaintenanceHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Records.Remove(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete record failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
