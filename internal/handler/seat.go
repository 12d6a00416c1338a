package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prajnahall/studyhall-admin/internal/booking"
	"github.com/prajnahall/studyhall-admin/internal/export"
	"github.com/prajnahall/studyhall-admin/internal/importer"
	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/repository"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// SeatHandler serves the seat inventory: CRUD, the availability board,
// status reconciliation, bulk import and export.
type SeatHandler struct {
	Seats    *repository.SeatRepo
	Students *repository.StudentRepo
	Flow     *booking.Workflow
}

func NewSeatHandler(seats *repository.SeatRepo, students *repository.StudentRepo, flow *booking.Workflow) *SeatHandler {
	if seats == nil || students == nil || flow == nil {
		panic("nil dependency passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats, Students: students, Flow: flow}
}

type seatCreateReq struct {
	SeatNo   string `json:"seat_no" validate:"required"`
	SeatType string `json:"seat_type" validate:"required,oneof=AC Non-AC"`
}

type seatUpdateReq struct {
	SeatType string `json:"seat_type" validate:"omitempty,oneof=AC Non-AC"`
	Status   string `json:"status" validate:"omitempty,oneof=Available Occupied"`
}

// List returns seats with optional ?status= and ?type= filters, sorted by
// zone letter then ordinal so "A 2" comes before "A 10".
func (h *SeatHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	seats, err := h.Seats.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seats failed"})
	}

	status := strings.TrimSpace(c.QueryParam("status"))
	seatType := strings.TrimSpace(c.QueryParam("type"))

	out := make([]model.Seat, 0, len(seats))
	for _, s := range seats {
		if status != "" && s.Status != status {
			continue
		}
		if seatType != "" && !strings.EqualFold(s.SeatType, seatType) {
			continue
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		zi, ni, oki := model.SplitSeatNo(out[i].SeatNo)
		zj, nj, okj := model.SplitSeatNo(out[j].SeatNo)
		if !oki || !okj || zi != zj {
			return out[i].SeatNo < out[j].SeatNo
		}
		return ni < nj
	})
	return c.JSON(http.StatusOK, echo.Map{"seats": out, "total": len(out)})
}

func (h *SeatHandler) Create(c echo.Context) error {
	var req seatCreateReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	op := currentOperator(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Seats.FindBySeatNo(ctx, req.SeatNo); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already exists"})
	} else if !errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	id, err := h.Seats.Create(ctx, model.Seat{
		SeatNo:   strings.TrimSpace(req.SeatNo),
		SeatType: req.SeatType,
		Status:   model.SeatAvailable,
		HallCode: op.HallCode,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seat failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (h *SeatHandler) Update(c echo.Context) error {
	var req seatUpdateReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	fields := map[string]any{}
	if req.SeatType != "" {
		fields["seat_type"] = req.SeatType
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Seats.Update(ctx, c.Param("id"), fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a seat document. An occupied seat cannot be deleted while
// a student record still points at it.
func (h *SeatHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	seat, err := h.Seats.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seat failed"})
	}
	if seat.Status == model.SeatOccupied {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat is occupied"})
	}

	if err := h.Seats.Remove(ctx, c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete seat failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Board returns available seat ordinals grouped by zone, the shape the
// front desk's wall board renders from.
func (h *SeatHandler) Board(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	seats, err := h.Seats.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"board": booking.AvailableBoard(seats)})
}

// Reconcile recomputes seat statuses from student validity windows and
// flips the seats that disagree. Returns the corrections applied.
func (h *SeatHandler) Reconcile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	corrections, err := h.Flow.ReconcileSeats(ctx, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reconcile failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"corrections": corrections, "total": len(corrections)})
}

// seatRowWriter adapts the seats repository to the importer.
type seatRowWriter struct {
	seats *repository.SeatRepo
	hall  string
}

func (w seatRowWriter) WriteRow(ctx context.Context, row importer.Row) error {
	_, err := w.seats.Create(ctx, model.Seat{
		SeatNo:   row.SeatNo,
		SeatType: row.SeatType,
		Status:   model.SeatAvailable,
		HallCode: w.hall,
	})
	return err
}

// Import creates seats from an uploaded xlsx, one create per row.
func (h *SeatHandler) Import(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	rows, err := importer.ReadSeats(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Minute)
	defer cancel()

	written, err := importer.Run(ctx, rows, seatRowWriter{seats: h.Seats, hall: currentOperator(c).HallCode})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(), "imported": written,
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{"imported": written})
}

// Export streams the seat inventory as xlsx (default) or pdf.
func (h *SeatHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	seats, err := h.Seats.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seats failed"})
	}

	if c.QueryParam("format") == "pdf" {
		out, err := export.SeatsPDF(seats)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="seats.pdf"`)
		return c.Blob(http.StatusOK, "application/pdf", out)
	}
	out, err := export.SeatsXLSX(seats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="seats.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}
