package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prajnahall/studyhall-admin/internal/booking"
	"github.com/prajnahall/studyhall-admin/internal/export"
	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/repository"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// StudentHandler serves the member register: profiles, seat bookings and
// seat changes.
type StudentHandler struct {
	Students *repository.StudentRepo
	Seats    *repository.SeatRepo
	Bookings *repository.BookingRepo
	Flow     *booking.Workflow
}

func NewStudentHandler(students *repository.StudentRepo, seats *repository.SeatRepo, bookings *repository.BookingRepo, flow *booking.Workflow) *StudentHandler {
	if students == nil || seats == nil || bookings == nil || flow == nil {
		panic("nil dependency passed to NewStudentHandler")
	}
	return &StudentHandler{Students: students, Seats: seats, Bookings: bookings, Flow: flow}
}

// ----- DTOs -----

type studentCreateReq struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,min=7"`
	Email    string `json:"email" validate:"omitempty,email"`
	JoinDate string `json:"join_date" validate:"required,datetime=2006-01-02"`
}

type bookReq struct {
	SeatNo      string  `json:"seat_id" validate:"required"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	Months      int     `json:"months" validate:"required,min=1"`
	Total       float64 `json:"total_amount" validate:"gte=0"`
	PaymentType string  `json:"payment_type" validate:"required,oneof=UPI Cash"`
	Comment     string  `json:"comment"`
}

type changeSeatReq struct {
	SeatNo string `json:"seat_id" validate:"required"`
}

// List returns students, filtered client-side the way the dashboard always
// has: ?q= matches name, phone or seat number; ?due=true keeps students
// whose window ends within seven days; ?paid=true keeps students active
// today.
func (h *StudentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	students, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list students failed"})
	}

	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	due := c.QueryParam("due") == "true"
	paid := c.QueryParam("paid") == "true"
	now := time.Now()

	out := make([]model.Student, 0, len(students))
	for _, s := range students {
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(s.Phone, q) &&
			!strings.Contains(strings.ToLower(s.SeatNo), q) {
			continue
		}
		if due && !s.DueAt(now) {
			continue
		}
		if paid && !s.ActiveAt(now) {
			continue
		}
		out = append(out, s)
	}
	return c.JSON(http.StatusOK, echo.Map{"students": out, "total": len(out)})
}

func (h *StudentHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Students.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load student failed"})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StudentHandler) Create(c echo.Context) error {
	var req studentCreateReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	joined, _ := time.Parse(model.DateLayout, req.JoinDate)
	op := currentOperator(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Students.Create(ctx, model.Student{
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		JoinDate:  joined,
		HallCode:  op.HallCode,
		CreatedBy: op.Name,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create student failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (h *StudentHandler) Update(c echo.Context) error {
	var req studentCreateReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	joined, _ := time.Parse(model.DateLayout, req.JoinDate)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Students.Get(ctx, c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load student failed"})
	}
	if err := h.Students.UpdateProfile(ctx, c.Param("id"),
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Phone), strings.TrimSpace(req.Email), joined); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update student failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a student, releasing their held seat first so the seat
// becomes bookable again. The two writes are sequential; if the delete
// fails after the release, the seat is simply free a little early.
func (h *StudentHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	s, err := h.Students.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load student failed"})
	}

	if s.HasSeat() {
		seat, err := h.Seats.FindBySeatNo(ctx, s.SeatNo)
		switch {
		case errors.Is(err, store.ErrNotFound):
			// seat document already gone; nothing to release
		case err != nil:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release seat failed"})
		default:
			if err := h.Seats.SetStatus(ctx, seat.ID, model.SeatAvailable); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release seat failed"})
			}
		}
	}

	if err := h.Students.Remove(ctx, c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete student failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Book runs the multi-month booking workflow for one student.  With
// ?preview=true only the installment plan is returned and nothing is
// written.
func (h *StudentHandler) Book(c echo.Context) error {
	var req bookReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	start, _ := time.Parse(model.DateLayout, req.StartDate)

	if c.QueryParam("preview") == "true" {
		plan, err := booking.Plan(req.SeatNo, start, req.Months, req.Total)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"installments": plan})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	s, err := h.Students.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load student failed"})
	}

	res, err := h.Flow.Commit(ctx, currentOperator(c), booking.CommitRequest{
		StudentID:     s.ID,
		StudentName:   s.Name,
		CurrentSeatNo: s.SeatNo,
		SeatNo:        req.SeatNo,
		StartDate:     start,
		Months:        req.Months,
		Total:         req.Total,
		PaymentType:   req.PaymentType,
		Comment:       req.Comment,
	})
	if err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, res)
}

// ChangeSeat moves an already-paid student to another seat without
// touching the ledger.
func (h *StudentHandler) ChangeSeat(c echo.Context) error {
	var req changeSeatReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	s, err := h.Students.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load student failed"})
	}

	if err := h.Flow.ChangeSeat(ctx, currentOperator(c), booking.ChangeSeatRequest{
		StudentID:     s.ID,
		CurrentSeatNo: s.SeatNo,
		SeatNo:        req.SeatNo,
	}); err != nil {
		if errors.Is(err, booking.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "change seat failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SeatOptions lists the seats this student may book: every available seat
// plus the one they already hold.
func (h *StudentHandler) SeatOptions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	s, err := h.Students.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load student failed"})
	}
	seats, err := h.Seats.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"options": booking.SeatOptions(seats, s.SeatNo)})
}

// Export streams the student register as xlsx (default) or pdf.
func (h *StudentHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	students, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list students failed"})
	}

	if c.QueryParam("format") == "pdf" {
		out, err := export.StudentsPDF(students)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="students.pdf"`)
		return c.Blob(http.StatusOK, "application/pdf", out)
	}
	out, err := export.StudentsXLSX(students)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="students.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

// History returns the student's ledger rows, most recent first as the
// store returns them.
func (h *StudentHandler) History(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	rows, err := h.Bookings.ListByStudent(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": rows, "total": len(rows)})
}
