package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/queue"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// ErrValidation marks precondition failures detected before any write.
// Handlers surface these inline as 400s; nothing has been mutated.
var ErrValidation = errors.New("validation")

// StudentDirectory is the slice of the Students collection the workflows
// need.
type StudentDirectory interface {
	ListAll(ctx context.Context) ([]model.Student, error)
	// AssignSeat sets the student's seat and validity window in one update.
	AssignSeat(ctx context.Context, id, seatNo string, from, to time.Time) error
	// MoveSeat reassigns the seat without touching the validity window.
	MoveSeat(ctx context.Context, id, seatNo string) error
}

// SeatDirectory is the slice of the Seats collection the workflows need.
type SeatDirectory interface {
	ListAll(ctx context.Context) ([]model.Seat, error)
	FindBySeatNo(ctx context.Context, seatNo string) (model.Seat, error)
	SetStatus(ctx context.Context, id, status string) error
}

// BookingLedger appends Booking documents. The ledger is append-only;
// nothing in the system updates or deletes a booking.
type BookingLedger interface {
	Append(ctx context.Context, b model.Booking) (string, error)
}

// Operator identifies who is performing a workflow and which hall their
// writes are scoped to. It is passed explicitly into every call; the
// workflows read no ambient session state.
type Operator struct {
	Name     string
	HallCode string
}

// Workflow wires the three collection directories together with an
// optional event publisher. The directories are independent remote
// collections: the steps below are sequential single writes with no
// transaction around them and no compensation on failure. A crash or
// error partway through leaves the earlier writes in place (see Commit).
type Workflow struct {
	Students StudentDirectory
	Seats    SeatDirectory
	Bookings BookingLedger
	// Publish, when non-nil, emits a confirmation event after a successful
	// commit. Publish failures are logged by the publisher and ignored.
	Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// CommitRequest carries the operator-confirmed booking parameters.
type CommitRequest struct {
	StudentID     string
	StudentName   string
	CurrentSeatNo string // seat held before this booking, "" when unseated
	SeatNo        string
	StartDate     time.Time
	Months        int
	Total         float64
	PaymentType   string
	Comment       string
}

// CommitResult reports what a successful commit wrote.
type CommitResult struct {
	Installments []Installment `json:"installments"`
	BookingIDs   []string      `json:"booking_ids"`
}

func (r CommitRequest) validate() error {
	if r.StudentID == "" {
		return fmt.Errorf("%w: student is required", ErrValidation)
	}
	if r.SeatNo == "" {
		return fmt.Errorf("%w: please select a seat", ErrValidation)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: please select a start date", ErrValidation)
	}
	if r.PaymentType != model.PaymentUPI && r.PaymentType != model.PaymentCash {
		return fmt.Errorf("%w: please select a payment type", ErrValidation)
	}
	if r.Months < 1 {
		return fmt.Errorf("%w: duration must be at least one month", ErrValidation)
	}
	if r.Total < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	return nil
}

// Commit runs the booking workflow: plan installments, append one Booking
// document per installment, update the student's seat assignment and
// validity window, release the previously held seat, occupy the new one.
//
// The steps run strictly in sequence and each success enables the next;
// there is no rollback. A failure after the booking creates but before
// the student update leaves orphaned Booking documents behind; that is
// the store contract this system lives with, and ReconcileSeats can later
// repair seat-status drift (but not remove orphans).
func (w *Workflow) Commit(ctx context.Context, op Operator, req CommitRequest) (CommitResult, error) {
	if err := req.validate(); err != nil {
		return CommitResult{}, err
	}

	plan, err := Plan(req.SeatNo, req.StartDate, req.Months, req.Total)
	if err != nil {
		return CommitResult{}, err
	}

	ids := make([]string, 0, len(plan))
	for _, inst := range plan {
		id, err := w.Bookings.Append(ctx, model.Booking{
			SeatNo:      inst.SeatNo,
			StudentID:   req.StudentID,
			StudentName: req.StudentName,
			FromDate:    inst.From,
			ToDate:      inst.To,
			Amount:      inst.Amount,
			PaymentType: req.PaymentType,
			Comment:     req.Comment,
			ReceivedBy:  op.Name,
			CreatedBy:   op.Name,
			HallCode:    op.HallCode,
		})
		if err != nil {
			return CommitResult{}, fmt.Errorf("create booking: %w", err)
		}
		ids = append(ids, id)
	}

	first, last := plan[0], plan[len(plan)-1]
	if err := w.Students.AssignSeat(ctx, req.StudentID, req.SeatNo, first.From, last.To); err != nil {
		return CommitResult{}, fmt.Errorf("update student: %w", err)
	}

	if req.CurrentSeatNo != "" && req.CurrentSeatNo != req.SeatNo {
		if err := w.setSeatStatus(ctx, req.CurrentSeatNo, model.SeatAvailable); err != nil {
			return CommitResult{}, fmt.Errorf("release seat %s: %w", req.CurrentSeatNo, err)
		}
	}
	if err := w.setSeatStatus(ctx, req.SeatNo, model.SeatOccupied); err != nil {
		return CommitResult{}, fmt.Errorf("occupy seat %s: %w", req.SeatNo, err)
	}

	if w.Publish != nil {
		_ = w.Publish(ctx, queue.BookingConfirmedEvent{
			StudentID:   req.StudentID,
			StudentName: req.StudentName,
			SeatNo:      req.SeatNo,
			FromDate:    first.From.Format(model.DateLayout),
			ToDate:      last.To.Format(model.DateLayout),
			Months:      req.Months,
			Amount:      req.Total,
			PaymentType: req.PaymentType,
			ReceivedBy:  op.Name,
			HallCode:    op.HallCode,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return CommitResult{Installments: plan, BookingIDs: ids}, nil
}

// ChangeSeatRequest moves a student whose current booking already covers
// now; no payment is implied and no Booking documents are created.
type ChangeSeatRequest struct {
	StudentID     string
	CurrentSeatNo string // "" when the student somehow holds no seat
	SeatNo        string
}

// ChangeSeat reassigns a seat without creating bookings: student record
// first, then old seat to Available, then new seat to Occupied. The same
// non-atomicity caveat as Commit applies.
func (w *Workflow) ChangeSeat(ctx context.Context, op Operator, req ChangeSeatRequest) error {
	if req.StudentID == "" {
		return fmt.Errorf("%w: student is required", ErrValidation)
	}
	if req.SeatNo == "" {
		return fmt.Errorf("%w: please select a seat", ErrValidation)
	}

	if err := w.Students.MoveSeat(ctx, req.StudentID, req.SeatNo); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if req.CurrentSeatNo != "" && req.CurrentSeatNo != req.SeatNo {
		if err := w.setSeatStatus(ctx, req.CurrentSeatNo, model.SeatAvailable); err != nil {
			return fmt.Errorf("release seat %s: %w", req.CurrentSeatNo, err)
		}
	}
	if err := w.setSeatStatus(ctx, req.SeatNo, model.SeatOccupied); err != nil {
		return fmt.Errorf("occupy seat %s: %w", req.SeatNo, err)
	}
	return nil
}

// setSeatStatus flips one seat by seat number. A seat number with no
// backing document is logged and skipped rather than failing the whole
// workflow, matching how the dashboard has always behaved.
func (w *Workflow) setSeatStatus(ctx context.Context, seatNo, status string) error {
	seat, err := w.Seats.FindBySeatNo(ctx, seatNo)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("booking: seat %q not found while setting %s", seatNo, status)
			return nil
		}
		return err
	}
	return w.Seats.SetStatus(ctx, seat.ID, status)
}
