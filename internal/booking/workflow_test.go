package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/queue"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// fakeStudents records updates against an in-memory student set.
type fakeStudents struct {
	students  []model.Student
	assigns   []assignCall
	moves     []moveCall
	assignErr error
}

type assignCall struct {
	id, seatNo string
	from, to   time.Time
}

type moveCall struct{ id, seatNo string }

func (f *fakeStudents) ListAll(ctx context.Context) ([]model.Student, error) {
	return f.students, nil
}

func (f *fakeStudents) AssignSeat(ctx context.Context, id, seatNo string, from, to time.Time) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigns = append(f.assigns, assignCall{id, seatNo, from, to})
	return nil
}

func (f *fakeStudents) MoveSeat(ctx context.Context, id, seatNo string) error {
	f.moves = append(f.moves, moveCall{id, seatNo})
	return nil
}

// fakeSeats serves a fixed seat set and records status flips.
type fakeSeats struct {
	seats  []model.Seat
	status map[string]string // seat id -> last status written
}

func (f *fakeSeats) ListAll(ctx context.Context) ([]model.Seat, error) { return f.seats, nil }

func (f *fakeSeats) FindBySeatNo(ctx context.Context, seatNo string) (model.Seat, error) {
	for _, s := range f.seats {
		if s.SeatNo == seatNo {
			return s, nil
		}
	}
	return model.Seat{}, store.ErrNotFound
}

func (f *fakeSeats) SetStatus(ctx context.Context, id, status string) error {
	if f.status == nil {
		f.status = map[string]string{}
	}
	f.status[id] = status
	return nil
}

// fakeLedger appends bookings, optionally failing after a given count.
type fakeLedger struct {
	bookings  []model.Booking
	failAfter int // fail when len(bookings) reaches this; 0 disables
}

func (f *fakeLedger) Append(ctx context.Context, b model.Booking) (string, error) {
	if f.failAfter > 0 && len(f.bookings) >= f.failAfter {
		return "", errors.New("store unavailable")
	}
	f.bookings = append(f.bookings, b)
	return "bk-" + b.FromDate.Format("200601"), nil
}

func testWorkflow() (*Workflow, *fakeStudents, *fakeSeats, *fakeLedger) {
	students := &fakeStudents{}
	seats := &fakeSeats{seats: []model.Seat{
		{ID: "seat-a1", SeatNo: "A1", SeatType: "AC", Status: model.SeatOccupied},
		{ID: "seat-b2", SeatNo: "B2", SeatType: "Non-AC", Status: model.SeatAvailable},
	}}
	ledger := &fakeLedger{}
	return &Workflow{Students: students, Seats: seats, Bookings: ledger}, students, seats, ledger
}

var testOp = Operator{Name: "Venkatesh", HallCode: "PRAJNA"}

func TestCommit_RebookingMovesSeatState(t *testing.T) {
	t.Parallel()

	w, students, seats, ledger := testWorkflow()
	var published []queue.BookingConfirmedEvent
	w.Publish = func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
		published = append(published, ev)
		return nil
	}

	res, err := w.Commit(context.Background(), testOp, CommitRequest{
		StudentID:     "stu-1",
		StudentName:   "Asha Rao",
		CurrentSeatNo: "A1",
		SeatNo:        "B2",
		StartDate:     date(2025, time.January, 15),
		Months:        3,
		Total:         3000,
		PaymentType:   model.PaymentUPI,
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// Three booking documents, one per month, audit fields stamped.
	if len(ledger.bookings) != 3 {
		t.Fatalf("ledger has %d bookings, want 3", len(ledger.bookings))
	}
	for i, b := range ledger.bookings {
		if b.SeatNo != "B2" || b.StudentID != "stu-1" || b.StudentName != "Asha Rao" {
			t.Errorf("booking %d identity wrong: %+v", i, b)
		}
		if b.ReceivedBy != "Venkatesh" || b.CreatedBy != "Venkatesh" || b.HallCode != "PRAJNA" {
			t.Errorf("booking %d audit fields wrong: %+v", i, b)
		}
		if b.Amount != 1000 || b.PaymentType != model.PaymentUPI {
			t.Errorf("booking %d payment wrong: %+v", i, b)
		}
	}

	// Student bound to the new seat across the full window.
	if len(students.assigns) != 1 {
		t.Fatalf("student updated %d times, want 1", len(students.assigns))
	}
	a := students.assigns[0]
	if a.seatNo != "B2" || !a.from.Equal(date(2025, time.January, 15)) || !a.to.Equal(date(2025, time.April, 14)) {
		t.Errorf("assign = %+v", a)
	}

	// Old seat released, new seat occupied.
	if seats.status["seat-a1"] != model.SeatAvailable {
		t.Errorf("A1 status = %q, want Available", seats.status["seat-a1"])
	}
	if seats.status["seat-b2"] != model.SeatOccupied {
		t.Errorf("B2 status = %q, want Occupied", seats.status["seat-b2"])
	}

	if len(res.BookingIDs) != 3 || len(res.Installments) != 3 {
		t.Errorf("result incomplete: %+v", res)
	}
	if len(published) != 1 || published[0].SeatNo != "B2" || published[0].Months != 3 {
		t.Errorf("confirmation event wrong: %+v", published)
	}
}

func TestCommit_SameSeatIsNotReleased(t *testing.T) {
	t.Parallel()

	w, _, seats, _ := testWorkflow()
	_, err := w.Commit(context.Background(), testOp, CommitRequest{
		StudentID:   "stu-1",
		StudentName: "Asha Rao",
		// extending the seat they already hold
		CurrentSeatNo: "A1",
		SeatNo:        "A1",
		StartDate:     date(2025, time.February, 1),
		Months:        1,
		Total:         1100,
		PaymentType:   model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if seats.status["seat-a1"] != model.SeatOccupied {
		t.Errorf("A1 status = %q, want Occupied (release must not fire for a same-seat rebooking)",
			seats.status["seat-a1"])
	}
}

func TestCommit_ValidationBlocksAllWrites(t *testing.T) {
	t.Parallel()

	bad := []CommitRequest{
		{StudentID: "stu-1", StartDate: date(2025, 1, 1), Months: 1, Total: 100, PaymentType: "UPI"}, // no seat
		{StudentID: "stu-1", SeatNo: "B2", Months: 1, Total: 100, PaymentType: "UPI"},                // no start date
		{StudentID: "stu-1", SeatNo: "B2", StartDate: date(2025, 1, 1), Months: 1, Total: 100},       // no payment type
		{StudentID: "stu-1", SeatNo: "B2", StartDate: date(2025, 1, 1), Months: 1, Total: 100, PaymentType: "Cheque"},
		{StudentID: "stu-1", SeatNo: "B2", StartDate: date(2025, 1, 1), Months: 0, Total: 100, PaymentType: "UPI"},
		{StudentID: "stu-1", SeatNo: "B2", StartDate: date(2025, 1, 1), Months: 1, Total: -5, PaymentType: "UPI"},
	}
	for i, req := range bad {
		w, students, seats, ledger := testWorkflow()
		_, err := w.Commit(context.Background(), testOp, req)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
		if len(ledger.bookings) != 0 || len(students.assigns) != 0 || len(seats.status) != 0 {
			t.Errorf("case %d: writes happened despite validation failure", i)
		}
	}
}

func TestCommit_PartialFailureLeavesOrphans(t *testing.T) {
	t.Parallel()

	// The booking creates succeed but the student update throws. The
	// orphaned Booking documents stay in the ledger and neither student
	// nor seats are touched; the workflow takes no corrective action.
	w, students, seats, ledger := testWorkflow()
	students.assignErr = errors.New("store unavailable")

	_, err := w.Commit(context.Background(), testOp, CommitRequest{
		StudentID:     "stu-1",
		StudentName:   "Asha Rao",
		CurrentSeatNo: "A1",
		SeatNo:        "B2",
		StartDate:     date(2025, time.January, 15),
		Months:        2,
		Total:         2000,
		PaymentType:   model.PaymentUPI,
	})
	if err == nil {
		t.Fatal("Commit should surface the student-update failure")
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("workflow failure misclassified as validation: %v", err)
	}
	if len(ledger.bookings) != 2 {
		t.Errorf("orphaned bookings = %d, want 2 (no rollback)", len(ledger.bookings))
	}
	if len(students.assigns) != 0 {
		t.Error("student was updated despite the failure")
	}
	if len(seats.status) != 0 {
		t.Error("seat status changed despite the failure")
	}
}

func TestCommit_LedgerFailureStopsSequence(t *testing.T) {
	t.Parallel()

	w, students, seats, ledger := testWorkflow()
	ledger.failAfter = 1 // second create fails

	_, err := w.Commit(context.Background(), testOp, CommitRequest{
		StudentID:   "stu-1",
		StudentName: "Asha Rao",
		SeatNo:      "B2",
		StartDate:   date(2025, time.January, 15),
		Months:      3,
		Total:       3000,
		PaymentType: model.PaymentUPI,
	})
	if err == nil {
		t.Fatal("Commit should fail when a booking create fails")
	}
	if len(ledger.bookings) != 1 {
		t.Errorf("bookings written = %d, want 1 (first create only)", len(ledger.bookings))
	}
	if len(students.assigns) != 0 || len(seats.status) != 0 {
		t.Error("later steps ran after the ledger failure")
	}
}

func TestChangeSeat(t *testing.T) {
	t.Parallel()

	w, students, seats, ledger := testWorkflow()
	err := w.ChangeSeat(context.Background(), testOp, ChangeSeatRequest{
		StudentID:     "stu-1",
		CurrentSeatNo: "A1",
		SeatNo:        "B2",
	})
	if err != nil {
		t.Fatalf("ChangeSeat: %v", err)
	}
	if len(ledger.bookings) != 0 {
		t.Error("seat change must not create bookings")
	}
	if len(students.moves) != 1 || students.moves[0].seatNo != "B2" {
		t.Errorf("moves = %+v", students.moves)
	}
	if len(students.assigns) != 0 {
		t.Error("seat change must not touch the validity window")
	}
	if seats.status["seat-a1"] != model.SeatAvailable || seats.status["seat-b2"] != model.SeatOccupied {
		t.Errorf("seat statuses = %v", seats.status)
	}
}

func TestCommit_UnknownReleasedSeatIsSkipped(t *testing.T) {
	t.Parallel()

	// The previously held seat no longer exists in the Seats collection.
	// The workflow logs and continues, as the dashboard always has.
	w, _, seats, _ := testWorkflow()
	_, err := w.Commit(context.Background(), testOp, CommitRequest{
		StudentID:     "stu-1",
		StudentName:   "Asha Rao",
		CurrentSeatNo: "Z9",
		SeatNo:        "B2",
		StartDate:     date(2025, time.January, 15),
		Months:        1,
		Total:         1000,
		PaymentType:   model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if seats.status["seat-b2"] != model.SeatOccupied {
		t.Errorf("B2 status = %q, want Occupied", seats.status["seat-b2"])
	}
}
