package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/model"
)

// Correction records one seat whose stored status disagreed with the
// status derived from student validity windows.
type Correction struct {
	SeatNo string `json:"seat_no"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ReconcileSeats recomputes every seat's status from the students'
// currently active validity windows and patches only the seats whose
// stored status disagrees. Seat.status is maintained by convention across
// three collections, so a workflow that failed partway (or two operators
// racing) can leave it stale; this job is the explicit repair the
// convention needs. It cannot remove orphaned Booking documents; those
// stay in the ledger.
func (w *Workflow) ReconcileSeats(ctx context.Context, now time.Time) ([]Correction, error) {
	students, err := w.Students.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	seats, err := w.Seats.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}

	held := make(map[string]bool, len(students))
	for _, s := range students {
		if s.HasSeat() && s.ActiveAt(now) {
			held[s.SeatNo] = true
		}
	}

	var fixed []Correction
	for _, seat := range seats {
		want := model.SeatAvailable
		if held[seat.SeatNo] {
			want = model.SeatOccupied
		}
		if seat.Status == want {
			continue
		}
		if err := w.Seats.SetStatus(ctx, seat.ID, want); err != nil {
			return fixed, fmt.Errorf("seat %s: %w", seat.SeatNo, err)
		}
		fixed = append(fixed, Correction{SeatNo: seat.SeatNo, From: seat.Status, To: want})
	}
	return fixed, nil
}
