package repository

import (
	"context"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// BookingRepo is the append-only payment ledger.
type BookingRepo struct {
	col *store.Collection[model.Booking]
}

func NewBookingRepo(c *store.Client, collectionID string) *BookingRepo {
	return &BookingRepo{col: store.NewCollection(c, collectionID, model.DecodeBooking)}
}

// Append records one installment row and returns the new document id.
func (r *BookingRepo) Append(ctx context.Context, b model.Booking) (string, error) {
	doc, err := r.col.Create(ctx, map[string]any{
		"seat_id":      b.SeatNo,
		"student_id":   b.StudentID,
		"student_name": b.StudentName,
		"from_date":    b.FromDate.Format(model.DateLayout),
		"to_date":      b.ToDate.Format(model.DateLayout),
		"amount":       b.Amount,
		"payment_type": b.PaymentType,
		"comment":      b.Comment,
		"received_by":  b.ReceivedBy,
		"created_by":   b.CreatedBy,
		"hall_code":    b.HallCode,
	})
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// ListByMonth returns bookings recorded during the given month ("2025-01"),
// newest first. A booking belongs to the month it was recorded in, not the
// month its installment covers.
func (r *BookingRepo) ListByMonth(ctx context.Context, yearMonth string) ([]model.Booking, error) {
	return r.col.ListByPeriod(ctx, yearMonth, "$createdAt")
}

func (r *BookingRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Booking, error) {
	return r.col.ListFiltered(ctx, store.Equal("student_id", studentID))
}
