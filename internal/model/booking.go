package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/store"
)

// Payment methods accepted at the desk.
const (
	PaymentUPI  = "UPI"
	PaymentCash = "Cash"
)

// Booking records one month of paid occupancy. A multi-month booking
// transaction produces several of these sharing seat and student but with
// contiguous, non-overlapping date ranges. Bookings are append-only: the
// workflows never update or delete them.
type Booking struct {
	ID          string    `json:"id"`
	SeatNo      string    `json:"seat_id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"` // denormalized at write time
	FromDate    time.Time `json:"from_date"`
	ToDate      time.Time `json:"to_date"` // inclusive
	Amount      float64   `json:"amount"`
	PaymentType string    `json:"payment_type"`
	Comment     string    `json:"comment"`
	ReceivedBy  string    `json:"received_by"`
	CreatedBy   string    `json:"created_by"`
	HallCode    string    `json:"hall_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// DecodeBooking validates and converts a raw Bookings document.
func DecodeBooking(doc store.Document) (Booking, error) {
	var raw struct {
		SeatNo      string     `json:"seat_id"`
		StudentID   string     `json:"student_id"`
		StudentName string     `json:"student_name"`
		FromDate    string     `json:"from_date"`
		ToDate      string     `json:"to_date"`
		Amount      flexAmount `json:"amount"`
		PaymentType string     `json:"payment_type"`
		Comment     string     `json:"comment"`
		ReceivedBy  string     `json:"received_by"`
		CreatedBy   string     `json:"created_by"`
		HallCode    string     `json:"hall_code"`
	}
	if err := json.Unmarshal(doc.Fields, &raw); err != nil {
		return Booking{}, fmt.Errorf("booking %s: %w", doc.ID, err)
	}
	from, err := parseDate("from_date", raw.FromDate)
	if err != nil {
		return Booking{}, fmt.Errorf("booking %s: %w", doc.ID, err)
	}
	to, err := parseDate("to_date", raw.ToDate)
	if err != nil {
		return Booking{}, fmt.Errorf("booking %s: %w", doc.ID, err)
	}
	if from.After(to) {
		return Booking{}, fmt.Errorf("booking %s: from_date after to_date", doc.ID)
	}
	if raw.Amount < 0 {
		return Booking{}, fmt.Errorf("booking %s: negative amount", doc.ID)
	}
	return Booking{
		ID:          doc.ID,
		SeatNo:      strings.TrimSpace(raw.SeatNo),
		StudentID:   raw.StudentID,
		StudentName: strings.TrimSpace(raw.StudentName),
		FromDate:    from,
		ToDate:      to,
		Amount:      float64(raw.Amount),
		PaymentType: raw.PaymentType,
		Comment:     raw.Comment,
		ReceivedBy:  raw.ReceivedBy,
		CreatedBy:   raw.CreatedBy,
		HallCode:    raw.HallCode,
		CreatedAt:   doc.CreatedAt,
	}, nil
}
