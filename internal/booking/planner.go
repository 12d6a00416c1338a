// Package booking holds the seat-booking core: the installment planner,
// the seat availability view, the commit and seat-change workflows, and
// the seat-status reconciliation job. Everything here is independent of
// HTTP; handlers adapt requests into these calls.
package booking

import (
	"fmt"
	"math"
	"time"
)

// Installment is one month's share of a booking transaction: a date range
// covering "a full month minus a day" and the rounded per-month amount.
type Installment struct {
	Month  string    `json:"month"` // short label of From, e.g. "Jan"
	SeatNo string    `json:"seat_no"`
	From   time.Time `json:"from_date"`
	To     time.Time `json:"to_date"` // inclusive
	Amount float64   `json:"amount"`
}

// Plan partitions a booking of `months` whole months starting at `start`
// into per-month installments for the given seat.
//
// The amount of every installment is round-half-up(total/months); when the
// total does not divide evenly the summed installments may drift from the
// total by up to months-1 minor units, which is accepted rather than
// corrected. Month boundaries are start advanced by i calendar months,
// clamped to the last day of the target month when the source day does not
// exist there (Jan 31 + 1 month = Feb 28); each installment ends the day
// before the next boundary, so the ranges are contiguous and
// non-overlapping by construction.
//
// Plan is pure: identical inputs always produce identical output.
func Plan(seatNo string, start time.Time, months int, total float64) ([]Installment, error) {
	if months < 1 {
		return nil, fmt.Errorf("%w: duration must be at least one month", ErrValidation)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	start = midnight(start)
	per := math.Round(total / float64(months))

	out := make([]Installment, 0, months)
	for i := 0; i < months; i++ {
		from := addMonths(start, i)
		to := addMonths(start, i+1).AddDate(0, 0, -1)
		out = append(out, Installment{
			Month:  from.Format("Jan"),
			SeatNo: seatNo,
			From:   from,
			To:     to,
			Amount: per,
		})
	}
	return out, nil
}

// addMonths advances t by n calendar months, preserving the day-of-month
// where it exists and clamping to the month's last day where it does not.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// midnight strips any time-of-day component.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
