package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/store"
)

// Seat status values. Status is maintained by the booking workflows as a
// convention, not enforced by any store constraint, so a seat can be
// transiently wrong after a partial workflow failure. ReconcileSeats
// repairs such drift.
const (
	SeatAvailable = "Available"
	SeatOccupied  = "Occupied"
)

// Seat categories observed in the hall. The store may carry others; only
// the status field is a closed enum.
const (
	SeatTypeAC    = "AC"
	SeatTypeNonAC = "Non-AC"
)

// Seat is one bookable place in the hall. SeatNo encodes a zone prefix
// and an ordinal ("A 12", "B7") and is unique within the hall.
type Seat struct {
	ID        string    `json:"id"`
	SeatNo    string    `json:"seat_no"`
	SeatType  string    `json:"seat_type"`
	Status    string    `json:"status"`
	HallCode  string    `json:"hall_code"`
	CreatedAt time.Time `json:"created_at"`
}

// DecodeSeat validates and converts a raw Seats document.
func DecodeSeat(doc store.Document) (Seat, error) {
	var raw struct {
		SeatNo   string `json:"seat_no"`
		SeatType string `json:"seat_type"`
		Status   string `json:"status"`
		HallCode string `json:"hall_code"`
	}
	if err := json.Unmarshal(doc.Fields, &raw); err != nil {
		return Seat{}, fmt.Errorf("seat %s: %w", doc.ID, err)
	}
	seatNo := strings.TrimSpace(raw.SeatNo)
	if seatNo == "" {
		return Seat{}, fmt.Errorf("seat %s: seat_no is empty", doc.ID)
	}
	status := strings.TrimSpace(raw.Status)
	if status != SeatAvailable && status != SeatOccupied {
		return Seat{}, fmt.Errorf("seat %s: unknown status %q", doc.ID, raw.Status)
	}
	return Seat{
		ID:        doc.ID,
		SeatNo:    seatNo,
		SeatType:  strings.TrimSpace(raw.SeatType),
		Status:    status,
		HallCode:  raw.HallCode,
		CreatedAt: doc.CreatedAt,
	}, nil
}
