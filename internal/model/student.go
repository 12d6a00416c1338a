package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/store"
)

// Student is one registered member of the hall. A student holds at most
// one seat at a time; SeatNo is empty while unseated, and ValidFrom /
// ValidTo bound the paid occupancy window (nil together when there is no
// active booking).
//
// Fields map to the Students collection attributes:
//
//	name, phone, email, join_date, seat_id, from_date, to_date,
//	hall_code, created_by.
type Student struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"` // optional
	JoinDate  time.Time  `json:"join_date"`
	SeatNo    string     `json:"seat_id"` // empty when no seat assigned
	ValidFrom *time.Time `json:"from_date"`
	ValidTo   *time.Time `json:"to_date"`
	HallCode  string     `json:"hall_code"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// HasSeat reports whether the student currently holds a seat.
func (s Student) HasSeat() bool { return s.SeatNo != "" }

// ActiveAt reports whether the student's validity window covers the given
// instant. Both bounds are inclusive.
func (s Student) ActiveAt(now time.Time) bool {
	if s.ValidFrom == nil || s.ValidTo == nil {
		return false
	}
	day := now.Truncate(24 * time.Hour)
	return !day.Before(*s.ValidFrom) && !day.After(*s.ValidTo)
}

// DueAt reports whether the student's paid window has already lapsed.
func (s Student) DueAt(now time.Time) bool {
	return s.ValidTo != nil && s.ValidTo.Before(now.Truncate(24*time.Hour))
}

// DecodeStudent validates and converts a raw Students document.
func DecodeStudent(doc store.Document) (Student, error) {
	var raw struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		JoinDate  string `json:"join_date"`
		SeatNo    string `json:"seat_id"`
		FromDate  string `json:"from_date"`
		ToDate    string `json:"to_date"`
		HallCode  string `json:"hall_code"`
		CreatedBy string `json:"created_by"`
	}
	if err := json.Unmarshal(doc.Fields, &raw); err != nil {
		return Student{}, fmt.Errorf("student %s: %w", doc.ID, err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return Student{}, fmt.Errorf("student %s: name is empty", doc.ID)
	}
	join, err := parseDate("join_date", raw.JoinDate)
	if err != nil {
		return Student{}, fmt.Errorf("student %s: %w", doc.ID, err)
	}
	from, err := parseOptionalDate("from_date", raw.FromDate)
	if err != nil {
		return Student{}, fmt.Errorf("student %s: %w", doc.ID, err)
	}
	to, err := parseOptionalDate("to_date", raw.ToDate)
	if err != nil {
		return Student{}, fmt.Errorf("student %s: %w", doc.ID, err)
	}
	if from != nil && to != nil && from.After(*to) {
		return Student{}, fmt.Errorf("student %s: from_date after to_date", doc.ID)
	}
	return Student{
		ID:        doc.ID,
		Name:      strings.TrimSpace(raw.Name),
		Phone:     strings.TrimSpace(raw.Phone),
		Email:     strings.TrimSpace(raw.Email),
		JoinDate:  join,
		SeatNo:    strings.TrimSpace(raw.SeatNo),
		ValidFrom: from,
		ValidTo:   to,
		HallCode:  raw.HallCode,
		CreatedBy: raw.CreatedBy,
		CreatedAt: doc.CreatedAt,
	}, nil
}
