package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/store"
)

// Operator roles. Every authenticated staff member can run the booking
// workflows; ADMIN additionally manages operators themselves.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// Operator is an authenticated staff account. The operator's display name
// is recorded on every write (received_by / created_by) for audit, and
// HallCode scopes all of their writes to one physical hall.
type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	HallCode     string
	CreatedAt    time.Time
}

// DecodeOperator validates and converts a raw Operators document.
func DecodeOperator(doc store.Document) (Operator, error) {
	var raw struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		PasswordHash string `json:"password_hash"`
		Role         string `json:"role"`
		HallCode     string `json:"hall_code"`
	}
	if err := json.Unmarshal(doc.Fields, &raw); err != nil {
		return Operator{}, fmt.Errorf("operator %s: %w", doc.ID, err)
	}
	if strings.TrimSpace(raw.Email) == "" {
		return Operator{}, fmt.Errorf("operator %s: email is empty", doc.ID)
	}
	role := strings.ToUpper(strings.TrimSpace(raw.Role))
	if role != RoleAdmin && role != RoleStaff {
		return Operator{}, fmt.Errorf("operator %s: unknown role %q", doc.ID, raw.Role)
	}
	return Operator{
		ID:           doc.ID,
		Name:         strings.TrimSpace(raw.Name),
		Email:        strings.ToLower(strings.TrimSpace(raw.Email)),
		PasswordHash: raw.PasswordHash,
		Role:         role,
		HallCode:     raw.HallCode,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
