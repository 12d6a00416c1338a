package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/store"
)

// MaintenanceCategories are the recognized expense categories.
var MaintenanceCategories = []string{
	"Rent", "Maid", "Water", "Cleaning", "Repair", "Electricity", "Wifi", "Other",
}

// ValidMaintenanceCategory reports whether c is a recognized category.
func ValidMaintenanceCategory(c string) bool {
	for _, known := range MaintenanceCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MaintenanceRecord is one hall expense entry. Unrelated to the booking
// core but stored through the same accessor contract.
type MaintenanceRecord struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Comment   string    `json:"comment"`
	CreatedBy string    `json:"created_by"`
	HallCode  string    `json:"hall_code"`
	CreatedAt time.Time `json:"created_at"`
}

// DecodeMaintenanceRecord validates and converts a raw Maintenance document.
func DecodeMaintenanceRecord(doc store.Document) (MaintenanceRecord, error) {
	var raw struct {
		Category  string     `json:"category"`
		Amount    flexAmount `json:"amount"`
		Comment   string     `json:"comment"`
		CreatedBy string     `json:"created_by"`
		HallCode  string     `json:"hall_code"`
	}
	if err := json.Unmarshal(doc.Fields, &raw); err != nil {
		return MaintenanceRecord{}, fmt.Errorf("maintenance %s: %w", doc.ID, err)
	}
	category := strings.TrimSpace(raw.Category)
	if !ValidMaintenanceCategory(category) {
		return MaintenanceRecord{}, fmt.Errorf("maintenance %s: unknown category %q", doc.ID, raw.Category)
	}
	if raw.Amount < 0 {
		return MaintenanceRecord{}, fmt.Errorf("maintenance %s: negative amount", doc.ID)
	}
	return MaintenanceRecord{
		ID:        doc.ID,
		Category:  category,
		Amount:    float64(raw.Amount),
		Comment:   raw.Comment,
		CreatedBy: raw.CreatedBy,
		HallCode:  raw.HallCode,
		CreatedAt: doc.CreatedAt,
	}, nil
}
