package repository

import (
	"context"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// MaintenanceRepo manages the expense ledger collection.
type MaintenanceRepo struct {
	col *store.Collection[model.MaintenanceRecord]
}

func NewMaintenanceRepo(c *store.Client, collectionID string) *MaintenanceRepo {
	return &MaintenanceRepo{col: store.NewCollection(c, collectionID, model.DecodeMaintenanceRecord)}
}

func (r *MaintenanceRepo) Append(ctx context.Context, m model.MaintenanceRecord) (string, error) {
	doc, err := r.col.Create(ctx, map[string]any{
		"category":   m.Category,
		"amount":     m.Amount,
		"comment":    m.Comment,
		"created_by": m.CreatedBy,
		"hall_code":  m.HallCode,
	})
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// ListByMonth returns expenses recorded during the given month ("2025-01").
func (r *MaintenanceRepo) ListByMonth(ctx context.Context, yearMonth string) ([]model.MaintenanceRecord, error) {
	return r.col.ListByPeriod(ctx, yearMonth, "$createdAt")
}

func (r *MaintenanceRepo) Remove(ctx context.Context, id string) error {
	return r.col.Remove(ctx, id)
}
