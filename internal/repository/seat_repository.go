package repository

import (
	"context"
	"fmt"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// SeatRepo manages documents in the seats collection.
type SeatRepo struct {
	col *store.Collection[model.Seat]
}

func NewSeatRepo(c *store.Client, collectionID string) *SeatRepo {
	return &SeatRepo{col: store.NewCollection(c, collectionID, model.DecodeSeat)}
}

func (r *SeatRepo) ListAll(ctx context.Context) ([]model.Seat, error) {
	return r.col.ListAll(ctx)
}

func (r *SeatRepo) Get(ctx context.Context, id string) (model.Seat, error) {
	return r.col.Get(ctx, id)
}

// FindBySeatNo resolves a seat by its human-facing number ("A 12").
func (r *SeatRepo) FindBySeatNo(ctx context.Context, seatNo string) (model.Seat, error) {
	seats, err := r.col.ListFiltered(ctx, store.Equal("seat_no", seatNo))
	if err != nil {
		return model.Seat{}, err
	}
	if len(seats) == 0 {
		return model.Seat{}, fmt.Errorf("seat %q: %w", seatNo, store.ErrNotFound)
	}
	return seats[0], nil
}

func (r *SeatRepo) Create(ctx context.Context, s model.Seat) (string, error) {
	doc, err := r.col.Create(ctx, map[string]any{
		"seat_no":   s.SeatNo,
		"seat_type": s.SeatType,
		"status":    s.Status,
		"hall_code": s.HallCode,
	})
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (r *SeatRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return r.col.Update(ctx, id, fields)
}

func (r *SeatRepo) SetStatus(ctx context.Context, id, status string) error {
	return r.col.Update(ctx, id, map[string]any{"status": status})
}

func (r *SeatRepo) Remove(ctx context.Context, id string) error {
	return r.col.Remove(ctx, id)
}
