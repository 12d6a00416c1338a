package repository

import (
	"context"
	"time"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// StudentRepo provides access to the Students collection.
type StudentRepo struct {
	col *store.Collection[model.Student]
}

// NewStudentRepo binds the repo to its collection id.
func NewStudentRepo(c *store.Client, collectionID string) *StudentRepo {
	return &StudentRepo{col: store.NewCollection(c, collectionID, model.DecodeStudent)}
}

// ListAll retrieves every student, paginating transparently.
func (r *StudentRepo) ListAll(ctx context.Context) ([]model.Student, error) {
	return r.col.ListAll(ctx)
}

// Get fetches one student by document id.
func (r *StudentRepo) Get(ctx context.Context, id string) (model.Student, error) {
	return r.col.Get(ctx, id)
}

// Create registers a new student. Seat and validity window start empty.
func (r *StudentRepo) Create(ctx context.Context, s model.Student) (string, error) {
	doc, err := r.col.Create(ctx, map[string]any{
		"name":       s.Name,
		"phone":      s.Phone,
		"email":      s.Email,
		"join_date":  s.JoinDate.Format(model.DateLayout),
		"seat_id":    "",
		"from_date":  "",
		"to_date":    "",
		"hall_code":  s.HallCode,
		"created_by": s.CreatedBy,
	})
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// UpdateProfile patches the editable profile fields only.
func (r *StudentRepo) UpdateProfile(ctx context.Context, id string, name, phone, email string, joinDate time.Time) error {
	return r.col.Update(ctx, id, map[string]any{
		"name":      name,
		"phone":     phone,
		"email":     email,
		"join_date": joinDate.Format(model.DateLayout),
	})
}

// AssignSeat sets the student's seat and validity window in one update.
// Used by the booking commit workflow.
func (r *StudentRepo) AssignSeat(ctx context.Context, id, seatNo string, from, to time.Time) error {
	return r.col.Update(ctx, id, map[string]any{
		"seat_id":   seatNo,
		"from_date": from.Format(model.DateLayout),
		"to_date":   to.Format(model.DateLayout),
	})
}

// MoveSeat reassigns the seat without touching the validity window. Used
// by the seat-change workflow.
func (r *StudentRepo) MoveSeat(ctx context.Context, id, seatNo string) error {
	return r.col.Update(ctx, id, map[string]any{"seat_id": seatNo})
}

// Remove deletes the student document. Releasing a held seat is the
// caller's responsibility, in keeping with the convention-maintained
// seat status.
func (r *StudentRepo) Remove(ctx context.Context, id string) error {
	return r.col.Remove(ctx, id)
}
