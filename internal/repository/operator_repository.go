package repository

import (
	"context"

	"github.com/prajnahall/studyhall-admin/internal/model"
	"github.com/prajnahall/studyhall-admin/internal/store"
)

// OperatorRepo manages dashboard operator accounts.
type OperatorRepo struct {
	col *store.Collection[model.Operator]
}

func NewOperatorRepo(c *store.Client, collectionID string) *OperatorRepo {
	return &OperatorRepo{col: store.NewCollection(c, collectionID, model.DecodeOperator)}
}

func (r *OperatorRepo) FindByEmail(ctx context.Context, email string) (*model.Operator, error) {
	ops, err := r.col.ListFiltered(ctx, store.Equal("email", email))
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return nil, store.ErrNotFound
	}
	return &ops[0], nil
}

func (r *OperatorRepo) Get(ctx context.Context, id string) (*model.Operator, error) {
	op, err := r.col.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *OperatorRepo) Create(ctx context.Context, op *model.Operator) (string, error) {
	doc, err := r.col.Create(ctx, map[string]any{
		"name":          op.Name,
		"email":         op.Email,
		"password_hash": op.PasswordHash,
		"role":          op.Role,
		"hall_code":     op.HallCode,
	})
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}
