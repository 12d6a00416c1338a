package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepo persists/validates refresh token hashes in Redis. Entries expire
// with the token itself, so there is no separate cleanup job.
type TokenRepo struct{ RDB *redis.Client }

func NewTokenRepo(rdb *redis.Client) *TokenRepo { return &TokenRepo{RDB: rdb} }

func refreshKey(tokenHash string) string { return "auth:refresh:" + tokenHash }

// StoreRefresh records a refresh token hash for the operator until exp.
func (r *TokenRepo) StoreRefresh(ctx context.Context, operatorID, tokenHash string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return ErrInvalidToken
	}
	return r.RDB.Set(ctx, refreshKey(tokenHash), operatorID, ttl).Err()
}

// ValidateRefresh returns the operator id if the token is known and unexpired.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	operatorID, err := r.RDB.Get(ctx, refreshKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return operatorID, nil
}

// RevokeByHash deletes a token. Deleting an unknown hash is not an error.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	return r.RDB.Del(ctx, refreshKey(tokenHash)).Err()
}
