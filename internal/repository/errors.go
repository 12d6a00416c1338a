// Package repository provides typed access to the remote collections and
// the ephemeral token store. Each repo wraps one store.Collection and
// exposes exactly the operations the workflows and handlers need; raw
// documents never leave this layer.
package repository

import "errors"

// ErrInvalidToken is returned when a refresh token hash is unknown,
// expired or already revoked. Handlers translate this into HTTP 401.
var ErrInvalidToken = errors.New("invalid refresh token")
