// Package session persists the (user, token) pair across process restarts.
// The durable backend is a local sqlite database holding an opaque
// key-value table; tests and ephemeral runs use the in-memory store.
package session

import (
	"context"

	"github.com/apetrenko/jobport/internal/models"
)

// Store is the durable session storage contract.
//
//   - Load returns the persisted session, or an empty one when nothing is
//     stored. Malformed persisted data is discarded: the store wipes
//     itself and Load returns an empty session together with an error
//     wrapping common.ErrMalformedSession so the caller can log it.
//   - Save persists both halves of the pair atomically.
//   - Clear removes any persisted session.
type Store interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}
