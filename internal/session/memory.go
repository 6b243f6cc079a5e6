package session

import (
	"context"
	"sync"

	"github.com/apetrenko/jobport/internal/models"
)

// MemoryStore is a Store that forgets everything when the process exits.
// Used by tests and by runs configured without a session database.
//
// Unlike SQLiteStore, Save here accepts a partial session. Tests depend on
// that to plant corrupted state and exercise the restore-time recovery
// path, which SQLiteStore's refusal would make unreachable.
type MemoryStore struct {
	mu   sync.Mutex
	sess models.Session
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return models.Session{}, nil
	}
	return m.sess, nil
}

func (m *MemoryStore) Save(ctx context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = s
	m.set = true
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = models.Session{}
	m.set = false
	return nil
}
