package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/pecas-api/internal/application/auth"
)

var _ auth.ResetCodeStore = (*ResetCodeStore)(nil)

// ResetCodeStore códigos de recuperación con expiración, solo para STORAGE_DRIVER=memory.
// Con Postgres los códigos viven en Redis.
type ResetCodeStore struct {
	mu    sync.Mutex
	codes map[string]expiringCode
	now   func() time.Time
}

type expiringCode struct {
	code      auth.ResetCode
	expiresAt time.Time
}

// NewResetCodeStore construye el store vacío.
func NewResetCodeStore() *ResetCodeStore {
	return &ResetCodeStore{codes: make(map[string]expiringCode), now: time.Now}
}

func (s *ResetCodeStore) Save(_ context.Context, email string, code auth.ResetCode, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[strings.ToLower(email)] = expiringCode{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *ResetCodeStore) Get(_ context.Context, email string) (*auth.ResetCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	c, ok := s.codes[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(c.expiresAt) {
		delete(s.codes, key)
		return nil, nil
	}
	out := c.code
	return &out, nil
}

func (s *ResetCodeStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, strings.ToLower(email))
	return nil
}
