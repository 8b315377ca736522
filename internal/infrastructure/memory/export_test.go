package memory

import "time"

// WithClock fija el reloj del store de códigos en tests.
func (s *ResetCodeStore) WithClock(now func() time.Time) *ResetCodeStore {
	s.now = now
	return s
}
