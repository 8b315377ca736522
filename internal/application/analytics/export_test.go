package analytics

import "time"

// WithClock fija el reloj del caso de uso en tests.
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}
