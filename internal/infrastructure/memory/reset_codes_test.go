package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pecas-api/internal/application/auth"
	"github.com/jhoicas/pecas-api/internal/infrastructure/memory"
)

func TestResetCodeStore_Expira(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s := memory.NewResetCodeStore().WithClock(func() time.Time { return now })

	require.NoError(t, s.Save(ctx, "Ana@Pecas.test", auth.ResetCode{Code: "123456", UserID: 4}, 15*time.Minute))

	got, err := s.Get(ctx, "ana@pecas.test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "123456", got.Code)
	assert.Equal(t, int64(4), got.UserID)

	now = now.Add(15 * time.Minute)
	got, err = s.Get(ctx, "ana@pecas.test")
	require.NoError(t, err)
	assert.Nil(t, got, "el código vence al cumplirse el TTL")
}

func TestResetCodeStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewResetCodeStore()
	require.NoError(t, s.Save(ctx, "ana@pecas.test", auth.ResetCode{Code: "654321", UserID: 1}, time.Minute))
	require.NoError(t, s.Delete(ctx, "ANA@pecas.test"))

	got, err := s.Get(ctx, "ana@pecas.test")
	require.NoError(t, err)
	assert.Nil(t, got)
}
