package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

func TestStateMachine_Transitions(t *testing.T) {
	cases := []struct {
		name    string
		machine entity.StateMachine
		from    entity.Status
		to      entity.Status
		ok      bool
	}{
		{"compra pendiente → recibida", entity.PurchaseLifecycle, entity.StatusPending, entity.StatusReceived, true},
		{"compra pendiente → cancelada", entity.PurchaseLifecycle, entity.StatusPending, entity.StatusCancelled, true},
		{"compra recibida → cancelada", entity.PurchaseLifecycle, entity.StatusReceived, entity.StatusCancelled, false},
		{"compra recibida → recibida", entity.PurchaseLifecycle, entity.StatusReceived, entity.StatusReceived, false},
		{"compra cancelada → recibida", entity.PurchaseLifecycle, entity.StatusCancelled, entity.StatusReceived, false},
		{"compra cancelada → pendiente", entity.PurchaseLifecycle, entity.StatusCancelled, entity.StatusPending, false},
		{"compra pendiente → completada", entity.PurchaseLifecycle, entity.StatusPending, entity.StatusCompleted, false},
		{"venta pendiente → completada", entity.SaleLifecycle, entity.StatusPending, entity.StatusCompleted, true},
		{"venta pendiente → cancelada", entity.SaleLifecycle, entity.StatusPending, entity.StatusCancelled, true},
		{"venta completada → cancelada", entity.SaleLifecycle, entity.StatusCompleted, entity.StatusCancelled, false},
		{"venta cancelada → cancelada", entity.SaleLifecycle, entity.StatusCancelled, entity.StatusCancelled, false},
		{"cambio activo → cancelado", entity.ExchangeLifecycle, entity.StatusActive, entity.StatusCancelled, true},
		{"cambio cancelado → activo", entity.ExchangeLifecycle, entity.StatusCancelled, entity.StatusActive, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.machine.Transition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidState), "debe ser ErrInvalidState, fue %v", err)
		})
	}
}

func TestStateMachine_Terminal(t *testing.T) {
	assert.False(t, entity.PurchaseLifecycle.Terminal(entity.StatusPending))
	assert.True(t, entity.PurchaseLifecycle.Terminal(entity.StatusReceived))
	assert.True(t, entity.PurchaseLifecycle.Terminal(entity.StatusCancelled))
	assert.True(t, entity.SaleLifecycle.Terminal(entity.StatusCompleted))
	assert.True(t, entity.ExchangeLifecycle.Terminal(entity.StatusCancelled))
}

func TestStateMachine_Valid(t *testing.T) {
	assert.True(t, entity.SaleLifecycle.Valid(entity.StatusCompleted))
	assert.False(t, entity.SaleLifecycle.Valid(entity.StatusReceived))
	assert.False(t, entity.PurchaseLifecycle.Valid(entity.Status("pendente")))
}

func TestStateMachine_Editable(t *testing.T) {
	assert.NoError(t, entity.SaleLifecycle.Editable(entity.StatusPending))
	err := entity.SaleLifecycle.Editable(entity.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.ErrorIs(t, entity.PurchaseLifecycle.Editable(entity.StatusReceived), domain.ErrInvalidState)
}

func TestSale_QuantityOf(t *testing.T) {
	s := &entity.Sale{Items: []entity.SaleItem{{PartID: 5, Quantity: 2}, {PartID: 9, Quantity: 1}, {PartID: 5, Quantity: 1}}}
	q, ok := s.QuantityOf(5)
	assert.True(t, ok)
	assert.Equal(t, 3, q)
	_, ok = s.QuantityOf(42)
	assert.False(t, ok)
}
