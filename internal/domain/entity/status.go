package entity

import "github.com/jhoicas/pecas-api/internal/domain"

// Status estado persistido de compras, ventas y cambios.
type Status string

// Estados válidos. Los valores son los que se guardan en la columna status.
const (
	StatusPending   Status = "pending"
	StatusReceived  Status = "received"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusActive    Status = "active"
)

// StateMachine tabla de transiciones permitidas de un documento.
// Un estado sin salidas es terminal.
type StateMachine struct {
	Name        string
	Initial     Status
	transitions map[Status][]Status
}

// Ciclos de vida de los documentos del núcleo.
var (
	PurchaseLifecycle = StateMachine{
		Name:    "compra",
		Initial: StatusPending,
		transitions: map[Status][]Status{
			StatusPending: {StatusReceived, StatusCancelled},
		},
	}
	SaleLifecycle = StateMachine{
		Name:    "venta",
		Initial: StatusPending,
		transitions: map[Status][]Status{
			StatusPending: {StatusCompleted, StatusCancelled},
		},
	}
	ExchangeLifecycle = StateMachine{
		Name:    "cambio",
		Initial: StatusActive,
		transitions: map[Status][]Status{
			StatusActive: {StatusCancelled},
		},
	}
)

// Valid indica si s pertenece a este ciclo de vida.
func (m StateMachine) Valid(s Status) bool {
	if s == m.Initial {
		return true
	}
	for _, targets := range m.transitions {
		for _, t := range targets {
			if t == s {
				return true
			}
		}
	}
	return false
}

// Terminal indica si desde s ya no hay transiciones.
func (m StateMachine) Terminal(s Status) bool {
	return len(m.transitions[s]) == 0
}

// Editable: solo los documentos en su estado inicial admiten cambios de cabecera o ítems.
func (m StateMachine) Editable(s Status) error {
	if s != m.Initial {
		return domain.InvalidState("no es posible modificar una %s en estado %s", m.Name, s)
	}
	return nil
}

// Transition valida from → to. Repetir una transición ya aplicada también falla.
func (m StateMachine) Transition(from, to Status) error {
	for _, t := range m.transitions[from] {
		if t == to {
			return nil
		}
	}
	if from == to {
		return domain.InvalidState("la %s ya está en estado %s", m.Name, from)
	}
	return domain.InvalidState("no es posible pasar una %s de %s a %s", m.Name, from, to)
}
