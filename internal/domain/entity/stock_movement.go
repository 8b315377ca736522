package entity

import "time"

// Dirección del movimiento de inventario.
const (
	MovementIn  = "in"  // entrada
	MovementOut = "out" // salida
)

// Origen del movimiento: qué operación del flujo lo generó.
const (
	SourceOpening            = "opening"             // stock inicial al crear la pieza
	SourcePurchaseReceipt    = "purchase_receipt"    // recepción de compra
	SourceSale               = "sale"                // venta creada o actualizada
	SourceSaleRelease        = "sale_release"        // venta cancelada o ítems reemplazados
	SourceExchangeReturn     = "exchange_return"     // pieza original devuelta en un cambio
	SourceExchangeSubstitute = "exchange_substitute" // pieza entregada en un cambio
	SourceExchangeReversal   = "exchange_reversal"   // cambio cancelado
)

// StockMovement registro de auditoría de cada delta aplicado a quantity_in_stock.
// TransactionRef agrupa los movimientos de una misma unidad de trabajo.
type StockMovement struct {
	ID             int64
	TransactionRef string
	PartID         int64
	Direction      string // in, out
	Quantity       int    // siempre positivo; Direction da el signo
	Source         string
	ReferenceID    int64 // id de la compra, venta o cambio
	UserID         int64
	CreatedAt      time.Time
}
