package repository

// Tx agrupa los repositorios atados a una misma transacción (unidad de trabajo).
// Solo lo construye un TxRunner; las operaciones que lo reciben corren dentro de esa transacción.
type Tx struct {
	Parts          PartRepository
	Stock          StockRepository
	Movements      StockMovementRepository
	Purchases      PurchaseRepository
	Sales          SaleRepository
	Exchanges      ExchangeRepository
	Suppliers      SupplierRepository
	Customers      CustomerRepository
	PaymentMethods PaymentMethodRepository
}
