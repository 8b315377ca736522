// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo local) y en los tests de casos de uso.
//
// Las transacciones se serializan: TxRunner.Run trabaja sobre una copia del estado
// y solo la publica si fn devuelve nil. Las escrituras fuera de transacción toman el
// mismo candado, así que ninguna escritura se pierde al publicar una copia.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex   // serializa escritores (transacciones y escrituras sueltas)
	mu   sync.RWMutex // protege el puntero data
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

type state struct {
	seq            map[string]int64
	parts          map[int64]entity.Part
	suppliers      map[int64]entity.Supplier
	customers      map[int64]entity.Customer
	paymentMethods map[int64]entity.PaymentMethod
	categories     map[int64]entity.Category
	brands         map[int64]entity.Brand
	purchases      map[int64]entity.Purchase
	purchaseItems  map[int64][]entity.PurchaseItem
	sales          map[int64]entity.Sale
	saleItems      map[int64][]entity.SaleItem
	exchanges      map[int64]entity.Exchange
	movements      []entity.StockMovement
	users          map[int64]entity.User
}

func newState() *state {
	return &state{
		seq:            map[string]int64{},
		parts:          map[int64]entity.Part{},
		suppliers:      map[int64]entity.Supplier{},
		customers:      map[int64]entity.Customer{},
		paymentMethods: map[int64]entity.PaymentMethod{},
		categories:     map[int64]entity.Category{},
		brands:         map[int64]entity.Brand{},
		purchases:      map[int64]entity.Purchase{},
		purchaseItems:  map[int64][]entity.PurchaseItem{},
		sales:          map[int64]entity.Sale{},
		saleItems:      map[int64][]entity.SaleItem{},
		exchanges:      map[int64]entity.Exchange{},
		users:          map[int64]entity.User{},
	}
}

// next emula un BIGSERIAL por tabla.
func (s *state) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	copyMap(c.parts, s.parts)
	copyMap(c.suppliers, s.suppliers)
	copyMap(c.customers, s.customers)
	copyMap(c.paymentMethods, s.paymentMethods)
	copyMap(c.categories, s.categories)
	copyMap(c.brands, s.brands)
	copyMap(c.purchases, s.purchases)
	copyMap(c.sales, s.sales)
	copyMap(c.exchanges, s.exchanges)
	copyMap(c.users, s.users)
	for k, v := range s.purchaseItems {
		c.purchaseItems[k] = append([]entity.PurchaseItem(nil), v...)
	}
	for k, v := range s.saleItems {
		c.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	return c
}

func copyMap[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}

// conn es el equivalente en memoria del Querier de postgres: pool (work == nil) o tx.
type conn struct {
	store *Store
	work  *state
}

func (c conn) view(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.work != nil {
		return fn(c.work)
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return fn(c.store.data)
}

func (c conn) update(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.work != nil {
		return fn(c.work)
	}
	c.store.txMu.Lock()
	defer c.store.txMu.Unlock()
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return fn(c.store.data)
}

// page aplica offset/limit; limit <= 0 devuelve todo.
func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
