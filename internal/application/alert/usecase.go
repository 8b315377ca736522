// Package alert agrupa los avisos operativos: piezas bajo mínimo y documentos pendientes.
package alert

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

// UseCase lecturas concurrentes sobre piezas, ventas y compras.
type UseCase struct {
	partRepo     repository.PartRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(partRepo repository.PartRepository, saleRepo repository.SaleRepository, purchaseRepo repository.PurchaseRepository) *UseCase {
	return &UseCase{partRepo: partRepo, saleRepo: saleRepo, purchaseRepo: purchaseRepo}
}

// All devuelve las tres listas de avisos y el resumen de conteos.
// Las tres consultas corren en paralelo.
func (uc *UseCase) All(ctx context.Context) (*dto.AlertsDTO, error) {
	type partsResult struct {
		items []dto.LowStockAlertDTO
		err   error
	}
	type ordersResult struct {
		items []dto.PendingOrderDTO
		err   error
	}

	partsCh := make(chan partsResult, 1)
	salesCh := make(chan ordersResult, 1)
	purchasesCh := make(chan ordersResult, 1)

	go func() {
		items, err := uc.LowStock(ctx)
		partsCh <- partsResult{items, err}
	}()
	go func() {
		items, err := uc.pendingSales(ctx)
		salesCh <- ordersResult{items, err}
	}()
	go func() {
		items, err := uc.pendingPurchases(ctx)
		purchasesCh <- ordersResult{items, err}
	}()

	parts := <-partsCh
	sales := <-salesCh
	purchases := <-purchasesCh

	if parts.err != nil {
		return nil, fmt.Errorf("alertas: stock bajo: %w", parts.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("alertas: ventas pendientes: %w", sales.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("alertas: compras pendientes: %w", purchases.err)
	}

	return &dto.AlertsDTO{
		LowStock:         parts.items,
		PendingSales:     sales.items,
		PendingPurchases: purchases.items,
		Summary:          counts(len(parts.items), len(sales.items), len(purchases.items)),
	}, nil
}

// LowStock piezas activas con stock ≤ mínimo, primero las de mayor déficit.
// La cantidad sugerida repone hasta 1.5 veces el mínimo.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	parts, err := uc.partRepo.List(ctx, repository.PartFilter{LowStock: true})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockAlertDTO, 0, len(parts))
	for _, p := range parts {
		ideal := (3*p.MinimumQuantity + 1) / 2
		suggested := ideal - p.QuantityInStock
		if suggested < 0 {
			suggested = 0
		}
		out = append(out, dto.LowStockAlertDTO{
			PartID:          p.ID,
			Name:            p.Name,
			QuantityInStock: p.QuantityInStock,
			MinimumQuantity: p.MinimumQuantity,
			Gap:             p.QuantityInStock - p.MinimumQuantity,
			SuggestedQty:    suggested,
			EstimatedCost:   p.CostPrice.Mul(decimal.NewFromInt(int64(suggested))).Round(2),
		})
	}
	return out, nil
}

// Counts solo el resumen.
func (uc *UseCase) Counts(ctx context.Context) (*dto.AlertCountsDTO, error) {
	all, err := uc.All(ctx)
	if err != nil {
		return nil, err
	}
	return &all.Summary, nil
}

func (uc *UseCase) pendingSales(ctx context.Context) ([]dto.PendingOrderDTO, error) {
	sales, err := uc.saleRepo.List(ctx, repository.SaleFilter{Status: entity.StatusPending})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingOrderDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.PendingOrderDTO{ID: s.ID, PartyID: s.CustomerID, Date: s.SoldAt, TotalValue: s.TotalValue})
	}
	return out, nil
}

func (uc *UseCase) pendingPurchases(ctx context.Context) ([]dto.PendingOrderDTO, error) {
	purchases, err := uc.purchaseRepo.List(ctx, repository.PurchaseFilter{Status: entity.StatusPending})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingOrderDTO, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, dto.PendingOrderDTO{ID: p.ID, PartyID: p.SupplierID, Date: p.OrderDate, TotalValue: p.TotalValue})
	}
	return out, nil
}

func counts(lowStock, sales, purchases int) dto.AlertCountsDTO {
	return dto.AlertCountsDTO{
		LowStock:         lowStock,
		PendingSales:     sales,
		PendingPurchases: purchases,
		Total:            lowStock + sales + purchases,
	}
}
