// Package analytics contiene los casos de uso del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

// DashboardUseCase genera el resumen del catálogo y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// Summary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. CatalogCounts                       → piezas, stock bajo, clientes, proveedores
//  2. SalesTotals(completed, mes)         → ventas del mes
//  3. PurchaseTotals(received, mes)       → compras del mes
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	type countsResult struct {
		counts repository.CatalogCounts
		err    error
	}
	type totalsResult struct {
		totals repository.PeriodTotals
		err    error
	}

	countsCh := make(chan countsResult, 1)
	salesCh := make(chan totalsResult, 1)
	purchasesCh := make(chan totalsResult, 1)

	go func() {
		c, err := uc.analyticsRepo.CatalogCounts(ctx)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.SalesTotals(ctx, entity.StatusCompleted, monthStart, monthEnd)
		salesCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.PurchaseTotals(ctx, entity.StatusReceived, monthStart, monthEnd)
		purchasesCh <- totalsResult{t, err}
	}()

	counts := <-countsCh
	sales := <-salesCh
	purchases := <-purchasesCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", sales.err)
	}
	if purchases.err != nil {
		return nil, fmt.Errorf("dashboard: compras del mes: %w", purchases.err)
	}

	return &dto.DashboardSummaryDTO{
		ActiveParts:           counts.counts.ActiveParts,
		LowStockParts:         counts.counts.LowStockParts,
		ActiveCustomers:       counts.counts.ActiveCustomers,
		ActiveSuppliers:       counts.counts.ActiveSuppliers,
		MonthlySalesCount:     sales.totals.Count,
		MonthlySalesValue:     sales.totals.Value.Round(2),
		MonthlyPurchasesCount: purchases.totals.Count,
		MonthlyPurchasesValue: purchases.totals.Value.Round(2),
		DateLabel:             monthLabel(now),
	}, nil
}

// RecentActivity últimas ventas y compras mezcladas por fecha.
func (uc *DashboardUseCase) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityDTO, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	entries, err := uc.analyticsRepo.RecentActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: actividad reciente: %w", err)
	}
	out := make([]dto.ActivityDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityDTO{
			Kind:       e.Kind,
			ID:         e.ID,
			PartyName:  e.PartyName,
			Date:       e.Date,
			TotalValue: e.TotalValue,
			Status:     string(e.Status),
		})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
