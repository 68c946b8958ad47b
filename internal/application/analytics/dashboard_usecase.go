// Package analytics contiene el caso de uso del Dashboard de la cantina.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/cantina-api/internal/application/dto"
	"github.com/jhoicas/cantina-api/internal/application/usecase"
	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del dashboard: stock bajo, total de productos y de ventas.
type DashboardUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, sales repository.SaleRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, sales: sales}
}

// GetSummary construye el DashboardDTO.
//
// Tres llamadas en paralelo:
//  1. ListLowStock  → productos con menos de 5 unidades
//  2. Count         → total de productos
//  3. sales.Count   → total de ventas
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardDTO, error) {
	type lowResult struct {
		list []entity.ProductStock
		err  error
	}
	type countResult struct {
		n   int64
		err error
	}

	lowCh := make(chan lowResult, 1)
	productsCh := make(chan countResult, 1)
	salesCh := make(chan countResult, 1)

	go func() {
		list, err := uc.products.ListLowStock(ctx)
		lowCh <- lowResult{list, err}
	}()
	go func() {
		n, err := uc.products.Count(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.sales.Count(ctx)
		salesCh <- countResult{n, err}
	}()

	low := <-lowCh
	products := <-productsCh
	sales := <-salesCh

	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", products.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: total de ventas: %w", sales.err)
	}

	return &dto.DashboardDTO{
		LowStock:      usecase.ToProductResponses(low.list),
		TotalProducts: products.n,
		TotalSales:    sales.n,
	}, nil
}
