package inventory

import (
	"context"

	"github.com/jhoicas/cantina-api/internal/application/dto"
	"github.com/jhoicas/cantina-api/internal/application/usecase"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

// OverviewUseCase pantalla de gestión de estoque: productos con saldo y últimas ventas.
type OverviewUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
}

// NewOverviewUseCase construye el caso de uso.
func NewOverviewUseCase(products repository.ProductRepository, sales repository.SaleRepository) *OverviewUseCase {
	return &OverviewUseCase{products: products, sales: sales}
}

// Get devuelve todos los productos (por nombre) y las 20 ventas más recientes.
func (uc *OverviewUseCase) Get(ctx context.Context) (*dto.InventoryOverviewDTO, error) {
	products, err := uc.products.List(ctx, "")
	if err != nil {
		return nil, err
	}
	recent, err := uc.sales.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	movements := make([]dto.SaleResponse, 0, len(recent))
	for _, s := range recent {
		movements = append(movements, dto.SaleResponse{
			ID:         s.ID,
			Product:    s.ProductName,
			Employee:   s.EmployeeName,
			Quantity:   s.Quantity,
			TotalPrice: s.TotalPrice,
		})
	}
	return &dto.InventoryOverviewDTO{
		Products:  usecase.ToProductResponses(products),
		Movements: movements,
	}, nil
}
