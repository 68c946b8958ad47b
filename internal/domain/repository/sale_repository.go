package repository

import (
	"context"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
)

// SaleRepository ventas: alta, conteo y listado de las más recientes.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context) ([]entity.SaleSummary, error)
}
