package repository

import (
	"context"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el estoque por producto.
type StockRepository interface {
	// GetByProduct devuelve nil si el producto no tiene registro.
	GetByProduct(ctx context.Context, productID int64) (*entity.StockRecord, error)
	Create(ctx context.Context, stock *entity.StockRecord) error
	UpdateQuantity(ctx context.Context, productID, quantity int64) error
	DeleteByProduct(ctx context.Context, productID int64) error
}
