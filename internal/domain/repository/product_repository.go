package repository

import (
	"context"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// List productos con su cantidad en estoque, ordenados por nombre. search vacío = todos.
	List(ctx context.Context, search string) ([]entity.ProductStock, error)
	ListLowStock(ctx context.Context) ([]entity.ProductStock, error)
	Count(ctx context.Context) (int64, error)
}
