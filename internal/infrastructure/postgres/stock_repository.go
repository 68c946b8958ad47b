package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de estoque.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByProduct primer registro de estoque del producto, nil si no tiene.
func (r *StockRepo) GetByProduct(ctx context.Context, productID int64) (*entity.StockRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT * FROM estoque WHERE id_produto=$1`, productID)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	var s entity.StockRecord
	if s.ID, err = rowInt64(rows[0], "id"); err != nil {
		return nil, fmt.Errorf("scan stock: %w", err)
	}
	if s.ProductID, err = rowInt64(rows[0], "id_produto"); err != nil {
		return nil, fmt.Errorf("scan stock: %w", err)
	}
	if s.Quantity, err = rowInt64(rows[0], "quantidade"); err != nil {
		return nil, fmt.Errorf("scan stock: %w", err)
	}
	return &s, nil
}

// Create inserta el registro de estoque de un producto.
func (r *StockRepo) Create(ctx context.Context, stock *entity.StockRecord) error {
	_, err := r.q.Query(ctx,
		`INSERT INTO estoque (id_produto, quantidade) VALUES ($1,$2)`,
		stock.ProductID, stock.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// UpdateQuantity fija el saldo del producto.
func (r *StockRepo) UpdateQuantity(ctx context.Context, productID, quantity int64) error {
	_, err := r.q.Query(ctx, `UPDATE estoque SET quantidade=$1 WHERE id_produto=$2`, quantity, productID)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// DeleteByProduct elimina los registros de estoque del producto.
func (r *StockRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	if _, err := r.q.Query(ctx, `DELETE FROM estoque WHERE id_produto=$1`, productID); err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return nil
}
