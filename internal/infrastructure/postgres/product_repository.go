package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productStockBase = `SELECT p.id, p.id_estoque, p.nome, p.preco, COALESCE(e.quantidade,0) AS quantidade
    FROM produtos p LEFT JOIN estoque e ON e.id_produto = p.id`

// ProductRepo implementación del puerto ProductRepository.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto y asigna product.ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	rows, err := r.q.Query(ctx,
		`INSERT INTO produtos (id_estoque, nome, preco) VALUES ($1,$2,$3) RETURNING id`,
		product.StockRef, product.Name, product.Price,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("insert product: sin id devuelto")
	}
	id, err := rowInt64(rows[0], "id")
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = id
	return nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT id, id_estoque, nome, preco FROM produtos WHERE id=$1`, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p, err := scanProduct(rows[0])
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre y precio.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	_, err := r.q.Query(ctx,
		`UPDATE produtos SET nome=$1, preco=$2 WHERE id=$3`,
		product.Name, product.Price, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina el registro de estoque del producto y luego el producto.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Query(ctx, `DELETE FROM estoque WHERE id_produto=$1`, id); err != nil {
		return fmt.Errorf("delete product stock: %w", err)
	}
	if _, err := r.q.Query(ctx, `DELETE FROM produtos WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List productos con cantidad, ordenados por nombre; search filtra por nombre sin distinguir mayúsculas.
func (r *ProductRepo) List(ctx context.Context, search string) ([]entity.ProductStock, error) {
	var (
		rows []Row
		err  error
	)
	if search != "" {
		rows, err = r.q.Query(ctx, productStockBase+" WHERE p.nome ILIKE $1 ORDER BY p.nome", "%"+search+"%")
	} else {
		rows, err = r.q.Query(ctx, productStockBase+" ORDER BY p.nome")
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProductStock(rows)
}

// ListLowStock productos con menos de 5 unidades (sin registro de estoque cuenta como 0).
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]entity.ProductStock, error) {
	rows, err := r.q.Query(ctx,
		`SELECT p.id, p.nome, p.preco, COALESCE(e.quantidade,0) AS quantidade
     FROM produtos p
     LEFT JOIN estoque e ON e.id_produto = p.id
     WHERE COALESCE(e.quantidade,0) < 5
     ORDER BY p.nome`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return scanProductStock(rows)
}

// Count total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, `SELECT COUNT(*) AS cnt FROM produtos`)
}

func count(ctx context.Context, q Querier, sql string) (int64, error) {
	rows, err := q.Query(ctx, sql)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rowInt64(rows[0], "cnt")
}

func scanProduct(row Row) (entity.Product, error) {
	var (
		p   entity.Product
		err error
	)
	if p.ID, err = rowInt64(row, "id"); err != nil {
		return p, err
	}
	if p.StockRef, err = rowInt64(row, "id_estoque"); err != nil {
		return p, err
	}
	if p.Price, err = rowDecimal(row, "preco"); err != nil {
		return p, err
	}
	p.Name = rowString(row, "nome")
	return p, nil
}

func scanProductStock(rows []Row) ([]entity.ProductStock, error) {
	list := make([]entity.ProductStock, 0, len(rows))
	for _, row := range rows {
		p, err := scanProduct(row)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		qty, err := rowInt64(row, "quantidade")
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, entity.ProductStock{Product: p, Quantity: qty})
	}
	return list, nil
}
