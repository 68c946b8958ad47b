package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create registra la venta y asigna sale.ID.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	rows, err := r.q.Query(ctx,
		`INSERT INTO vendas (id_funcionario, id_produto, quantidade, preco_total) VALUES ($1,$2,$3,$4) RETURNING id`,
		sale.EmployeeID, sale.ProductID, sale.Quantity, sale.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	if len(rows) > 0 {
		if sale.ID, err = rowInt64(rows[0], "id"); err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
	}
	return nil
}

// Count total de ventas.
func (r *SaleRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.q, `SELECT COUNT(*) AS cnt FROM vendas`)
}

// ListRecent las 20 ventas más recientes con nombre de producto y funcionario.
func (r *SaleRepo) ListRecent(ctx context.Context) ([]entity.SaleSummary, error) {
	rows, err := r.q.Query(ctx,
		`SELECT v.id, p.nome AS produto, f.nome AS funcionario, v.quantidade, v.preco_total
     FROM vendas v
     JOIN produtos p ON p.id = v.id_produto
     JOIN funcionarios f ON f.id = v.id_funcionario
     ORDER BY v.id DESC LIMIT 20`)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	list := make([]entity.SaleSummary, 0, len(rows))
	for _, row := range rows {
		s := entity.SaleSummary{
			ProductName:  rowString(row, "produto"),
			EmployeeName: rowString(row, "funcionario"),
		}
		if s.ID, err = rowInt64(row, "id"); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if s.Quantity, err = rowInt64(row, "quantidade"); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if s.TotalPrice, err = rowDecimal(row, "preco_total"); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, nil
}
