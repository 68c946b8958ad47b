package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para funcionarios.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// FindByCredentials login por nombre o email más credencial. Devuelve nil, nil si no coincide.
// La credencial no se devuelve en el resultado.
func (r *EmployeeRepo) FindByCredentials(ctx context.Context, login, password string) (*entity.Employee, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, nome, tipo, email FROM funcionarios WHERE (email = $1 OR nome = $1) AND senha = $2`,
		login, password,
	)
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	id, err := rowInt64(rows[0], "id")
	if err != nil {
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &entity.Employee{
		ID:    id,
		Name:  rowString(rows[0], "nome"),
		Role:  rowString(rows[0], "tipo"),
		Email: rowString(rows[0], "email"),
	}, nil
}
