package repository

import (
	"context"

	"github.com/jhoicas/cantina-api/internal/domain/entity"
)

// EmployeeRepository puerto de lectura de funcionarios.
type EmployeeRepository interface {
	// FindByCredentials busca por nombre o email y credencial. nil si no coincide.
	FindByCredentials(ctx context.Context, login, password string) (*entity.Employee, error)
}
