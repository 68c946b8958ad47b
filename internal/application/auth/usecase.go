package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/cantina-api/internal/application/dto"
	"github.com/jhoicas/cantina-api/internal/domain"
	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/internal/domain/repository"
	"github.com/jhoicas/cantina-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de funcionarios. El logout es del lado del cliente (descartar el token).
type AuthUseCase struct {
	employees repository.EmployeeRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employees repository.EmployeeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{employees: employees, jwtCfg: jwtCfg}
}

// Login verifica nombre-o-email y credencial, genera JWT y retorna token + funcionario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	login := strings.TrimSpace(in.Username)
	if login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	emp, err := uc.employees.FindByCredentials(ctx, login, in.Password)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, emp.ID, emp.Name, emp.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Employee: toEmployeeResponse(emp),
	}, nil
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:    e.ID,
		Name:  e.Name,
		Role:  e.Role,
		Email: e.Email,
	}
}
