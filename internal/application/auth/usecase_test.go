package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-api/internal/application/auth"
	"github.com/jhoicas/cantina-api/internal/application/dto"
	"github.com/jhoicas/cantina-api/internal/domain"
	"github.com/jhoicas/cantina-api/internal/domain/entity"
	"github.com/jhoicas/cantina-api/pkg/jwt"
)

type stubEmployees struct {
	employee *entity.Employee
	err      error
	gotLogin string
}

func (s *stubEmployees) FindByCredentials(_ context.Context, login, password string) (*entity.Employee, error) {
	s.gotLogin = login
	if s.err != nil {
		return nil, s.err
	}
	if s.employee == nil || password != "1234" {
		return nil, nil
	}
	return s.employee, nil
}

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "cantina-test"}

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := &stubEmployees{employee: &entity.Employee{ID: 1, Name: "Maria", Role: "caixa", Email: "maria@x.com"}}
	uc := auth.NewAuthUseCase(repo, jwtCfg)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "  Maria ", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "Maria", repo.gotLogin)
	assert.Equal(t, dto.EmployeeResponse{ID: 1, Name: "Maria", Role: "caixa", Email: "maria@x.com"}, out.Employee)

	claims, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "Maria", claims.Name)
	assert.Equal(t, "caixa", claims.Role)
	assert.Equal(t, "cantina-test", claims.Issuer)
}

func TestLogin_CredencialIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(&stubEmployees{employee: &entity.Employee{ID: 1}}, jwtCfg)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "Maria", Password: "0000"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc := auth.NewAuthUseCase(&stubEmployees{}, jwtCfg)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: " ", Password: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "Maria"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_ErrorDeRepositorio(t *testing.T) {
	boom := errors.New("boom")
	uc := auth.NewAuthUseCase(&stubEmployees{err: boom}, jwtCfg)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "Maria", Password: "1234"})
	assert.ErrorIs(t, err, boom)
}
