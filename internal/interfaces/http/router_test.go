package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/cantina-api/internal/application/analytics"
	"github.com/jhoicas/cantina-api/internal/application/auth"
	"github.com/jhoicas/cantina-api/internal/application/dto"
	"github.com/jhoicas/cantina-api/internal/application/inventory"
	"github.com/jhoicas/cantina-api/internal/application/usecase"
	"github.com/jhoicas/cantina-api/internal/infrastructure/datasource"
	"github.com/jhoicas/cantina-api/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/cantina-api/internal/interfaces/http"
)

const routerSeed = `
INSERT INTO funcionarios (id, nome, tipo, email, senha) VALUES (1, 'Maria', 'caixa', 'maria@x.com', '1234');
INSERT INTO produtos (id, id_estoque, nome, preco) VALUES (1, 1, 'Suco', 4.00);
INSERT INTO estoque (id, id_produto, quantidade) VALUES (1, 1, 10);
`

// buildAPI arma la API completa sobre la fachada en modo respaldo (PostgreSQL inalcanzable).
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	seed := filepath.Join(t.TempDir(), "cantina_escolar.sql")
	require.NoError(t, os.WriteFile(seed, []byte(routerSeed), 0o600))

	src := datasource.New(datasource.Options{
		Connector: func(context.Context) (datasource.Backend, error) { return nil, assert.AnError },
		SeedPaths: []string{seed},
	}, zerolog.Nop())
	src.Init(context.Background())
	t.Cleanup(src.Close)

	employees := postgres.NewEmployeeRepository(src)
	products := postgres.NewProductRepository(src)
	stock := postgres.NewStockRepository(src)
	sales := postgres.NewSaleRepository(src)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(employees, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProductUC:        usecase.NewProductUseCase(products, stock),
		RegisterMovement: inventory.NewRegisterMovementUseCase(products, stock, sales),
		Overview:         inventory.NewOverviewUseCase(products, sales),
		DashboardUC:      appanalytics.NewDashboardUseCase(products, sales),
		JWTSecret:        testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	var out dto.LoginResponse
	code := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "maria@x.com", Password: "1234"}, &out)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "Maria", out.Employee.Name)
	return out.Token
}

func TestAPI_Login(t *testing.T) {
	app := buildAPI(t)
	login(t, app)

	code := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "Maria", Password: "0000"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "Maria"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_RutasProtegidas(t *testing.T) {
	app := buildAPI(t)
	for _, path := range []string{"/api/dashboard", "/api/products", "/api/inventory"} {
		assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, path, "", nil, nil), path)
	}
}

func TestAPI_FlujoProductoYMovimiento(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	var created dto.ProductResponse
	code := call(t, app, http.MethodPost, "/api/products", token,
		dto.CreateProductRequest{Name: "Bread", Price: decimal.RequireFromString("2.50")}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, int64(2), created.ID)

	var dash dto.DashboardDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/dashboard", token, nil, &dash))
	assert.Equal(t, int64(2), dash.TotalProducts)
	require.Len(t, dash.LowStock, 1)
	assert.Equal(t, "Bread", dash.LowStock[0].Name)

	var mov dto.MovementResponse
	code = call(t, app, http.MethodPost, "/api/inventory/movements", token,
		dto.RegisterMovementRequest{ProductID: created.ID, Type: "saida", Quantity: 3}, &mov)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, int64(-3), mov.Balance)
	require.NotNil(t, mov.Sale)
	assert.True(t, mov.Sale.TotalPrice.Equal(decimal.RequireFromString("7.50")))

	var overview dto.InventoryOverviewDTO
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory", token, nil, &overview))
	require.Len(t, overview.Movements, 1)
	assert.Equal(t, "Maria", overview.Movements[0].Employee)
	assert.Equal(t, "Bread", overview.Movements[0].Product)

	var list dto.ProductListResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/products?busca=bre", token, nil, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(-3), list.Items[0].Quantity)

	var updated dto.ProductResponse
	code = call(t, app, http.MethodPut, "/api/products/2", token,
		dto.UpdateProductRequest{Name: "Pão", Price: decimal.RequireFromString("3.00")}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Pão", updated.Name)

	assert.Equal(t, http.StatusNoContent, call(t, app, http.MethodDelete, "/api/products/2", token, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodDelete, "/api/products/2", token, nil, nil))
}

func TestAPI_MovimientoInvalido(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	code := call(t, app, http.MethodPost, "/api/inventory/movements", token,
		dto.RegisterMovementRequest{ProductID: 1, Type: "ajuste", Quantity: 1}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = call(t, app, http.MethodPost, "/api/inventory/movements", token,
		dto.RegisterMovementRequest{ProductID: 42, Type: "entrada", Quantity: 1}, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_ProductoSinNombre(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	code := call(t, app, http.MethodPost, "/api/products", token, dto.CreateProductRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code = call(t, app, http.MethodPut, "/api/products/abc", token, dto.UpdateProductRequest{Name: "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
