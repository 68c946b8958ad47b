package analytics_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-api/internal/application/analytics"
	"github.com/jhoicas/cantina-api/internal/infrastructure/memdb"
	"github.com/jhoicas/cantina-api/internal/infrastructure/postgres"
)

const seed = `
INSERT INTO funcionarios (nome, tipo, email, senha) VALUES ('Maria', 'caixa', 'maria@x.com', '1234');
INSERT INTO produtos (nome, preco) VALUES ('Suco', 4.00), ('Coxinha', 6.50), ('Bolo', 5.00);
INSERT INTO estoque (id_produto, quantidade) VALUES (1, 20), (2, 4);
INSERT INTO vendas (id_funcionario, id_produto, quantidade, preco_total) VALUES (1, 1, 1, 4.00), (1, 2, 2, 13.00);
`

func TestDashboard_GetSummary(t *testing.T) {
	stmts, skipped := memdb.ParseSeed(seed)
	require.Empty(t, skipped)
	store := memdb.NewStore()
	store.Load(stmts)
	q := memdb.NewDispatcher(store, zerolog.Nop())

	uc := analytics.NewDashboardUseCase(postgres.NewProductRepository(q), postgres.NewSaleRepository(q))
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.TotalProducts)
	assert.Equal(t, int64(2), out.TotalSales)
	require.Len(t, out.LowStock, 2)
	assert.Equal(t, "Bolo", out.LowStock[0].Name, "sin registro de estoque cuenta como 0")
	assert.Equal(t, int64(0), out.LowStock[0].Quantity)
	assert.Equal(t, "Coxinha", out.LowStock[1].Name)
	assert.Equal(t, int64(4), out.LowStock[1].Quantity)
}

func TestDashboard_BaseVacia(t *testing.T) {
	q := memdb.NewDispatcher(memdb.NewStore(), zerolog.Nop())
	uc := analytics.NewDashboardUseCase(postgres.NewProductRepository(q), postgres.NewSaleRepository(q))

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.TotalProducts)
	assert.Zero(t, out.TotalSales)
	assert.NotNil(t, out.LowStock)
	assert.Empty(t, out.LowStock)
}
