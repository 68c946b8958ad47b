package memdb_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-api/internal/infrastructure/memdb"
)

func byName(name string) func(memdb.Row) bool {
	return func(r memdb.Row) bool { return r["nome"] == name }
}

func TestStore_IdentidadesPorTabla(t *testing.T) {
	s := memdb.NewStore()

	for i := 1; i <= 3; i++ {
		id, err := s.Insert(memdb.TableProducts, memdb.Row{"nome": fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
		assert.Equal(t, int64(i), id)
	}
	id, err := s.Insert(memdb.TableSales, memdb.Row{"quantidade": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "cada tabla tiene su propio contador")
}

func TestStore_IdentidadNoSeReutiliza(t *testing.T) {
	s := memdb.NewStore()
	_, _ = s.Insert(memdb.TableProducts, memdb.Row{"nome": "a"})
	_, _ = s.Insert(memdb.TableProducts, memdb.Row{"nome": "b"})

	assert.Equal(t, 1, s.Remove(memdb.TableProducts, byName("b")))
	id, err := s.Insert(memdb.TableProducts, memdb.Row{"nome": "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestStore_InsertIgnoraIDExplicitoYNormaliza(t *testing.T) {
	s := memdb.NewStore()
	id, err := s.Insert(memdb.TableProducts, memdb.Row{"id": int64(40), "nome": "Bolo", "preco": "2.50", "id_estoque": "7"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	rows := s.Filter(memdb.TableProducts, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, int64(7), rows[0]["id_estoque"])
	assert.True(t, decimal.RequireFromString("2.5").Equal(rows[0]["preco"].(decimal.Decimal)))
}

func TestStore_FilterDevuelveCopiasEnOrden(t *testing.T) {
	s := memdb.NewStore()
	for _, n := range []string{"c", "a", "b"} {
		_, _ = s.Insert(memdb.TableProducts, memdb.Row{"nome": n})
	}
	rows := s.Filter(memdb.TableProducts, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, "c", rows[0]["nome"])
	assert.Equal(t, "b", rows[2]["nome"])

	rows[0]["nome"] = "mutado"
	assert.Equal(t, "c", s.Filter(memdb.TableProducts, nil)[0]["nome"], "Filter no expone las filas internas")
}

func TestStore_UpdateSoloPrimeraCoincidencia(t *testing.T) {
	s := memdb.NewStore()
	_, _ = s.Insert(memdb.TableStock, memdb.Row{"id_produto": 1, "quantidade": 1})
	_, _ = s.Insert(memdb.TableStock, memdb.Row{"id_produto": 1, "quantidade": 2})

	ok := s.Update(memdb.TableStock, func(r memdb.Row) bool { return r["id_produto"] == int64(1) }, memdb.Row{"quantidade": 9, "id": 99})
	require.True(t, ok)

	rows := s.Filter(memdb.TableStock, nil)
	assert.Equal(t, int64(9), rows[0]["quantidade"])
	assert.Equal(t, int64(1), rows[0]["id"], "la identidad no se modifica")
	assert.Equal(t, int64(2), rows[1]["quantidade"])

	assert.False(t, s.Update(memdb.TableStock, func(memdb.Row) bool { return false }, memdb.Row{"quantidade": 0}))
}

func TestStore_RemoveTodasLasCoincidencias(t *testing.T) {
	s := memdb.NewStore()
	for i := 0; i < 4; i++ {
		_, _ = s.Insert(memdb.TableStock, memdb.Row{"id_produto": i % 2, "quantidade": i})
	}
	n := s.Remove(memdb.TableStock, func(r memdb.Row) bool { return r["id_produto"] == int64(0) })
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.Count(memdb.TableStock))
}

func TestStore_TablaDesconocida(t *testing.T) {
	s := memdb.NewStore()
	_, err := s.Insert("clientes", memdb.Row{"nome": "x"})
	require.ErrorIs(t, err, memdb.ErrUnknownTable)
	assert.Empty(t, s.Filter("clientes", nil))
	assert.Zero(t, s.Count("clientes"))
}

func TestStore_LoadAsignaIdentidades1aN(t *testing.T) {
	var b strings.Builder
	b.WriteString("INSERT INTO produtos (id, nome, preco) VALUES ")
	const n = 12
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "(%d, 'p%02d', 1.00)", 100+i, i)
	}
	b.WriteString(";\nINSERT INTO fornecedores (nome) VALUES ('ignorado');")

	stmts, skipped := memdb.ParseSeed(b.String())
	require.Empty(t, skipped)

	s := memdb.NewStore()
	rep := s.Load(stmts)
	assert.Equal(t, n, rep.Rows[memdb.TableProducts])
	assert.Equal(t, n, rep.Total())
	assert.Equal(t, []string{"fornecedores"}, rep.Ignored)

	rows := s.Filter(memdb.TableProducts, nil)
	require.Len(t, rows, n)
	for i, r := range rows {
		assert.Equal(t, int64(i+1), r["id"])
		assert.Equal(t, fmt.Sprintf("p%02d", i), r["nome"])
	}
}

func TestStore_InsertConcurrente(t *testing.T) {
	s := memdb.NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Insert(memdb.TableSales, memdb.Row{"quantidade": 1})
		}()
	}
	wg.Wait()

	seen := map[any]bool{}
	for _, r := range s.Filter(memdb.TableSales, nil) {
		seen[r["id"]] = true
	}
	assert.Len(t, seen, 50, "identidades únicas bajo concurrencia")
}
