package memdb_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-api/internal/infrastructure/memdb"
)

func TestParseSeed_InsertMultiTupla(t *testing.T) {
	script := `
-- funcionarios de prueba
INSERT INTO funcionarios (id, nome, tipo, email, senha) VALUES
  (1, 'Maria', 'caixa', 'maria@x.com', '1234'),
  (2, 'João', 'admin', 'joao@x.com', 'abcd');
insert into produtos (id_estoque, nome, preco) values (0, 'Pão de queijo', 3.50);
`
	stmts, skipped := memdb.ParseSeed(script)
	require.Empty(t, skipped)
	require.Len(t, stmts, 2)

	assert.Equal(t, "funcionarios", stmts[0].Table)
	assert.Equal(t, []string{"id", "nome", "tipo", "email", "senha"}, stmts[0].Columns)
	require.Len(t, stmts[0].Rows, 2)
	assert.Equal(t, memdb.Row{"id": int64(1), "nome": "Maria", "tipo": "caixa", "email": "maria@x.com", "senha": "1234"}, stmts[0].Rows[0])
	assert.Equal(t, "João", stmts[0].Rows[1]["nome"])

	preco, ok := stmts[1].Rows[0]["preco"].(decimal.Decimal)
	require.True(t, ok, "un decimal sin comillas se convierte a decimal.Decimal")
	assert.True(t, preco.Equal(decimal.RequireFromString("3.50")))
}

func TestParseSeed_ComillaEscapada(t *testing.T) {
	stmts, skipped := memdb.ParseSeed(`INSERT INTO funcionarios (nome, email) VALUES ('O''Brien', 'ob@x.com');`)
	require.Empty(t, skipped)
	require.Len(t, stmts, 1)
	assert.Equal(t, "O'Brien", stmts[0].Rows[0]["nome"])
}

func TestParseSeed_DelimitadoresDentroDeComillas(t *testing.T) {
	stmts, skipped := memdb.ParseSeed(`insert into produtos (nome, preco) values ('Suco (laranja, 300ml); gelado', 4), ('Bolo', 5.5);`)
	require.Empty(t, skipped)
	require.Len(t, stmts, 1)
	require.Len(t, stmts[0].Rows, 2)
	assert.Equal(t, "Suco (laranja, 300ml); gelado", stmts[0].Rows[0]["nome"])
	assert.Equal(t, int64(4), stmts[0].Rows[0]["preco"])
	assert.Equal(t, "Bolo", stmts[0].Rows[1]["nome"])
}

func TestParseSeed_Coercion(t *testing.T) {
	stmts, skipped := memdb.ParseSeed(`insert into t (a, b, c, d, e, f, g) values ('7', 7, -2.25, NuLL, now(), '', 99999999999999999999);`)
	require.Empty(t, skipped)
	row := stmts[0].Rows[0]

	assert.Equal(t, "7", row["a"], "entre comillas siempre es texto")
	assert.Equal(t, int64(7), row["b"])
	assert.True(t, decimal.RequireFromString("-2.25").Equal(row["c"].(decimal.Decimal)))
	assert.Nil(t, row["d"])
	assert.Contains(t, row, "d")
	assert.Equal(t, "now()", row["e"], "sintaxis inesperada se conserva como token crudo")
	assert.Equal(t, "", row["f"])
	assert.IsType(t, decimal.Decimal{}, row["g"], "enteros fuera de int64 pasan a decimal")
}

func TestParseSeed_TuplaMalFormadaNoAbortaElResto(t *testing.T) {
	script := `
INSERT INTO produtos (nome, preco) VALUES ('Coxinha', 6.00);
INSERT INTO produtos (nome, preco) VALUES ('Quebrado', (1.00);
INSERT INTO vendas (id_funcionario, id_produto, quantidade, preco_total) VALUES (1, 1, 2);
INSERT INTO produtos (nome, preco) VALUES ('Pastel', 7.00);
`
	stmts, skipped := memdb.ParseSeed(script)

	require.Len(t, stmts, 2)
	assert.Equal(t, "Coxinha", stmts[0].Rows[0]["nome"])
	assert.Equal(t, "Pastel", stmts[1].Rows[0]["nome"])

	require.Len(t, skipped, 2)
	var mt *memdb.MalformedTupleError
	require.ErrorAs(t, skipped[0], &mt)
	assert.Equal(t, "produtos", mt.Table)
	require.ErrorAs(t, skipped[1], &mt)
	assert.Equal(t, "vendas", mt.Table)
}

func TestParseSeed_ComillaSinCerrarAlFinal(t *testing.T) {
	stmts, skipped := memdb.ParseSeed(`INSERT INTO produtos (nome, preco) VALUES ('Coxinha', 6);
INSERT INTO produtos (nome, preco) VALUES ('Roto, 2);`)

	require.Len(t, stmts, 1)
	require.Len(t, skipped, 1)
	assert.Contains(t, skipped[0].Error(), "comilla sin cerrar")
}

func TestParseSeed_IgnoraOtrosStatements(t *testing.T) {
	script := `
CREATE TABLE produtos (id SERIAL PRIMARY KEY, nome TEXT);
SET client_encoding = 'UTF8';
/* bloque; con punto y coma */
INSERT INTO public."produtos" ("nome") VALUES ('Água') ON CONFLICT DO NOTHING;
`
	stmts, skipped := memdb.ParseSeed(script)
	require.Empty(t, skipped)
	require.Len(t, stmts, 1)
	assert.Equal(t, "produtos", stmts[0].Table)
	assert.Equal(t, []string{"nome"}, stmts[0].Columns)
	assert.Equal(t, "Água", stmts[0].Rows[0]["nome"])
}

func TestParseSeed_Vacio(t *testing.T) {
	stmts, skipped := memdb.ParseSeed("  \n-- nada por aquí\n")
	assert.Empty(t, stmts)
	assert.Empty(t, skipped)
}

func TestDecodeSeed_Windows1252(t *testing.T) {
	// "Pão" en Windows-1252: 0xE3 = ã
	text, err := memdb.DecodeSeed([]byte("insert into produtos (nome) values ('P\xe3o');"))
	require.NoError(t, err)
	assert.Contains(t, text, "'Pão'")

	text, err = memdb.DecodeSeed([]byte("\xef\xbb\xbfinsert into produtos (nome) values ('Pão');"))
	require.NoError(t, err)
	assert.Equal(t, "insert into produtos (nome) values ('Pão');", text, "BOM removido, UTF-8 intacto")
}
