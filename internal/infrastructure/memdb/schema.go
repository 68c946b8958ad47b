package memdb

// Tablas emuladas (mismos nombres que en PostgreSQL, ver db/schema.sql).
const (
	TableEmployees = "funcionarios"
	TableProducts  = "produtos"
	TableStock     = "estoque"
	TableSales     = "vendas"
)

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindDecimal
)

// columns tipos por columna, equivalentes a BIGINT / NUMERIC / TEXT del esquema real.
var columns = map[string]map[string]columnKind{
	TableEmployees: {
		"id": kindInt, "nome": kindText, "tipo": kindText, "email": kindText, "senha": kindText,
	},
	TableProducts: {
		"id": kindInt, "id_estoque": kindInt, "nome": kindText, "preco": kindDecimal,
	},
	TableStock: {
		"id": kindInt, "id_produto": kindInt, "quantidade": kindInt,
	},
	TableSales: {
		"id": kindInt, "id_funcionario": kindInt, "id_produto": kindInt, "quantidade": kindInt, "preco_total": kindDecimal,
	},
}

// Tables devuelve las tablas del esquema de la cantina.
func Tables() []string {
	return []string{TableEmployees, TableProducts, TableStock, TableSales}
}

// normalize ajusta un valor al tipo de su columna, como haría el cast implícito de PostgreSQL.
// Valores que no convierten se guardan tal cual.
func normalize(table, column string, v any) any {
	if v == nil {
		return nil
	}
	kind, ok := columns[table][column]
	if !ok {
		return v
	}
	switch kind {
	case kindInt:
		if n, ok := toInt64(v); ok {
			return n
		}
	case kindDecimal:
		if d, ok := toDecimal(v); ok {
			return d
		}
	case kindText:
		return toText(v)
	}
	return v
}
