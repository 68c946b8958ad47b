package memdb

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Dispatcher ejecuta contra el Store las consultas SQL que emite la aplicación.
// No es un motor SQL: reconoce un conjunto fijo de formas de consulta y reproduce
// el resultado (mismas columnas y tipos) que devolvería PostgreSQL.
type Dispatcher struct {
	store *Store
	log   zerolog.Logger
}

// NewDispatcher construye el dispatcher sobre un store ya cargado.
func NewDispatcher(store *Store, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{store: store, log: log}
}

// Store devuelve el store subyacente.
func (d *Dispatcher) Store() *Store { return d.store }

type shape struct {
	name  string
	match func(q string) bool
	run   func(d *Dispatcher, q, text string, args []any) ([]Row, error)
}

// shapes en orden de prioridad: gana la primera que coincide. Las formas específicas van antes
// que las genéricas que las contienen como subcadena: low-stock antes de product-listing
// (ambas son produtos LEFT JOIN estoque) y los COUNT antes de cualquier listado.
var shapes = []shape{
	{
		name: "authenticate",
		match: func(q string) bool {
			return strings.HasPrefix(q, "select ") && hasAll(q, " from funcionarios", "senha")
		},
		run: (*Dispatcher).authenticate,
	},
	{
		name: "low-stock",
		match: func(q string) bool {
			return hasAll(q, " from produtos", " join estoque") && lowThreshold.MatchString(q)
		},
		run: (*Dispatcher).lowStock,
	},
	{
		name:  "count-products",
		match: func(q string) bool { return hasAll(q, "count(", " from produtos") },
		run:   countOf(TableProducts),
	},
	{
		name:  "count-sales",
		match: func(q string) bool { return hasAll(q, "count(", " from vendas") },
		run:   countOf(TableSales),
	},
	{
		name: "recent-sales",
		match: func(q string) bool {
			return hasAll(q, " from vendas", " join produtos", " join funcionarios")
		},
		run: (*Dispatcher).recentSales,
	},
	{
		name: "product-listing",
		match: func(q string) bool {
			return strings.HasPrefix(q, "select ") && hasAll(q, " from produtos", " join estoque")
		},
		run: (*Dispatcher).productListing,
	},
	{
		name: "product-price",
		match: func(q string) bool {
			return strings.HasPrefix(q, "select ") && hasAll(q, " from produtos", " where ")
		},
		run: selectFrom(TableProducts),
	},
	{
		name: "stock-by-product",
		match: func(q string) bool {
			return strings.HasPrefix(q, "select ") && hasAll(q, " from estoque", "id_produto")
		},
		run: selectFrom(TableStock),
	},
	{
		name:  "insert-product",
		match: func(q string) bool { return strings.HasPrefix(q, "insert into produtos") },
		run:   (*Dispatcher).insertProduct,
	},
	{
		name:  "insert-stock",
		match: func(q string) bool { return strings.HasPrefix(q, "insert into estoque") },
		run:   insertInto(TableStock),
	},
	{
		name:  "insert-sale",
		match: func(q string) bool { return strings.HasPrefix(q, "insert into vendas") },
		run:   insertInto(TableSales),
	},
	{
		name:  "update-product",
		match: func(q string) bool { return strings.HasPrefix(q, "update produtos ") },
		run:   updateTable(TableProducts),
	},
	{
		name:  "update-stock",
		match: func(q string) bool { return strings.HasPrefix(q, "update estoque ") },
		run:   updateTable(TableStock),
	},
	{
		name:  "delete-product",
		match: func(q string) bool { return strings.HasPrefix(q, "delete from produtos") },
		run:   (*Dispatcher).deleteProduct,
	},
	{
		name:  "delete-stock",
		match: func(q string) bool { return strings.HasPrefix(q, "delete from estoque") },
		run:   deleteFrom(TableStock),
	},
}

// Classify devuelve el nombre de la forma que atendería la consulta, o "" si ninguna.
func Classify(sql string) string {
	if s := classify(normalizeSQL(sql)); s != nil {
		return s.name
	}
	return ""
}

func classify(q string) *shape {
	for i := range shapes {
		if shapes[i].match(q) {
			return &shapes[i]
		}
	}
	return nil
}

// Query ejecuta la consulta con parámetros posicionales ($1 = args[0]).
// Una consulta que no coincide con ninguna forma devuelve un resultado vacío, no un error.
func (d *Dispatcher) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := normalizeSQL(sql)
	s := classify(q)
	if s == nil {
		d.log.Warn().Str("query", q).Msg("forma de consulta no reconocida, se devuelve resultado vacío")
		return []Row{}, nil
	}
	rows, err := s.run(d, q, compactSQL(sql), args)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	d.log.Trace().Str("shape", s.name).Int("rows", len(rows)).Msg("consulta emulada")
	return rows, nil
}
