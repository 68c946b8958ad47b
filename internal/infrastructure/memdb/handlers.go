package memdb

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLowStockThreshold límite del listado de stock bajo si la consulta no lo trae.
const DefaultLowStockThreshold = 5

// DefaultRecentSalesLimit tamaño del listado de ventas recientes si la consulta no trae LIMIT.
const DefaultRecentSalesLimit = 20

// authenticate: (nome = $1 OR email = $1) AND senha = $2.
func (d *Dispatcher) authenticate(q, _ string, args []any) ([]Row, error) {
	login, secret := param(args, 1), param(args, 2)
	found := d.store.Filter(TableEmployees, func(r Row) bool {
		return (sameValue(r["nome"], login) || sameValue(r["email"], login)) && sameValue(r["senha"], secret)
	})
	return project(q, found), nil
}

// productsWithStock produtos LEFT JOIN estoque con COALESCE(quantidade, 0), ordenado por nome.
func (d *Dispatcher) productsWithStock(keep func(Row) bool) []Row {
	qty := make(map[int64]any)
	for _, s := range d.store.Filter(TableStock, nil) {
		pid, ok := toInt64(s["id_produto"])
		if !ok {
			continue
		}
		if _, seen := qty[pid]; !seen {
			qty[pid] = s["quantidade"]
		}
	}
	var out []Row
	for _, p := range d.store.Filter(TableProducts, nil) {
		id, _ := toInt64(p["id"])
		q, ok := qty[id]
		if !ok || q == nil {
			q = int64(0)
		}
		p["quantidade"] = q
		if keep == nil || keep(p) {
			out = append(out, p)
		}
	}
	sortByName(out, "nome")
	return out
}

func (d *Dispatcher) lowStock(q, _ string, _ []any) ([]Row, error) {
	threshold := int64(DefaultLowStockThreshold)
	if m := lowThreshold.FindStringSubmatch(q); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			threshold = n
		}
	}
	rows := d.productsWithStock(func(r Row) bool {
		n, _ := toInt64(r["quantidade"])
		return n < threshold
	})
	return project(q, rows), nil
}

func (d *Dispatcher) productListing(q, _ string, args []any) ([]Row, error) {
	var keep func(Row) bool
	if m := likeClause.FindStringSubmatch(q); m != nil {
		n, _ := strconv.Atoi(m[2])
		pattern := param(args, n)
		if pattern == nil {
			return []Row{}, nil
		}
		match := likeMatcher(toText(pattern), m[1] == "ilike")
		keep = func(r Row) bool { return match(toText(r["nome"])) }
	}
	return project(q, d.productsWithStock(keep)), nil
}

// recentSales vendas JOIN produtos JOIN funcionarios, de la más reciente a la más antigua.
func (d *Dispatcher) recentSales(q, _ string, _ []any) ([]Row, error) {
	limit := limitOf(q, DefaultRecentSalesLimit)
	productNames := d.namesByID(TableProducts)
	employeeNames := d.namesByID(TableEmployees)

	sales := d.store.Filter(TableSales, nil)
	out := make([]Row, 0, min(limit, len(sales)))
	for i := len(sales) - 1; i >= 0 && len(out) < limit; i-- {
		s := sales[i]
		pid, _ := toInt64(s["id_produto"])
		fid, _ := toInt64(s["id_funcionario"])
		produto, okP := productNames[pid]
		funcionario, okF := employeeNames[fid]
		if !okP || !okF {
			continue // JOIN interno: ventas huérfanas no aparecen
		}
		s["produto"] = produto
		s["funcionario"] = funcionario
		out = append(out, s)
	}
	return project(q, out), nil
}

func (d *Dispatcher) namesByID(table string) map[int64]any {
	names := make(map[int64]any)
	for _, r := range d.store.Filter(table, nil) {
		if id, ok := toInt64(r["id"]); ok {
			names[id] = r["nome"]
		}
	}
	return names
}

func countOf(table string) func(*Dispatcher, string, string, []any) ([]Row, error) {
	return func(d *Dispatcher, q, _ string, _ []any) ([]Row, error) {
		row := Row{}
		for _, name := range selectNames(q) {
			row[name] = int64(d.store.Count(table))
		}
		return []Row{row}, nil
	}
}

// selectFrom SELECT simple con igualdades en el WHERE.
func selectFrom(table string) func(*Dispatcher, string, string, []any) ([]Row, error) {
	return func(d *Dispatcher, q, text string, args []any) ([]Row, error) {
		pred, ok := parseWhere(text, args)
		if !ok {
			d.log.Warn().Str("query", q).Msg("condición WHERE no soportada")
			return []Row{}, nil
		}
		return project(q, d.store.Filter(table, pred)), nil
	}
}

func (d *Dispatcher) insert(table, q, text string, args []any) ([]Row, int64, error) {
	m := insertStmt.FindStringSubmatch(text)
	if m == nil {
		return nil, 0, fmt.Errorf("insert %s: sentencia no soportada", table)
	}
	cols := mustFields(m[2])
	vals := mustFields(m[3])
	if len(cols) != len(vals) {
		return nil, 0, fmt.Errorf("insert %s: %d columnas y %d valores", table, len(cols), len(vals))
	}
	fields := make(Row, len(cols))
	for i, c := range cols {
		v := resolve(vals[i].text, args)
		if vals[i].quoted {
			v = vals[i].text
		}
		fields[columnName(c.text)] = v
	}
	id, err := d.store.Insert(table, fields)
	if err != nil {
		return nil, 0, err
	}
	if m[4] == "" {
		return []Row{}, id, nil
	}
	inserted := d.store.Filter(table, where("id", id))
	return project("select "+normalizeSQL(m[4])+" from ", inserted), id, nil
}

func insertInto(table string) func(*Dispatcher, string, string, []any) ([]Row, error) {
	return func(d *Dispatcher, q, text string, args []any) ([]Row, error) {
		rows, _, err := d.insert(table, q, text, args)
		return rows, err
	}
}

// insertProduct inserta el produto y su registro de estoque con cantidad 0.
func (d *Dispatcher) insertProduct(q, text string, args []any) ([]Row, error) {
	rows, id, err := d.insert(TableProducts, q, text, args)
	if err != nil {
		return nil, err
	}
	if _, err := d.store.Insert(TableStock, Row{"id_produto": id, "quantidade": int64(0)}); err != nil {
		return nil, err
	}
	return rows, nil
}

func updateTable(table string) func(*Dispatcher, string, string, []any) ([]Row, error) {
	return func(d *Dispatcher, q, text string, args []any) ([]Row, error) {
		m := updateStmt.FindStringSubmatch(text)
		if m == nil {
			return nil, fmt.Errorf("update %s: sentencia no soportada", table)
		}
		patch, ok := parseAssignments(m[2], args)
		if !ok {
			return nil, fmt.Errorf("update %s: SET no soportado", table)
		}
		pred, ok := parseWhere(text, args)
		if !ok {
			return nil, fmt.Errorf("update %s: WHERE no soportado", table)
		}
		d.store.Update(table, pred, patch)
		return []Row{}, nil
	}
}

func deleteFrom(table string) func(*Dispatcher, string, string, []any) ([]Row, error) {
	return func(d *Dispatcher, q, text string, args []any) ([]Row, error) {
		if !deleteStmt.MatchString(text) {
			return nil, fmt.Errorf("delete %s: sentencia no soportada", table)
		}
		pred, ok := parseWhere(text, args)
		if !ok {
			return nil, fmt.Errorf("delete %s: WHERE no soportado", table)
		}
		d.store.Remove(table, pred)
		return []Row{}, nil
	}
}

// deleteProduct borra primero el estoque de los produtos afectados y luego los produtos.
func (d *Dispatcher) deleteProduct(q, text string, args []any) ([]Row, error) {
	pred, ok := parseWhere(text, args)
	if !ok {
		return nil, fmt.Errorf("delete %s: WHERE no soportado", TableProducts)
	}
	for _, p := range d.store.Filter(TableProducts, pred) {
		d.store.Remove(TableStock, where("id_produto", p["id"]))
	}
	d.store.Remove(TableProducts, pred)
	return []Row{}, nil
}

// sortByName ordena con intercalación portuguesa (como ORDER BY nome con collation pt_BR);
// estable para que empates conserven el orden de inserción.
func sortByName(rows []Row, col string) {
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(toText(rows[i][col]), toText(rows[j][col])) < 0
	})
}
