package memdb

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

var (
	selectList   = regexp.MustCompile(`^select (.+?) from `)
	whereClause  = regexp.MustCompile(`(?is)\swhere\s+(.+?)(?:\s+order\s+by\s|\s+limit\s|\s+returning\s|$)`)
	andSplit     = regexp.MustCompile(`(?i)\s+and\s+`)
	equalsCond   = regexp.MustCompile(`^\(?\s*(?:\w+\.)?(\w+)\s*=\s*(.+?)\s*\)?$`)
	placeholder  = regexp.MustCompile(`^\$(\d+)$`)
	limitClause  = regexp.MustCompile(`\slimit (\d+)`)
	likeClause   = regexp.MustCompile(`\s(i?like) \$(\d+)`)
	lowThreshold = regexp.MustCompile(`coalesce\(\s*(?:\w+\.)?quantidade\s*,\s*0\s*\)\s*<\s*(\d+)`)
	insertStmt   = regexp.MustCompile(`(?is)^insert into ([\w."]+)\s*\((.*?)\)\s*values\s*\((.*)\)(?:\s+returning\s+(.+))?$`)
	updateStmt   = regexp.MustCompile(`(?is)^update ([\w."]+)\s+set\s+(.+?)\s+where\s+.+$`)
	deleteStmt   = regexp.MustCompile(`(?is)^delete from ([\w."]+)(?:\s+\w+)?(?:\s+where\s+.+)?$`)
)

// normalizeSQL minúsculas y espacios colapsados; solo para clasificar.
func normalizeSQL(sql string) string {
	return strings.ToLower(compactSQL(sql))
}

// compactSQL colapsa espacios conservando mayúsculas (los literales no se alteran).
func compactSQL(sql string) string {
	return strings.TrimSuffix(strings.Join(strings.Fields(sql), " "), ";")
}

func hasAll(q string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(q, p) {
			return false
		}
	}
	return true
}

// param devuelve $n (1-based). Fuera de rango = NULL, igual que un parámetro no enviado.
func param(args []any, n int) any {
	if n < 1 || n > len(args) {
		return nil
	}
	return args[n-1]
}

// resolve interpreta "$n" o un literal SQL.
func resolve(token string, args []any) any {
	token = strings.TrimSpace(token)
	if m := placeholder.FindStringSubmatch(token); m != nil {
		n, _ := strconv.Atoi(m[1])
		return param(args, n)
	}
	fields, err := splitFields(token)
	if err != nil || len(fields) != 1 {
		return token
	}
	return coerce(fields[0].text, fields[0].quoted)
}

// selectNames nombres de las columnas del resultado, como los nombraría PostgreSQL:
// alias si hay "AS", nombre de la función si es una llamada, y si no la columna sin calificador.
func selectNames(q string) []string {
	m := selectList.FindStringSubmatch(q)
	if m == nil {
		return []string{"*"}
	}
	var names []string
	for _, f := range mustFields(m[1]) {
		t := strings.TrimSpace(f.text)
		switch {
		case strings.Contains(t, " as "):
			t = t[strings.LastIndex(t, " as ")+4:]
		case strings.Contains(t, "("):
			t = t[:strings.IndexByte(t, '(')]
		case strings.Contains(t, "."):
			t = t[strings.LastIndexByte(t, '.')+1:]
		}
		names = append(names, strings.Trim(strings.TrimSpace(t), `"`))
	}
	return names
}

// project reduce filas "anchas" a las columnas del SELECT.
func project(q string, wide []Row) []Row {
	names := selectNames(q)
	out := make([]Row, 0, len(wide))
	for _, w := range wide {
		row := make(Row, len(names))
		for _, n := range names {
			if n == "*" {
				for k, v := range w {
					row[k] = v
				}
				continue
			}
			if v, ok := w[n]; ok {
				row[n] = v
			}
		}
		out = append(out, row)
	}
	return out
}

// parseWhere convierte "a = $1 AND b = 'x'" en un predicado. Solo igualdades en conjunción;
// cualquier otra condición devuelve ok=false.
func parseWhere(text string, args []any) (pred func(Row) bool, ok bool) {
	m := whereClause.FindStringSubmatch(text)
	if m == nil {
		return func(Row) bool { return true }, true
	}
	type cond struct {
		col string
		val any
	}
	var conds []cond
	for _, part := range andSplit.Split(strings.TrimSpace(m[1]), -1) {
		c := equalsCond.FindStringSubmatch(strings.TrimSpace(part))
		if c == nil {
			return nil, false
		}
		conds = append(conds, cond{col: strings.ToLower(c[1]), val: resolve(c[2], args)})
	}
	return func(r Row) bool {
		for _, c := range conds {
			if !sameValue(r[c.col], c.val) {
				return false
			}
		}
		return true
	}, true
}

// parseAssignments "nome=$1, preco=$2" -> patch.
func parseAssignments(set string, args []any) (Row, bool) {
	patch := Row{}
	for _, f := range mustFields(set) {
		col, val, found := strings.Cut(f.text, "=")
		if !found {
			return nil, false
		}
		patch[columnName(col)] = resolve(val, args)
	}
	return patch, len(patch) > 0
}

func limitOf(q string, def int) int {
	if m := limitClause.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return def
}

// likeMatcher emula LIKE/ILIKE: '%' cualquier secuencia, '_' un carácter, '\' escapa.
func likeMatcher(pattern string, fold bool) func(string) bool {
	if fold {
		pattern = cases.Fold().String(pattern)
	}
	var b strings.Builder
	b.WriteString(`(?s)^`)
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			b.WriteString(`.*`)
		case r == '_':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)
	re := regexp.MustCompile(b.String())
	return func(s string) bool {
		if fold {
			s = cases.Fold().String(s)
		}
		return re.MatchString(s)
	}
}
