package memdb

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Statement un INSERT del script de datos ya descompuesto.
type Statement struct {
	Table   string
	Columns []string
	Rows    []Row
}

// MalformedTupleError indica un INSERT cuyas tuplas no se pudieron separar. El statement completo se descarta.
type MalformedTupleError struct {
	Statement int // posición (desde 1) del statement en el script
	Table     string
	Reason    string
}

func (e *MalformedTupleError) Error() string {
	return fmt.Sprintf("statement %d (%s): tupla mal formada: %s", e.Statement, e.Table, e.Reason)
}

var (
	insertHead = regexp.MustCompile(`(?is)^\s*insert\s+into\s+([^\s(]+)\s*`)
	valuesHead = regexp.MustCompile(`(?is)^\s*values\s*`)
)

// DecodeSeed devuelve el script como texto UTF-8. Los scripts editados a mano suelen
// guardarse en Windows-1252; si los bytes no son UTF-8 válido se decodifican con ese charset.
func DecodeSeed(b []byte) (string, error) {
	b = bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
	if utf8.Valid(b) {
		return string(b), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), b)
	if err != nil {
		return "", fmt.Errorf("decodificar script: %w", err)
	}
	return string(out), nil
}

// ParseSeed extrae todos los "insert into T (cols) values (...), (...);" del script, en orden.
// Es de mejor esfuerzo: un statement con tuplas mal formadas se omite y se reporta en skipped,
// el resto del script se sigue procesando. Otros tipos de statement se ignoran.
func ParseSeed(script string) (stmts []Statement, skipped []error) {
	for i, raw := range splitStatements(script) {
		m := insertHead.FindStringSubmatchIndex(raw)
		if m == nil {
			continue
		}
		table := tableName(raw[m[2]:m[3]])
		st, err := parseInsert(table, raw[m[1]:])
		if err != nil {
			skipped = append(skipped, &MalformedTupleError{Statement: i + 1, Table: table, Reason: err.Error()})
			continue
		}
		stmts = append(stmts, st)
	}
	return stmts, skipped
}

func parseInsert(table, rest string) (Statement, error) {
	st := Statement{Table: table}
	if !strings.HasPrefix(rest, "(") {
		return st, fmt.Errorf("sin lista de columnas")
	}
	colList, n, err := scanGroup(rest)
	if err != nil {
		return st, err
	}
	for _, f := range mustFields(colList) {
		st.Columns = append(st.Columns, columnName(f.text))
	}
	rest = rest[n:]
	vm := valuesHead.FindStringIndex(rest)
	if vm == nil {
		return st, fmt.Errorf("falta VALUES")
	}
	tuples, err := scanTuples(rest[vm[1]:])
	if err != nil {
		return st, err
	}
	for _, tuple := range tuples {
		fields, err := splitFields(tuple)
		if err != nil {
			return st, err
		}
		if len(fields) != len(st.Columns) {
			return st, fmt.Errorf("%d valores para %d columnas", len(fields), len(st.Columns))
		}
		row := make(Row, len(fields))
		for i, f := range fields {
			row[st.Columns[i]] = coerce(f.text, f.quoted)
		}
		st.Rows = append(st.Rows, row)
	}
	return st, nil
}

// splitStatements separa por ';' fuera de comillas y descarta comentarios "--" y "/* */".
func splitStatements(script string) []string {
	const (
		outside = iota
		inQuote
		inLineComment
		inBlockComment
	)
	var (
		out   []string
		cur   strings.Builder
		state = outside
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}
	for i := 0; i < len(script); i++ {
		c := script[i]
		switch state {
		case inLineComment:
			if c == '\n' {
				state = outside
				cur.WriteByte('\n')
			}
			continue
		case inBlockComment:
			if c == '*' && i+1 < len(script) && script[i+1] == '/' {
				state = outside
				i++
			}
			continue
		case inQuote:
			if c == '\'' {
				state = outside
			}
			cur.WriteByte(c)
			continue
		}
		switch {
		case c == '\'':
			state = inQuote
			cur.WriteByte(c)
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			state = inLineComment
			i++
		case c == '/' && i+1 < len(script) && script[i+1] == '*':
			state = inBlockComment
			i++
		case c == ';':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

// scanGroup lee un grupo "( ... )" balanceado al inicio de s respetando comillas.
// Devuelve el contenido interior y los bytes consumidos.
func scanGroup(s string) (string, int, error) {
	depth := 0
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quoted {
			if c == '\'' {
				quoted = false
			}
			continue
		}
		switch c {
		case '\'':
			quoted = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], i + 1, nil
			}
		}
	}
	if quoted {
		return "", 0, fmt.Errorf("comilla sin cerrar")
	}
	return "", 0, fmt.Errorf("paréntesis sin cerrar")
}

// scanTuples lee "(..), (..), ..." y se detiene en el primer texto que no sea otra tupla
// (p. ej. "ON CONFLICT DO NOTHING" o "RETURNING id").
func scanTuples(s string) ([]string, error) {
	var tuples []string
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '(' {
			break
		}
		inner, n, err := scanGroup(s[i:])
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, inner)
		i += n
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i < len(s) && s[i] == ',' {
			i++
			continue
		}
		break
	}
	if len(tuples) == 0 {
		return nil, fmt.Errorf("VALUES sin tuplas")
	}
	return tuples, nil
}

type field struct {
	text   string // literal sin comillas si quoted, token crudo si no
	quoted bool
}

// splitFields separa los valores de una tupla. Máquina de dos estados (fuera/dentro de comillas):
// dentro de comillas ',' y '()' son texto y "''" es una comilla literal.
func splitFields(tuple string) ([]field, error) {
	var (
		fields   []field
		raw      strings.Builder // token tal cual, para valores sin comillas
		lit      strings.Builder // contenido del literal
		segments int             // literales entre comillas dentro del campo
		bare     bool            // hay texto fuera de comillas
		inQuote  bool
		depth    int
	)
	end := func() {
		f := field{text: strings.TrimSpace(raw.String())}
		if segments == 1 && !bare {
			f = field{text: lit.String(), quoted: true}
		}
		fields = append(fields, f)
		raw.Reset()
		lit.Reset()
		segments, bare = 0, false
	}
	for i := 0; i < len(tuple); i++ {
		c := tuple[i]
		if inQuote {
			if c == '\'' {
				if i+1 < len(tuple) && tuple[i+1] == '\'' {
					lit.WriteByte('\'')
					raw.WriteString("''")
					i++
					continue
				}
				inQuote = false
			} else {
				lit.WriteByte(c)
			}
			raw.WriteByte(c)
			continue
		}
		switch {
		case c == '\'':
			inQuote = true
			segments++
			raw.WriteByte(c)
		case c == ',' && depth == 0:
			end()
		default:
			if c == '(' {
				depth++
			} else if c == ')' {
				depth--
			}
			if !isSpace(c) {
				bare = true
			}
			raw.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("comilla sin cerrar")
	}
	if depth != 0 {
		return nil, fmt.Errorf("paréntesis desbalanceados")
	}
	end()
	return fields, nil
}

// mustFields separa listas que no llevan literales (columnas, asignaciones).
func mustFields(s string) []field {
	fields, err := splitFields(s)
	if err != nil {
		return []field{{text: strings.TrimSpace(s)}}
	}
	return fields
}

func tableName(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func columnName(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), `"`))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
