package memdb

import (
	"errors"
	"fmt"
	"maps"
	"sync"
)

// ErrUnknownTable la tabla no existe en el store.
var ErrUnknownTable = errors.New("tabla desconocida")

// Store tablas en memoria con identidad autoincremental por tabla.
// Cada tabla tiene su propio mutex: el contador de identidad y el slice de filas cambian juntos.
type Store struct {
	tables map[string]*table
}

type table struct {
	name   string
	mu     sync.Mutex
	lastID int64
	rows   []Row
}

// NewStore crea el store con las tablas indicadas (por defecto, las de la cantina).
func NewStore(tables ...string) *Store {
	if len(tables) == 0 {
		tables = Tables()
	}
	s := &Store{tables: make(map[string]*table, len(tables))}
	for _, name := range tables {
		s.tables[name] = &table{name: name}
	}
	return s
}

// Insert agrega una fila y devuelve la identidad asignada (1, 2, 3... por tabla, nunca reutilizada).
// Un "id" presente en fields se reemplaza por la identidad asignada.
func (s *Store) Insert(tableName string, fields Row) (int64, error) {
	t, ok := s.tables[tableName]
	if !ok {
		return 0, fmt.Errorf("insert %s: %w", tableName, ErrUnknownTable)
	}
	row := make(Row, len(fields)+1)
	for col, v := range fields {
		row[col] = normalize(tableName, col, v)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastID++
	row["id"] = t.lastID
	t.rows = append(t.rows, row)
	return t.lastID, nil
}

// Filter devuelve copias de las filas que cumplen pred, en orden de inserción. pred nil = todas.
func (s *Store) Filter(tableName string, pred func(Row) bool) []Row {
	t, ok := s.tables[tableName]
	if !ok {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Row
	for _, r := range t.rows {
		if pred == nil || pred(r) {
			out = append(out, maps.Clone(r))
		}
	}
	return out
}

// Update aplica patch a la primera fila que cumple pred. La identidad no se modifica.
func (s *Store) Update(tableName string, pred func(Row) bool, patch Row) bool {
	t, ok := s.tables[tableName]
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if !pred(r) {
			continue
		}
		for col, v := range patch {
			if col == "id" {
				continue
			}
			r[col] = normalize(tableName, col, v)
		}
		return true
	}
	return false
}

// Remove elimina todas las filas que cumplen pred y devuelve cuántas fueron.
func (s *Store) Remove(tableName string, pred func(Row) bool) int {
	t, ok := s.tables[tableName]
	if !ok {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.rows[:0]
	removed := 0
	for _, r := range t.rows {
		if pred(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	clear(t.rows[len(kept):])
	t.rows = kept
	return removed
}

// Count número de filas de la tabla.
func (s *Store) Count(tableName string) int {
	t, ok := s.tables[tableName]
	if !ok {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// LoadReport resultado de cargar el script de datos.
type LoadReport struct {
	Rows    map[string]int // filas insertadas por tabla
	Ignored []string       // tablas del script que no existen en el store
}

// Total filas insertadas en todas las tablas.
func (r LoadReport) Total() int {
	n := 0
	for _, c := range r.Rows {
		n += c
	}
	return n
}

// Load inserta las filas de los statements en orden. Tablas desconocidas se ignoran.
func (s *Store) Load(stmts []Statement) LoadReport {
	rep := LoadReport{Rows: make(map[string]int)}
	for _, st := range stmts {
		if _, ok := s.tables[st.Table]; !ok {
			rep.Ignored = append(rep.Ignored, st.Table)
			continue
		}
		for _, row := range st.Rows {
			if _, err := s.Insert(st.Table, row); err == nil {
				rep.Rows[st.Table]++
			}
		}
	}
	return rep
}

// where predicado "col = valor" con la semántica de comparación de SQL.
func where(col string, v any) func(Row) bool {
	return func(r Row) bool { return sameValue(r[col], v) }
}
