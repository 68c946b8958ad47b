// seedcheck valida el script de datos que usa el respaldo en memoria cuando PostgreSQL no responde.
// Reporta las filas que se cargarían por tabla, las tablas ignoradas y los INSERT omitidos.
//
// Uso: go run ./cmd/seedcheck [ruta/cantina_escolar.sql]
// Sin argumento prueba las rutas por defecto en orden (db/cantina_escolar.sql, cantina_escolar.sql, ...).
// Sale con código 1 si el script no existe o no produce ninguna fila.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jhoicas/cantina-api/internal/infrastructure/memdb"
	"github.com/jhoicas/cantina-api/pkg/config"
)

func main() {
	paths := config.DefaultSeedPaths
	if len(os.Args) > 1 {
		paths = os.Args[1:2]
	}

	path, raw, err := firstExisting(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer script: %v\n", err)
		os.Exit(1)
	}
	script, err := memdb.DecodeSeed(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar %s: %v\n", path, err)
		os.Exit(1)
	}

	stmts, skipped := memdb.ParseSeed(script)
	for _, e := range skipped {
		fmt.Fprintf(os.Stderr, "omitido: %v\n", e)
	}

	rep := memdb.NewStore().Load(stmts)
	fmt.Printf("script: %s\n", path)

	tables := make([]string, 0, len(rep.Rows))
	for t := range rep.Rows {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		fmt.Printf("  %-14s %d\n", t, rep.Rows[t])
	}
	if len(rep.Ignored) > 0 {
		fmt.Printf("tablas ignoradas: %v\n", rep.Ignored)
	}
	if rep.Total() == 0 {
		fmt.Fprintln(os.Stderr, "El script no produce filas: el respaldo quedaría no disponible")
		os.Exit(1)
	}
	fmt.Printf("total: %d filas\n", rep.Total())
}

func firstExisting(paths []string) (string, []byte, error) {
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err == nil {
			return p, raw, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return p, nil, err
		}
	}
	return "", nil, fmt.Errorf("ninguna ruta existe: %v", paths)
}
