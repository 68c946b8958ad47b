// Package datasource decide una sola vez, al arrancar, si los datos se sirven desde PostgreSQL
// o desde la emulación en memoria, y oculta esa decisión detrás de Query.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/cantina-api/internal/infrastructure/memdb"
)

// Row fila de resultado, igual en ambos modos.
type Row = map[string]any

// Mode estado de la fuente de datos.
type Mode int

const (
	ModeUnprobed Mode = iota
	ModeLive
	ModeFallbackPending
	ModeFallbackActive
	ModeFallbackUnavailable
)

func (m Mode) String() string {
	switch m {
	case ModeUnprobed:
		return "unprobed"
	case ModeLive:
		return "live"
	case ModeFallbackPending:
		return "fallback_pending"
	case ModeFallbackActive:
		return "fallback_active"
	case ModeFallbackUnavailable:
		return "fallback_unavailable"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

var (
	// ErrSeedMissing ninguna de las rutas candidatas del script existe.
	ErrSeedMissing = errors.New("script de datos no encontrado")
	// ErrSeedUnparseable el script existe pero no produjo ninguna fila.
	ErrSeedUnparseable = errors.New("script de datos sin inserts utilizables")
)

// Backend conexión real (postgres.Backend).
type Backend interface {
	Query(ctx context.Context, sql string, args ...any) ([]Row, error)
	Close()
}

// Connector abre el backend real con un único intento acotado por ctx.
type Connector func(ctx context.Context) (Backend, error)

// Options configuración de la fachada.
type Options struct {
	Connector    Connector
	ProbeTimeout time.Duration // 0 = 3s
	SeedPaths    []string      // rutas candidatas del script, en orden
}

// Source fachada de acceso a datos. Segura para uso concurrente.
type Source struct {
	opts Options
	log  zerolog.Logger

	once  sync.Once
	ready chan struct{}

	// escritos una sola vez antes de cerrar ready
	mode     Mode
	live     Backend
	fallback *memdb.Dispatcher
}

// New construye la fachada sin resolver. Hay que llamar Init antes de servir peticiones.
func New(opts Options, log zerolog.Logger) *Source {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 3 * time.Second
	}
	return &Source{
		opts:  opts,
		log:   log,
		ready: make(chan struct{}),
	}
}

// Init ejecuta la prueba de conexión exactamente una vez. Llamadas concurrentes o posteriores
// esperan la primera resolución. Ningún resultado de la prueba es fatal.
func (s *Source) Init(ctx context.Context) {
	s.once.Do(func() {
		defer close(s.ready)
		s.mode = s.probe(ctx)
	})
}

func (s *Source) probe(ctx context.Context) Mode {
	if s.opts.Connector != nil {
		probeCtx, cancel := context.WithTimeout(ctx, s.opts.ProbeTimeout)
		backend, err := s.opts.Connector(probeCtx)
		cancel()
		if err == nil {
			s.live = backend
			s.log.Info().Str("mode", ModeLive.String()).Msg("PostgreSQL disponible")
			return ModeLive
		}
		s.log.Warn().Err(err).Dur("timeout", s.opts.ProbeTimeout).
			Str("mode", ModeFallbackPending.String()).
			Msg("PostgreSQL inalcanzable, se usa el respaldo en memoria")
	} else {
		s.log.Warn().Str("mode", ModeFallbackPending.String()).Msg("sin conector de PostgreSQL, se usa el respaldo en memoria")
	}

	dispatcher, err := s.loadFallback()
	if err != nil {
		s.log.Error().Err(err).Strs("seed_paths", s.opts.SeedPaths).
			Str("mode", ModeFallbackUnavailable.String()).
			Msg("respaldo en memoria no disponible, las consultas devolverán resultados vacíos")
		return ModeFallbackUnavailable
	}
	s.fallback = dispatcher
	return ModeFallbackActive
}

func (s *Source) loadFallback() (*memdb.Dispatcher, error) {
	path, raw, err := readSeed(s.opts.SeedPaths)
	if err != nil {
		return nil, err
	}
	script, err := memdb.DecodeSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	stmts, skipped := memdb.ParseSeed(script)
	for _, e := range skipped {
		s.log.Warn().Err(e).Str("seed", path).Msg("insert omitido")
	}
	if len(stmts) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrSeedUnparseable)
	}

	store := memdb.NewStore()
	rep := store.Load(stmts)
	if rep.Total() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrSeedUnparseable)
	}
	if len(rep.Ignored) > 0 {
		s.log.Debug().Strs("tables", rep.Ignored).Msg("tablas del script ignoradas")
	}
	s.log.Info().Str("seed", path).Int("rows", rep.Total()).
		Interface("tables", rep.Rows).
		Str("mode", ModeFallbackActive.String()).
		Msg("respaldo en memoria cargado")
	return memdb.NewDispatcher(store, s.log.With().Str("component", "memdb").Logger()), nil
}

// readSeed devuelve el primer script existente entre las rutas candidatas.
func readSeed(paths []string) (string, []byte, error) {
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err == nil {
			return p, raw, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return p, nil, fmt.Errorf("leer %s: %w", p, err)
		}
	}
	return "", nil, ErrSeedMissing
}

// Query ejecuta sql con parámetros posicionales ($1 = args[0]). Espera a que Init resuelva el modo
// (o a que ctx termine). Sin respaldo disponible devuelve un resultado vacío, no un error.
func (s *Source) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	switch s.mode {
	case ModeLive:
		return s.live.Query(ctx, sql, args...)
	case ModeFallbackActive:
		return s.fallback.Query(ctx, sql, args...)
	default:
		return []Row{}, nil
	}
}

// Close libera la conexión real si la hay. Es seguro llamarlo aunque Init no se haya ejecutado.
func (s *Source) Close() {
	select {
	case <-s.ready:
	default:
		return
	}
	if s.live != nil {
		s.live.Close()
	}
}

// Ready indica si el modo ya fue resuelto (para /health).
func (s *Source) Ready() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Mode modo resuelto. Antes de Init devuelve ModeUnprobed.
func (s *Source) Mode() Mode {
	if !s.Ready() {
		return ModeUnprobed
	}
	return s.mode
}
