package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cantina-api/pkg/config"
)

// Row fila de resultado: columna -> valor (int64, decimal.Decimal, string o nil).
type Row = map[string]any

// Querier ejecuta una consulta con parámetros posicionales y devuelve las filas materializadas.
// Lo implementan Backend, el dispatcher en memoria y la fachada datasource.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) ([]Row, error)
}

// Backend acceso a PostgreSQL sobre un pool pgx.
type Backend struct {
	pool *pgxpool.Pool
}

var _ Querier = (*Backend)(nil)

// Connect crea el pool y hace un único intento de conexión acotado por cfg.ProbeTimeout.
// Cualquier error (DSN, red, autenticación, ping) significa backend inalcanzable.
func Connect(ctx context.Context, cfg config.DBConfig) (*Backend, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	poolConfig.ConnConfig.ConnectTimeout = timeout
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(probeCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(probeCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return &Backend{pool: pool}, nil
}

// Query ejecuta sql y recolecta todas las filas como mapas.
func (b *Backend) Query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := b.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapPgError(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, wrapPgError(err)
	}
	if out == nil {
		out = []Row{}
	}
	return out, nil
}

// Close libera el pool.
func (b *Backend) Close() {
	b.pool.Close()
}

// wrapPgError agrega el SQLSTATE al mensaje cuando el error viene del servidor.
func wrapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres %s: %w", pgErr.Code, err)
	}
	return err
}
