// Package database manages PostgreSQL connectivity for the assessment
// history backend: a pgx pool used for health reporting, a database/sql
// handle used by the store, and the schema migration runner.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/preventive-care-server/internal/domain"
)

// DSN renders the key=value connection string for database/sql.
func DSN(cfg domain.PostgresConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, cfg.SSLMode,
	)
}

// URL renders the postgres:// connection URL used by the migration runner.
func URL(cfg domain.PostgresConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.Username), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)
}

// Pool wraps a pgxpool.Pool for liveness checks and pool statistics.
type Pool struct {
	Pool *pgxpool.Pool
	log  *logrus.Logger
}

// NewPool creates a connection pool and verifies the database is reachable.
func NewPool(ctx context.Context, cfg domain.PostgresConfig, logger *logrus.Logger) (*Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host":      cfg.Host,
		"port":      cfg.Port,
		"database":  cfg.Database,
		"max_conns": cfg.MaxOpenConns,
	}).Info("Database connection pool established")

	return &Pool{Pool: pool, log: logger}, nil
}

// Close closes the connection pool.
func (p *Pool) Close() {
	if p.Pool != nil {
		p.Pool.Close()
		p.log.Info("Database connection pool closed")
	}
}

// Health checks the database connection health.
func (p *Pool) Health(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Stats returns connection pool statistics.
func (p *Pool) Stats() *pgxpool.Stat {
	return p.Pool.Stat()
}

// OpenSQL opens a database/sql handle for the history store, applying the
// configured pool limits.
func OpenSQL(cfg domain.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
