package db

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"poolcost/core/pricing"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// PoolConfig sizes the postgres connection pool
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// DefaultPoolConfig returns the pool sizing used by the server
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxConns: 10, MinConns: 2, MaxConnLifetime: time.Hour}
}

// PostgresStore keeps rate tables in the shared franchise_pricing_models
// table
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pool, checks it and ensures the schema exists
func ConnectPostgres(ctx context.Context, dsn string, cfg PoolConfig) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New(errors.TypeConfig, "postgres DSN is empty")
	}
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "parse postgres DSN", err)
	}
	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		config.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		config.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Store("create postgres pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Store("postgres connection failed", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logging.Info("postgres rate-table store connected", zap.Int32("maxConns", config.MaxConns))
	return s, nil
}

// NewPostgresStore wraps an existing pool. The schema must already exist.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Close releases the pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS franchise_pricing_models (
			id           TEXT PRIMARY KEY,
			franchise_id TEXT NOT NULL,
			name         TEXT NOT NULL,
			version      TEXT NOT NULL DEFAULT 'v1',
			pricing_json JSONB NOT NULL DEFAULT '{}'::jsonb,
			is_default   BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_by   TEXT
		)`)
	if err != nil {
		return errors.Store("create franchise_pricing_models", err)
	}
	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_pricing_models_franchise
		ON franchise_pricing_models (franchise_id, is_default, updated_at)`)
	if err != nil {
		return errors.Store("create pricing model index", err)
	}
	return nil
}

const selectPostgres = `
	SELECT id, franchise_id, name, version, pricing_json::text, is_default, updated_at, COALESCE(updated_by, '')
	FROM franchise_pricing_models`

// List returns a franchise's tables, default first then newest
func (s *PostgresStore) List(ctx context.Context, franchiseID string) ([]pricing.Record, error) {
	rows, err := s.pool.Query(ctx, selectPostgres+`
		WHERE franchise_id = $1
		ORDER BY is_default DESC, updated_at DESC`, franchiseID)
	if err != nil {
		return nil, errors.Store("list rate tables", err)
	}
	defer rows.Close()

	var out []pricing.Record
	for rows.Next() {
		rec, err := scanPostgres(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Store("list rate tables", err)
	}
	return out, nil
}

// Get returns one table
func (s *PostgresStore) Get(ctx context.Context, franchiseID, id string) (*pricing.Record, error) {
	rec, err := scanPostgres(s.pool.QueryRow(ctx, selectPostgres+`
		WHERE franchise_id = $1 AND id = $2`, franchiseID, id))
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NotFound("rate table", id)
	}
	return rec, err
}

// GetDefault returns the franchise's default table, or its most recently
// updated one when none is flagged
func (s *PostgresStore) GetDefault(ctx context.Context, franchiseID string) (*pricing.Record, error) {
	rec, err := scanPostgres(s.pool.QueryRow(ctx, selectPostgres+`
		WHERE franchise_id = $1
		ORDER BY is_default DESC, updated_at DESC
		LIMIT 1`, franchiseID))
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NotFound("default rate table", franchiseID)
	}
	return rec, err
}

// Save upserts a table inside a transaction
func (s *PostgresStore) Save(ctx context.Context, rec *pricing.Record) error {
	prepare(rec)
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Store("begin save", err)
	}
	defer tx.Rollback(ctx)

	if rec.IsDefault {
		if _, err := tx.Exec(ctx, `
			UPDATE franchise_pricing_models SET is_default = FALSE
			WHERE franchise_id = $1 AND id <> $2`, rec.FranchiseID, rec.ID); err != nil {
			return errors.Store("clear default rate table", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO franchise_pricing_models
			(id, franchise_id, name, version, pricing_json, is_default, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, NULLIF($8, ''))
		ON CONFLICT (id) DO UPDATE SET
			franchise_id = EXCLUDED.franchise_id,
			name = EXCLUDED.name,
			version = EXCLUDED.version,
			pricing_json = EXCLUDED.pricing_json,
			is_default = EXCLUDED.is_default,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`,
		rec.ID, rec.FranchiseID, rec.Name, rec.Version, string(rec.Document),
		rec.IsDefault, rec.UpdatedAt, rec.UpdatedBy)
	if err != nil {
		return errors.Store("save rate table", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Store("commit save", err)
	}
	return nil
}

// Delete removes a table
func (s *PostgresStore) Delete(ctx context.Context, franchiseID, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM franchise_pricing_models WHERE franchise_id = $1 AND id = $2`, franchiseID, id)
	if err != nil {
		return errors.Store("delete rate table", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("rate table", id)
	}
	return nil
}

func scanPostgres(row pgx.Row) (*pricing.Record, error) {
	var (
		rec pricing.Record
		doc string
	)
	err := row.Scan(&rec.ID, &rec.FranchiseID, &rec.Name, &rec.Version, &doc, &rec.IsDefault, &rec.UpdatedAt, &rec.UpdatedBy)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Store("scan rate table", err)
	}
	rec.Document = []byte(doc)
	return &rec, nil
}

var _ pricing.Store = (*PostgresStore)(nil)
