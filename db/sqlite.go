package db

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"poolcost/core/pricing"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// SQLiteStore keeps rate tables in a local sqlite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens path, migrates it and returns a store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	logging.Info("sqlite rate-table store opened", zap.String("path", path))
	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timeLayout has fixed width so text timestamps sort chronologically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectRecord = `
	SELECT id, franchise_id, name, version, pricing_json, is_default, updated_at, COALESCE(updated_by, '')
	FROM franchise_pricing_models`

// List returns a franchise's tables, default first then newest
func (s *SQLiteStore) List(ctx context.Context, franchiseID string) ([]pricing.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`
		WHERE franchise_id = ?
		ORDER BY is_default DESC, updated_at DESC`, franchiseID)
	if err != nil {
		return nil, errors.Store("list rate tables", err)
	}
	defer rows.Close()

	var out []pricing.Record
	for rows.Next() {
		rec, err := scanSQLite(rows)
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
func (s *SQLiteStore) Get(ctx context.Context, franchiseID, id string) (*pricing.Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+`
		WHERE franchise_id = ? AND id = ?`, franchiseID, id)
	rec, err := scanSQLite(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("rate table", id)
	}
	return rec, err
}

// GetDefault returns the franchise's default table, or its most recently
// updated one when none is flagged
func (s *SQLiteStore) GetDefault(ctx context.Context, franchiseID string) (*pricing.Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+`
		WHERE franchise_id = ?
		ORDER BY is_default DESC, updated_at DESC
		LIMIT 1`, franchiseID)
	rec, err := scanSQLite(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("default rate table", franchiseID)
	}
	return rec, err
}

// Save inserts or replaces a table. A default record clears the flag on
// the franchise's other tables in the same transaction.
func (s *SQLiteStore) Save(ctx context.Context, rec *pricing.Record) error {
	prepare(rec)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Store("begin save", err)
	}
	defer tx.Rollback()

	if rec.IsDefault {
		if _, err := tx.ExecContext(ctx, `
			UPDATE franchise_pricing_models SET is_default = 0
			WHERE franchise_id = ? AND id <> ?`, rec.FranchiseID, rec.ID); err != nil {
			return errors.Store("clear default rate table", err)
		}
	}

	stamp := rec.UpdatedAt.UTC().Format(timeLayout)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO franchise_pricing_models
			(id, franchise_id, name, version, pricing_json, is_default, created_at, updated_at, updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''))
		ON CONFLICT(id) DO UPDATE SET
			franchise_id = excluded.franchise_id,
			name = excluded.name,
			version = excluded.version,
			pricing_json = excluded.pricing_json,
			is_default = excluded.is_default,
			updated_at = excluded.updated_at,
			updated_by = excluded.updated_by`,
		rec.ID, rec.FranchiseID, rec.Name, rec.Version, string(rec.Document),
		rec.IsDefault, stamp, stamp, rec.UpdatedBy)
	if err != nil {
		return errors.Store("save rate table", err)
	}
	if err := tx.Commit(); err != nil {
		return errors.Store("commit save", err)
	}
	return nil
}

// Delete removes a table
func (s *SQLiteStore) Delete(ctx context.Context, franchiseID, id string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM franchise_pricing_models WHERE franchise_id = ? AND id = ?`, franchiseID, id)
	if err != nil {
		return errors.Store("delete rate table", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("rate table", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row scanner) (*pricing.Record, error) {
	var (
		rec     pricing.Record
		doc     string
		updated string
	)
	err := row.Scan(&rec.ID, &rec.FranchiseID, &rec.Name, &rec.Version, &doc, &rec.IsDefault, &updated, &rec.UpdatedBy)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Store("scan rate table", err)
	}
	rec.Document = []byte(doc)
	if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		rec.UpdatedAt = t
	}
	return &rec, nil
}

// prepare fills the defaults every backend stores
func prepare(rec *pricing.Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FranchiseID == "" {
		rec.FranchiseID = pricing.DefaultFranchise
	}
	if rec.Version == "" {
		rec.Version = DefaultVersion
	}
	if len(rec.Document) == 0 {
		rec.Document = []byte("{}")
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
}

var _ pricing.Store = (*SQLiteStore)(nil)
