package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"poolcost/core/input"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// Record is a stored rate table. Document holds a partial JSON override
// that is merged onto the built-in defaults when loaded.
type Record struct {
	ID          string    `json:"id"`
	FranchiseID string    `json:"franchiseId"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	IsDefault   bool      `json:"isDefault"`
	Document    []byte    `json:"-"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Meta returns the identity of the record
func (r *Record) Meta() Meta {
	return Meta{ID: r.ID, FranchiseID: r.FranchiseID, Name: r.Name, Version: r.Version}
}

// Store persists rate tables per franchise. Get and GetDefault return a
// TypeNotFound error when nothing matches.
type Store interface {
	List(ctx context.Context, franchiseID string) ([]Record, error)
	Get(ctx context.Context, franchiseID, id string) (*Record, error)
	GetDefault(ctx context.Context, franchiseID string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
}

// Provider serves rate-table snapshots from a store through a TTL cache
type Provider struct {
	store Store
	cache *Cache
	now   func() time.Time
}

// NewProvider creates a provider. A nil store serves built-in defaults.
func NewProvider(store Store, policy *CachePolicy) *Provider {
	return &Provider{
		store: store,
		cache: NewCache(policy),
		now:   time.Now,
	}
}

func cacheKey(franchiseID, id string) string {
	return franchiseID + "/" + id
}

// Current returns the franchise's default table, falling back to the
// built-in snapshot when the store has none.
func (p *Provider) Current(ctx context.Context, franchiseID string) (*Table, error) {
	if franchiseID == "" {
		franchiseID = DefaultFranchise
	}
	key := cacheKey(franchiseID, "")
	if t, ok := p.cache.Get(key); ok {
		return t, nil
	}

	var table *Table
	if p.store == nil {
		table = DefaultTable()
	} else {
		rec, err := p.store.GetDefault(ctx, franchiseID)
		switch {
		case errors.IsType(err, errors.TypeNotFound):
			logging.Debug("no default rate table, using built-in", zap.String("franchise", franchiseID))
			table = DefaultTable()
		case err != nil:
			return nil, err
		default:
			if table, err = p.parse(rec); err != nil {
				return nil, err
			}
		}
	}

	p.cache.Put(key, table)
	return table, nil
}

// Select returns a specific table
func (p *Provider) Select(ctx context.Context, franchiseID, id string) (*Table, error) {
	if id == "" {
		return p.Current(ctx, franchiseID)
	}
	if franchiseID == "" {
		franchiseID = DefaultFranchise
	}
	key := cacheKey(franchiseID, id)
	if t, ok := p.cache.Get(key); ok {
		return t, nil
	}
	if p.store == nil {
		return nil, errors.NotFound("rate table", id)
	}

	rec, err := p.store.Get(ctx, franchiseID, id)
	if err != nil {
		return nil, err
	}
	table, err := p.parse(rec)
	if err != nil {
		return nil, err
	}
	p.cache.Put(key, table)
	return table, nil
}

// List returns the franchise's stored tables. Listing is not cached.
func (p *Provider) List(ctx context.Context, franchiseID string) ([]Record, error) {
	if p.store == nil {
		return nil, nil
	}
	return p.store.List(ctx, franchiseID)
}

// Publish validates and saves a table, then drops the franchise's cached
// snapshots. Concurrent publishes are last write wins.
func (p *Provider) Publish(ctx context.Context, rec *Record) (*Table, error) {
	if p.store == nil {
		return nil, errors.New(errors.TypeStore, "no rate-table store configured")
	}
	if rec.FranchiseID == "" {
		rec.FranchiseID = DefaultFranchise
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.UpdatedAt = p.now().UTC()

	table, err := p.parse(rec)
	if err != nil {
		return nil, err
	}
	if err := p.store.Save(ctx, rec); err != nil {
		return nil, err
	}

	n := p.Refresh(rec.FranchiseID)
	logging.Info("rate table published",
		zap.String("franchise", rec.FranchiseID),
		zap.String("id", rec.ID),
		zap.String("hash", table.Hash()),
		zap.Int("invalidated", n))
	return table, nil
}

// Refresh drops cached snapshots of a franchise
func (p *Provider) Refresh(franchiseID string) int {
	return p.cache.InvalidatePrefix(franchiseID + "/")
}

// CacheStats exposes cache counters
func (p *Provider) CacheStats() CacheStats {
	return p.cache.Stats()
}

func (p *Provider) parse(rec *Record) (*Table, error) {
	table, err := Parse(rec.Meta(), rec.Document, input.FormatJSON)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeRateTable, err, "rate table %s/%s", rec.FranchiseID, rec.ID)
	}
	return table, nil
}
