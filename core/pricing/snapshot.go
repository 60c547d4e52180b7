package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"poolcost/core/input"
	"poolcost/internal/errors"
)

// Meta identifies a rate table
type Meta struct {
	ID          string `json:"id"`
	FranchiseID string `json:"franchiseId"`
	Name        string `json:"name"`
	Version     string `json:"version"`
}

// DefaultFranchise scopes the built-in table
const DefaultFranchise = "default"

// Table is an immutable rate-table snapshot. Edits go through With,
// which returns a new snapshot and leaves the receiver untouched.
type Table struct {
	meta  Meta
	rates Rates
	tree  map[string]any
	hash  string
}

// DefaultTable returns the built-in snapshot
func DefaultTable() *Table {
	t, err := NewTable(Meta{ID: "builtin", FranchiseID: DefaultFranchise, Name: "Built-in defaults", Version: "1"}, Default())
	if err != nil {
		panic("built-in rate table is invalid: " + err.Error())
	}
	return t
}

// NewTable validates rates and seals them into a snapshot
func NewTable(meta Meta, rates Rates) (*Table, error) {
	tree, err := input.ToTree(rates)
	if err != nil {
		return nil, err
	}
	return seal(meta, tree)
}

// Build merges a partial override tree onto the built-in defaults
func Build(meta Meta, override map[string]any) (*Table, error) {
	base, err := input.ToTree(Default())
	if err != nil {
		return nil, err
	}
	return seal(meta, Merge(base, override))
}

// Parse decodes a partial rate-table document and builds a snapshot
func Parse(meta Meta, data []byte, format input.Format) (*Table, error) {
	override, err := input.Tree(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.TypeRateTable, "parse rate table", err)
	}
	return Build(meta, override)
}

// LoadFile reads a rate-table document from disk
func LoadFile(meta Meta, path string) (*Table, error) {
	var override map[string]any
	if err := input.ReadFile(path, &override); err != nil {
		return nil, err
	}
	return Build(meta, override)
}

// With returns a new snapshot with override merged onto this one
func (t *Table) With(override map[string]any) (*Table, error) {
	return seal(t.meta, Merge(t.tree, override))
}

// WithMeta returns a copy of the snapshot under a different identity
func (t *Table) WithMeta(meta Meta) *Table {
	cp := *t
	cp.meta = meta
	return &cp
}

func seal(meta Meta, tree map[string]any) (*Table, error) {
	var rates Rates
	if err := input.FromTree(tree, &rates); err != nil {
		return nil, errors.Wrap(errors.TypeRateTable, "decode rate table", err)
	}
	if err := Validate(&rates); err != nil {
		return nil, err
	}

	// Re-derive the tree from the typed rates so unknown keys are dropped
	// and the hash only covers what calculation can see.
	canonical, err := input.ToTree(rates)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		return nil, errors.Internal("hash rate table", err)
	}
	sum := sha256.Sum256(data)

	return &Table{
		meta:  meta,
		rates: rates,
		tree:  canonical,
		hash:  hex.EncodeToString(sum[:]),
	}, nil
}

// Meta returns the table identity
func (t *Table) Meta() Meta { return t.meta }

// Hash is the sha256 of the canonical JSON form
func (t *Table) Hash() string { return t.hash }

// Rates exposes the typed rates. Callers must treat them as read-only.
func (t *Table) Rates() *Rates { return &t.rates }

// Tree returns a deep copy of the JSON-shaped tree
func (t *Table) Tree() map[string]any {
	return clone(t.tree).(map[string]any)
}

// Document renders the table as indented JSON
func (t *Table) Document() ([]byte, error) {
	return json.MarshalIndent(t.tree, "", "  ")
}

// Lookup walks path through the tree. Numeric segments index arrays.
func (t *Table) Lookup(path ...string) (any, bool) {
	var node any = t.tree
	for _, seg := range path {
		switch n := node.(type) {
		case map[string]any:
			v, ok := n[seg]
			if !ok {
				return nil, false
			}
			node = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			node = n[i]
		default:
			return nil, false
		}
	}
	return node, true
}

// Float returns the number at path, or def when the path is missing or
// not a number.
func (t *Table) Float(def float64, path ...string) float64 {
	v, ok := t.Lookup(path...)
	if !ok {
		return def
	}
	if f, ok := v.(float64); ok {
		return f
	}
	return def
}

// String returns the string at path, or def
func (t *Table) String(def string, path ...string) string {
	v, ok := t.Lookup(path...)
	if !ok {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return def
}
