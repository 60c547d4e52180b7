package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"poolcost/core/pricing"
	"poolcost/internal/config"
	"poolcost/internal/errors"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "rates.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestSQLiteRoundTrip proves a saved record reads back unchanged
func TestSQLiteRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	rec := &pricing.Record{
		ID:          "spring",
		FranchiseID: "f1",
		Name:        "Spring pricing",
		Version:     "3",
		IsDefault:   true,
		Document:    []byte(`{"permit":{"poolOnly":925}}`),
		UpdatedBy:   "ops@example.com",
		UpdatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "f1", "spring")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != rec.Name || got.Version != "3" || !got.IsDefault || got.UpdatedBy != rec.UpdatedBy {
		t.Errorf("record mismatch: %+v", got)
	}
	if string(got.Document) != string(rec.Document) {
		t.Errorf("document = %s", got.Document)
	}
	if !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("updated at = %v", got.UpdatedAt)
	}

	if _, err := s.Get(ctx, "f2", "spring"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("other franchise: got %v", err)
	}
}

func TestSQLiteDefaults(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.GetDefault(ctx, "f1"); !errors.IsType(err, errors.TypeNotFound) {
		t.Fatalf("empty store: got %v", err)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []pricing.Record{
		{ID: "a", FranchiseID: "f1", Name: "A", UpdatedAt: base},
		{ID: "b", FranchiseID: "f1", Name: "B", UpdatedAt: base.Add(time.Hour)},
	}
	for i := range records {
		if err := s.Save(ctx, &records[i]); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	// newest wins while nothing is flagged
	def, err := s.GetDefault(ctx, "f1")
	if err != nil || def.ID != "b" {
		t.Fatalf("GetDefault = %+v, %v", def, err)
	}

	records[0].IsDefault = true
	records[0].UpdatedAt = base.Add(2 * time.Hour)
	if err := s.Save(ctx, &records[0]); err != nil {
		t.Fatalf("Save: %v", err)
	}
	records[1].IsDefault = true
	records[1].UpdatedAt = base.Add(3 * time.Hour)
	if err := s.Save(ctx, &records[1]); err != nil {
		t.Fatalf("Save: %v", err)
	}

	list, err := s.List(ctx, "f1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b" || !list[0].IsDefault || list[1].IsDefault {
		t.Errorf("expected b as the only default, got %+v", list)
	}
	if list[0].Version != DefaultVersion || string(list[1].Document) != "{}" {
		t.Errorf("defaults not filled: %+v", list)
	}
}

func TestSQLiteDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	rec := &pricing.Record{FranchiseID: "f1", Name: "Temp"}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("save should assign an id")
	}
	if err := s.Delete(ctx, "f1", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "f1", rec.ID); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("second delete: got %v", err)
	}
}

// TestProviderOverSQLite proves a published table is served from sqlite
func TestProviderOverSQLite(t *testing.T) {
	s := openStore(t)
	p := pricing.NewProvider(s, nil)
	ctx := context.Background()

	published, err := p.Publish(ctx, &pricing.Record{
		FranchiseID: "f1",
		Name:        "Summer",
		IsDefault:   true,
		Document:    []byte(`{"layout": {"siltFencing": 650}}`),
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	current, err := p.Current(ctx, "f1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current.Hash() != published.Hash() || current.Rates().Layout.SiltFencing != 650 {
		t.Errorf("provider did not serve the stored table")
	}

	fresh := pricing.NewProvider(s, nil)
	again, err := fresh.Current(ctx, "f1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if again.Hash() != published.Hash() {
		t.Error("stored document did not rebuild the same snapshot")
	}
}

func TestImporterSkipsDuplicates(t *testing.T) {
	s := openStore(t)
	im := NewImporter(pricing.NewProvider(s, nil))
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte("permit:\n  poolOnly: 990\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := im.Import(ctx, ImportRequest{Path: path, FranchiseID: "f1", Name: "Fall", SetDefault: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if first.Skipped || first.Record.ID == "" {
		t.Fatalf("first import = %+v", first)
	}

	second, err := im.Import(ctx, ImportRequest{Path: path, FranchiseID: "f1", Name: "Fall again"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !second.Skipped || second.Record.ID != first.Record.ID {
		t.Errorf("duplicate document was stored again: %+v", second)
	}

	list, _ := s.List(ctx, "f1")
	if len(list) != 1 {
		t.Errorf("expected 1 stored table, got %d", len(list))
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte(`{"markup": {"targetMargin": -1}}`), 0o644)
	if _, err := im.Import(ctx, ImportRequest{Path: bad, FranchiseID: "f1"}); err == nil {
		t.Error("expected invalid table to be rejected")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.GetDefault(ctx, "f1"); !errors.IsType(err, errors.TypeNotFound) {
		t.Fatalf("empty store: got %v", err)
	}
	first := &pricing.Record{ID: "a", FranchiseID: "f1", Name: "A", IsDefault: true, Document: []byte(`{}`)}
	second := &pricing.Record{ID: "b", FranchiseID: "f1", Name: "B", IsDefault: true, Document: []byte(`{}`)}
	for _, rec := range []*pricing.Record{first, second} {
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	def, err := s.GetDefault(ctx, "f1")
	if err != nil || def.ID != "b" {
		t.Fatalf("default = %+v, %v", def, err)
	}
	a, _ := s.Get(ctx, "f1", "a")
	if a.IsDefault {
		t.Error("saving a new default must clear the old flag")
	}
	a.Document[0] = 'x'
	again, _ := s.Get(ctx, "f1", "a")
	if string(again.Document) != "{}" {
		t.Error("store shares document bytes with callers")
	}

	if err := s.Delete(ctx, "f1", "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "f1", "b"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("second delete: got %v", err)
	}
	def, _ = s.GetDefault(ctx, "f1")
	if def == nil || def.ID != "a" {
		t.Errorf("fallback default = %+v", def)
	}
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, config.StoreConfig{Driver: config.DriverMemory})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	mem.Close()

	lite, err := Open(ctx, config.StoreConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "nested", "rates.db")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	lite.Close()

	if _, err := Open(ctx, config.StoreConfig{Driver: "mongo"}); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("unknown driver: got %v", err)
	}
}
