package db

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"poolcost/core/input"
	"poolcost/core/pricing"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// ImportRequest describes one rate-table document to ingest
type ImportRequest struct {
	Path        string
	FranchiseID string
	Name        string
	Version     string
	SetDefault  bool
	UpdatedBy   string
}

// ImportResult reports what an import did
type ImportResult struct {
	Record  pricing.Record
	Hash    string
	Skipped bool
}

// Importer ingests hand-edited rate-table files: read, normalize,
// validate, then publish. A document whose snapshot matches a stored
// table of the franchise is not stored twice.
type Importer struct {
	provider *pricing.Provider
}

// NewImporter creates an importer publishing through provider
func NewImporter(provider *pricing.Provider) *Importer {
	return &Importer{provider: provider}
}

// Import runs one file through the pipeline
func (im *Importer) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	format, err := input.FormatFromPath(req.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "read %s", req.Path)
	}
	tree, err := input.Tree(data, format)
	if err != nil {
		return nil, err
	}
	// stored documents are always JSON
	doc, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Internal("encode rate table", err)
	}

	franchise := req.FranchiseID
	if franchise == "" {
		franchise = pricing.DefaultFranchise
	}
	candidate, err := pricing.Parse(pricing.Meta{FranchiseID: franchise}, doc, input.FormatJSON)
	if err != nil {
		return nil, err
	}

	if existing, ok := im.findExisting(ctx, franchise, candidate.Hash()); ok {
		logging.Info("rate table unchanged, skipping import",
			zap.String("path", req.Path),
			zap.String("id", existing.ID))
		return &ImportResult{Record: *existing, Hash: candidate.Hash(), Skipped: true}, nil
	}

	name := req.Name
	if name == "" {
		name = req.Path
	}
	rec := &pricing.Record{
		FranchiseID: franchise,
		Name:        name,
		Version:     req.Version,
		IsDefault:   req.SetDefault,
		Document:    doc,
		UpdatedBy:   req.UpdatedBy,
	}
	table, err := im.provider.Publish(ctx, rec)
	if err != nil {
		return nil, err
	}
	return &ImportResult{Record: *rec, Hash: table.Hash()}, nil
}

func (im *Importer) findExisting(ctx context.Context, franchise, hash string) (*pricing.Record, bool) {
	records, err := im.provider.List(ctx, franchise)
	if err != nil {
		return nil, false
	}
	for i := range records {
		t, err := pricing.Parse(records[i].Meta(), records[i].Document, input.FormatJSON)
		if err == nil && t.Hash() == hash {
			return &records[i], true
		}
	}
	return nil, false
}
