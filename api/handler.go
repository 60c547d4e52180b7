package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"poolcost/core/diff"
	"poolcost/core/engine"
	"poolcost/core/output"
	"poolcost/core/pricing"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

// calculateRequest is engine.Request as it arrives over the wire
type calculateRequest = engine.Request

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "poolcost",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleCalculate handles POST /v1/calculate
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.engine.Estimate(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// handleExport handles POST /v1/export.xlsx
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.engine.Estimate(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := (&output.XLSXFormatter{}).Render(&buf, result); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="estimate.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleDiff handles POST /v1/diff
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	base, err := s.engine.Estimate(r.Context(), &req.Base)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.TypeOf(err), "base", err))
		return
	}
	head, err := s.engine.Estimate(r.Context(), &req.Head)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.TypeOf(err), "head", err))
		return
	}
	writeJSON(w, DiffResponse{
		Base:    summarize(base),
		Head:    summarize(head),
		Changes: diff.NewDiffer(req.Threshold).Diff(base, head),
	}, http.StatusOK)
}

func summarize(res *engine.Result) DiffSummary {
	return DiffSummary{
		InputHash:   res.InputHash,
		TotalCost:   res.TotalCost,
		RetailPrice: res.Pricing.RetailPrice,
		Margin:      res.Pricing.GrossProfitMargin,
		RateTable:   res.RateTable.ContentHash,
	}
}

// handleListTables handles GET /v1/franchises/{franchiseID}/rate-tables
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	records, err := s.engine.Provider().List(r.Context(), chi.URLParam(r, "franchiseID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]RateTableSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, RateTableSummary{
			ID:        rec.ID,
			Name:      rec.Name,
			Version:   rec.Version,
			IsDefault: rec.IsDefault,
			UpdatedBy: rec.UpdatedBy,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	writeJSON(w, map[string]any{"rateTables": out, "count": len(out)}, http.StatusOK)
}

// handleGetTable handles GET /v1/franchises/{franchiseID}/rate-tables/{id}.
// The id "current" selects the franchise default.
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "current" {
		id = ""
	}
	table, err := s.engine.Provider().Select(r.Context(), chi.URLParam(r, "franchiseID"), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, tableResponse(table), http.StatusOK)
}

// handlePutTable handles PUT /v1/franchises/{franchiseID}/rate-tables
func (s *Server) handlePutTable(w http.ResponseWriter, r *http.Request) {
	var req RateTableRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Name == "" {
		writeError(w, r, errors.Input("name is required"))
		return
	}

	rec := &pricing.Record{
		ID:          req.ID,
		FranchiseID: chi.URLParam(r, "franchiseID"),
		Name:        req.Name,
		Version:     req.Version,
		IsDefault:   req.IsDefault,
		UpdatedBy:   req.UpdatedBy,
		Document:    req.Pricing,
	}
	table, err := s.engine.Provider().Publish(r.Context(), rec)
	if errors.IsType(err, errors.TypeRateTable) {
		err = errors.Wrap(errors.TypeInput, "invalid rate table", err)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, tableResponse(table), http.StatusOK)
}

func tableResponse(t *pricing.Table) RateTableResponse {
	return RateTableResponse{Meta: t.Meta(), ContentHash: t.Hash(), Pricing: t.Tree()}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Parsing("decode request body", err)
	}
	return nil
}

// StatusFor maps an error type to an HTTP status
func StatusFor(err error) int {
	switch errors.TypeOf(err) {
	case errors.TypeInput, errors.TypeParsing:
		return http.StatusBadRequest
	case errors.TypeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error("request error",
			zap.String("requestId", RequestID(r.Context())),
			zap.Error(err))
	}
	writeJSON(w, ErrorResponse{
		Error:     ErrorBody{Type: string(errors.TypeOf(err)), Message: err.Error()},
		RequestID: RequestID(r.Context()),
	}, status)
}
