package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"poolcost/core/engine"
	"poolcost/core/output"
	"poolcost/core/pricing"
	"poolcost/internal/errors"
)

type memStore struct {
	mu      sync.Mutex
	records []pricing.Record
}

func (m *memStore) List(_ context.Context, franchiseID string) ([]pricing.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []pricing.Record
	for _, r := range m.records {
		if r.FranchiseID == franchiseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, franchiseID, id string) (*pricing.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.FranchiseID == franchiseID && r.ID == id {
			return &r, nil
		}
	}
	return nil, errors.NotFound("rate table", id)
}

func (m *memStore) GetDefault(_ context.Context, franchiseID string) (*pricing.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.FranchiseID == franchiseID && r.IsDefault {
			return &r, nil
		}
	}
	return nil, errors.NotFound("default rate table", franchiseID)
}

func (m *memStore) Save(_ context.Context, rec *pricing.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	provider := pricing.NewProvider(&memStore{}, nil)
	srv := httptest.NewServer(NewServer(engine.New(provider, engine.Config{}), "test"))
	t.Cleanup(srv.Close)
	return srv
}

const calculateBody = `{
	"specification": {
		"pool": {"poolType": "gunite", "perimeter": 90, "surfaceArea": 400, "shallowDepth": 4, "endDepth": 6, "spaType": "none"}
	},
	"papDiscounts": {"excavation": 0.1}
}`

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/health", "/version"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
		if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("%s: missing request id", path)
		}
	}
}

// TestCalculateRoundTrip proves the HTTP result matches a direct calculation
func TestCalculateRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/calculate", calculateBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got engine.Result
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var req engine.Request
	json.Unmarshal([]byte(calculateBody), &req)
	want, err := engine.Calculate(req.Specification, pricing.DefaultTable(), req.Discounts)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !got.TotalCost.Equal(want.TotalCost) || !got.Pricing.RetailPrice.Equal(want.Pricing.RetailPrice) {
		t.Errorf("http %s / %s, direct %s / %s", got.TotalCost, got.Pricing.RetailPrice, want.TotalCost, want.Pricing.RetailPrice)
	}
	if got.InputHash != want.InputHash {
		t.Error("input hash differs over HTTP")
	}
}

func TestRequestIDIsPreserved(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestErrorStatus(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		typ    errors.Type
	}{
		{"malformed json", "/v1/calculate", `{"specification":`, http.StatusBadRequest, errors.TypeParsing},
		{"missing specification", "/v1/calculate", `{}`, http.StatusBadRequest, errors.TypeInput},
		{"unknown table", "/v1/calculate", `{"specification": {}, "rateTableId": "nope"}`, http.StatusNotFound, errors.TypeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body ErrorResponse
			json.NewDecoder(resp.Body).Decode(&body)
			if body.Error.Type != string(tt.typ) || body.RequestID == "" {
				t.Errorf("error body = %+v", body)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.Input("x"), http.StatusBadRequest},
		{errors.Parsing("x", nil), http.StatusBadRequest},
		{errors.NotFound("rate table", "x"), http.StatusNotFound},
		{errors.Store("x", nil), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRateTableLifecycle(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/v1/franchises/f1/rate-tables"

	body := `{"id": "fall", "name": "Fall pricing", "isDefault": true, "pricing": {"permit": {"poolOnly": 1000}}}`
	req, _ := http.NewRequest(http.MethodPut, base, strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}
	var put RateTableResponse
	json.NewDecoder(resp.Body).Decode(&put)
	if put.Meta.ID != "fall" || put.ContentHash == "" {
		t.Errorf("PUT response = %+v", put.Meta)
	}

	resp, err = http.Get(base)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var list struct {
		RateTables []RateTableSummary `json:"rateTables"`
		Count      int                `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&list)
	if list.Count != 1 || list.RateTables[0].Name != "Fall pricing" {
		t.Errorf("list = %+v", list)
	}

	for _, id := range []string{"fall", "current"} {
		resp, err = http.Get(base + "/" + id)
		if err != nil {
			t.Fatal(err)
		}
		var got RateTableResponse
		json.NewDecoder(resp.Body).Decode(&got)
		resp.Body.Close()
		if got.ContentHash != put.ContentHash {
			t.Errorf("GET %s hash = %q", id, got.ContentHash)
		}
	}

	resp, _ = http.Get(base + "/missing")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing table status = %d", resp.StatusCode)
	}

	bad, _ := http.NewRequest(http.MethodPut, base, strings.NewReader(`{"name": "Broken", "pricing": {"markup": {"targetMargin": 2}}}`))
	resp, err = http.DefaultClient.Do(bad)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid table status = %d", resp.StatusCode)
	}

	calc := post(t, srv.URL+"/v1/calculate",
		`{"franchiseId": "f1", "specification": {"pool": {"poolType": "gunite", "perimeter": 90, "surfaceArea": 400, "shallowDepth": 4, "endDepth": 6}}}`)
	var result engine.Result
	json.NewDecoder(calc.Body).Decode(&result)
	if result.RateTable.ID != "fall" {
		t.Errorf("calculate used table %+v", result.RateTable)
	}
}

func TestExportWorkbook(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/export.xlsx", calculateBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}

	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("not a workbook: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(output.ItemsSheet)
	if len(rows) < 2 {
		t.Errorf("workbook has %d rows", len(rows))
	}
}

func TestDiff(t *testing.T) {
	srv := newTestServer(t)
	body := `{
		"base": {"specification": {"pool": {"poolType": "gunite", "perimeter": 90, "surfaceArea": 400, "shallowDepth": 4, "endDepth": 6}}},
		"head": {"specification": {"pool": {"poolType": "gunite", "perimeter": 90, "surfaceArea": 400, "shallowDepth": 4, "endDepth": 6, "hasTanningShelf": true}}}
	}`
	resp := post(t, srv.URL+"/v1/diff", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var diff DiffResponse
	if err := json.NewDecoder(resp.Body).Decode(&diff); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff.Base.InputHash == diff.Head.InputHash {
		t.Error("revisions should hash differently")
	}
	if diff.Changes == nil {
		t.Fatal("missing changes")
	}
	for _, c := range diff.Changes.Categories {
		if c.Delta.IsZero() {
			t.Errorf("unchanged category listed: %s", c.Category)
		}
	}
	t.Logf("%d categories moved, total delta %s", len(diff.Changes.Categories), diff.Changes.TotalDelta)
}
