package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"poolcost/core/engine"
	"poolcost/core/pricing"
	"poolcost/core/types"
)

func estimate(t *testing.T) *engine.Result {
	t.Helper()
	spec := &types.Specification{
		Pool: types.Pool{
			Type:         types.PoolGunite,
			Perimeter:    90,
			SurfaceArea:  400,
			ShallowDepth: 4,
			EndDepth:     6,
			SpaType:      types.SpaNone,
		},
		CustomFeatures: []types.CustomFeature{{Name: "=HYPERLINK(\"x\")", LaborCost: 100}},
	}
	res, err := engine.Calculate(spec, pricing.DefaultTable(), types.PAPDiscounts{types.DiscountExcavation: 0.1})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return res
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"text", "json", "markdown", "xlsx", "JSON"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("Get(%q): %v", name, err)
		}
	}
	if _, err := r.Get("pdf"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

// TestRowsOnePerItem proves flattening keeps every line item in order
func TestRowsOnePerItem(t *testing.T) {
	res := estimate(t)
	rows := Rows(res)
	if len(rows) != res.Breakdown.ItemCount() {
		t.Fatalf("rows = %d, items = %d", len(rows), res.Breakdown.ItemCount())
	}
	for _, row := range rows {
		if row.Kind != types.KindStandard && row.Quantity != "" {
			t.Errorf("%s line %q shows a quantity", row.Kind, row.Description)
		}
	}
}

func TestTextReport(t *testing.T) {
	res := estimate(t)
	var buf bytes.Buffer
	if err := Render(&buf, "text", res); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"EXCAVATION", "TOTAL COST", res.TotalCost.StringFixed(2), "Retail price"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "FIBERGLASS SHELL") {
		t.Error("empty categories should be hidden")
	}
}

func TestMarkdownReport(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "markdown", estimate(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# Pool Cost Estimate") {
		t.Errorf("unexpected markdown:\n%s", buf.String())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := estimate(t)
	var buf bytes.Buffer
	if err := Render(&buf, "json", res); err != nil {
		t.Fatalf("Render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"costBreakdown", "pricing", "totalCost", "inputHash"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing %q", key)
		}
	}
}

// TestWorkbookOneRowPerItem proves the export has a header plus one row per item
func TestWorkbookOneRowPerItem(t *testing.T) {
	res := estimate(t)
	var buf bytes.Buffer
	if err := Render(&buf, "xlsx", res); err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("result is not a workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[0] != ItemsSheet {
		t.Errorf("sheets = %v", sheets)
	}
	rows, err := f.GetRows(ItemsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != res.Breakdown.ItemCount()+1 {
		t.Fatalf("rows = %d, want %d", len(rows), res.Breakdown.ItemCount()+1)
	}
	if rows[0][1] != "Description" {
		t.Errorf("header = %v", rows[0])
	}

	found := false
	for _, row := range rows[1:] {
		if len(row) > 1 && strings.Contains(row[1], "HYPERLINK") {
			found = true
			if !strings.HasPrefix(row[1], "'") {
				t.Errorf("formula text not escaped: %q", row[1])
			}
		}
	}
	if !found {
		t.Error("custom feature row missing")
	}

	total, _ := f.GetCellValue(PricingSheet, "B3")
	t.Logf("total cost cell: %s", total)
	if total == "" {
		t.Error("pricing sheet has no total")
	}
}
