package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"poolcost/core/engine"
)

const proposal = `
customer:
  customerName: Test Customer
pool:
  poolType: gunite
  perimeter: 90
  surfaceArea: 400
  shallowDepth: 4
  endDepth: 6
  spaType: none
`

// execute runs the root command against an isolated config and store
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("POOLCOST_STORE_PATH", filepath.Join(dir, "rates.db"))
	t.Setenv("POOLCOST_LOG_OUTPUT", "stderr")
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.hcl")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCalculateJSON(t *testing.T) {
	spec := writeFile(t, "proposal.yaml", proposal)
	out, err := execute(t, "calculate", "--format", "json", spec)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	var res engine.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not a result: %v\n%s", err, out)
	}
	if !res.TotalCost.IsPositive() || res.RateTable.ID != "builtin" {
		t.Errorf("total %s from table %+v", res.TotalCost, res.RateTable)
	}
}

func TestCalculateWithRatesFileAndDiscounts(t *testing.T) {
	spec := writeFile(t, "proposal.json", `{"specification": {"pool": {"poolType": "gunite", "perimeter": 90, "surfaceArea": 400, "shallowDepth": 4, "endDepth": 6}}}`)
	rates := writeFile(t, "rates.hjson", `{ permit: { poolOnly: 1000 } }`)

	out, err := execute(t, "calculate", "--format", "json", "--rates", rates, "--discounts", "excavation=0.1", spec)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	var res engine.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.RateTable.Name != rates {
		t.Errorf("priced with %+v", res.RateTable)
	}
	if !res.Pricing.DiscountTotal.IsNegative() {
		t.Error("discount flag ignored")
	}
}

func TestCalculateErrors(t *testing.T) {
	if _, err := execute(t, "calculate", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	spec := writeFile(t, "proposal.yaml", proposal)
	if _, err := execute(t, "calculate", "--format", "pdf", spec); err == nil || !strings.Contains(err.Error(), "pdf") {
		t.Errorf("unknown format: got %v", err)
	}
	calcFormat = "text"
}

func TestRatesImportAndList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POOLCOST_STORE_PATH", filepath.Join(dir, "rates.db"))
	doc := writeFile(t, "spring.yaml", "permit:\n  poolOnly: 1000\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	run := func(args ...string) string {
		t.Helper()
		out.Reset()
		rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "missing.hcl")}, args...))
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	if got := run("rates", "import", "--franchise", "f1", "--name", "Spring", "--default", doc); !strings.Contains(got, "Published") {
		t.Errorf("import output: %q", got)
	}
	if got := run("rates", "import", "--franchise", "f1", "--name", "Spring", "--default", doc); !strings.Contains(got, "Unchanged") {
		t.Errorf("second import should be skipped: %q", got)
	}
	if got := run("rates", "list", "--franchise", "f1"); !strings.Contains(got, "Spring") {
		t.Errorf("list output: %q", got)
	}
	if got := run("rates", "show", "--franchise", "f1", "--format", "yaml"); !strings.Contains(got, "poolOnly: 1000") {
		t.Errorf("show output: %q", got)
	}
	importDefault = false
	ratesFranchise = ""
	ratesFormat = "json"
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	if _, err := execute(t, "config", "init", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := execute(t, "config", "init", path); err == nil {
		t.Error("init must not overwrite without --force")
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "logging {") {
		t.Errorf("config file:\n%s", data)
	}
}

func TestDiffCommand(t *testing.T) {
	before := writeFile(t, "before.yaml", proposal)
	after := writeFile(t, "after.yaml", proposal+"customFeatures:\n  - name: Fire bowl\n    laborCost: 300\n    materialCost: 900\n")

	out, err := execute(t, "diff", before, after)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.Contains(out, "Cost increased by $1200.00") || !strings.Contains(out, "Fire bowl") {
		t.Errorf("diff output:\n%s", out)
	}
}
