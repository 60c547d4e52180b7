package input

import (
	"os"
	"path/filepath"
	"testing"

	"poolcost/internal/errors"
)

type sample struct {
	Name  string  `json:"name"`
	Rate  float64 `json:"rate"`
	Items []struct {
		Key   string  `json:"key"`
		Price float64 `json:"price"`
	} `json:"items"`
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"json", FormatJSON, `{"name":"pumps","rate":1.1,"items":[{"key":"a","price":100}]}`},
		{"yaml", FormatYAML, "name: pumps\nrate: 1.1\nitems:\n  - key: a\n    price: 100\n"},
		{"hjson", FormatHJSON, "{\n  # overhead\n  name: pumps\n  rate: 1.1\n  items: [\n    {\n      key: a\n      price: 100\n    }\n  ]\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			if err := Decode([]byte(tt.doc), tt.format, &got); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Name != "pumps" || got.Rate != 1.1 {
				t.Errorf("unexpected scalars: %+v", got)
			}
			if len(got.Items) != 1 || got.Items[0].Key != "a" || got.Items[0].Price != 100 {
				t.Errorf("unexpected items: %+v", got.Items)
			}
		})
	}
}

func TestTreeRejectsNonObject(t *testing.T) {
	_, err := Tree([]byte(`[1,2,3]`), FormatJSON)
	if !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("expected parsing error, got %v", err)
	}
}

func TestNormalizeYAMLMaps(t *testing.T) {
	tree, err := Tree([]byte("rbb:\n  6: 5\n  12: 6.5\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	rbb, ok := tree["rbb"].(map[string]any)
	if !ok {
		t.Fatalf("rbb not normalized: %T", tree["rbb"])
	}
	if rbb["12"] != 6.5 || rbb["6"] != float64(5) {
		t.Errorf("unexpected values: %v", rbb)
	}
}

func TestReadFileAndEncode(t *testing.T) {
	in := sample{Name: "heaters", Rate: 2}
	for _, format := range []Format{FormatJSON, FormatYAML, FormatHJSON} {
		data, err := Encode(in, format)
		if err != nil {
			t.Fatalf("Encode %s: %v", format, err)
		}
		path := filepath.Join(t.TempDir(), "doc."+string(format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		var out sample
		if err := ReadFile(path, &out); err != nil {
			t.Fatalf("ReadFile %s: %v", format, err)
		}
		if out.Name != "heaters" || out.Rate != 2 {
			t.Errorf("%s: got %+v", format, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, _ := ParseFormat(".yml"); f != FormatYAML {
		t.Errorf("yml -> %s", f)
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Error("expected toml to be rejected")
	}
}
