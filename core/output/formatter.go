// Package output renders estimates for people and machines.
package output

import (
	"io"
	"sort"
	"strings"

	"poolcost/core/engine"
	"poolcost/core/types"
	"poolcost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable table
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is an Excel workbook
	FormatXLSX Format = "xlsx"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *engine.Result) error
}

// Registry maps formats to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry holding every built-in formatter
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(&TextFormatter{})
	r.Register(&JSONFormatter{Indent: true})
	r.Register(&MarkdownFormatter{})
	r.Register(&XLSXFormatter{})
	return r
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(strings.ToLower(name))]
	if !ok {
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q (want one of %s)",
			name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names lists registered formats in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Render writes result in the named format
func Render(w io.Writer, format string, result *engine.Result) error {
	f, err := NewRegistry().Get(format)
	if err != nil {
		return err
	}
	return f.Render(w, result)
}

var categoryTitles = map[types.Category]string{
	types.CategoryPlans:                 "Plans & Engineering",
	types.CategoryLayout:                "Layout",
	types.CategoryPermit:                "Permit",
	types.CategoryExcavation:            "Excavation",
	types.CategoryPlumbing:              "Plumbing",
	types.CategoryGas:                   "Gas",
	types.CategorySteel:                 "Steel",
	types.CategoryElectrical:            "Electrical",
	types.CategoryShotcreteLabor:        "Shotcrete Labor",
	types.CategoryShotcreteMaterial:     "Shotcrete Material",
	types.CategoryTileLabor:             "Tile Labor",
	types.CategoryTileMaterial:          "Tile Material",
	types.CategoryCopingDeckingLabor:    "Coping/Decking Labor",
	types.CategoryCopingDeckingMaterial: "Coping/Decking Material",
	types.CategoryStoneRockworkLabor:    "Stone/Rockwork Labor",
	types.CategoryStoneRockworkMaterial: "Stone/Rockwork Material",
	types.CategoryDrainage:              "Drainage",
	types.CategoryEquipmentOrdered:      "Equipment Ordered",
	types.CategoryEquipmentSet:          "Equipment Set",
	types.CategoryWaterFeatures:         "Water Features",
	types.CategoryCleanup:               "Cleanup",
	types.CategoryInteriorFinish:        "Interior Finish",
	types.CategoryWaterTruck:            "Water Truck",
	types.CategoryFiberglassShell:       "Fiberglass Shell",
	types.CategoryFiberglassInstall:     "Fiberglass Install",
	types.CategoryStartupOrientation:    "Startup/Orientation",
	types.CategoryCustomFeatures:        "Custom Features",
}

// Title is the display name of a category
func Title(c types.Category) string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Row is one flattened line item
type Row struct {
	Category    types.Category
	Description string
	Kind        types.LineKind
	Quantity    string
	UnitPrice   string
	Total       string
}

// Rows flattens the breakdown in category order, one row per line item.
// Quantity and unit price are blank where they carry no meaning.
func Rows(result *engine.Result) []Row {
	var rows []Row
	for _, c := range types.Categories {
		for _, item := range result.Breakdown.Items[c] {
			row := Row{
				Category:    c,
				Description: item.Description,
				Kind:        item.Kind,
				Total:       item.Total.StringFixed(2),
			}
			if item.ShowQuantity() {
				row.Quantity = item.Quantity.String()
				row.UnitPrice = item.UnitPrice.StringFixed(2)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
