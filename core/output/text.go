package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"poolcost/core/engine"
	"poolcost/core/types"
)

const rule = "─────────────────────────────────────────────────────────────────────────────"

// TextFormatter renders a terminal report
type TextFormatter struct {
	// ShowEmpty prints categories that have no items
	ShowEmpty bool
}

// Format implements Formatter
func (f *TextFormatter) Format() Format { return FormatText }

// Render implements Formatter
func (f *TextFormatter) Render(w io.Writer, result *engine.Result) error {
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "╔═══════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                          POOL COST ESTIMATE                                ║")
	fmt.Fprintln(w, "╚═══════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w, "")

	ref := result.RateTable
	fmt.Fprintf(w, "Rate table: %s (%s)\n", nonEmpty(ref.Name, ref.ID), short(ref.ContentHash))
	g := result.Geometry
	if g.HasPool {
		fmt.Fprintf(w, "Pool:       perimeter %.1f ft, avg depth %.2f ft, %s gal\n",
			g.Perimeter, g.AvgDepth, decimal.NewFromFloat(g.Gallons).StringFixed(0))
	}
	if g.HasSpa {
		fmt.Fprintf(w, "Spa:        perimeter %.1f ft\n", g.SpaPerimeter)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintf(w, "%-44s %10s %10s %12s\n", "ITEM", "QTY", "UNIT", "TOTAL")
	fmt.Fprintln(w, rule)
	for _, c := range types.Categories {
		items := result.Breakdown.Items[c]
		if len(items) == 0 && !f.ShowEmpty {
			continue
		}
		fmt.Fprintf(w, "%-67s %12s\n", strings.ToUpper(Title(c)), result.Breakdown.Totals[c].StringFixed(2))
		for _, item := range items {
			qty, unit := "", ""
			if item.ShowQuantity() {
				qty = item.Quantity.String()
				unit = item.UnitPrice.StringFixed(2)
			}
			fmt.Fprintf(w, "  %-42s %10s %10s %12s\n", truncate(item.Description, 42), qty, unit, item.Total.StringFixed(2))
		}
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-67s %12s\n", "SUBTOTAL", result.Subtotal.StringFixed(2))
	if !result.TaxAmount.IsZero() {
		fmt.Fprintf(w, "%-67s %12s\n", fmt.Sprintf("SALES TAX (%s%%)", result.TaxRate.Shift(2)), result.TaxAmount.StringFixed(2))
	}
	fmt.Fprintf(w, "%-67s %12s\n", "TOTAL COST", result.TotalCost.StringFixed(2))
	fmt.Fprintln(w, "")

	p := result.Pricing
	fmt.Fprintln(w, "RETAIL")
	fmt.Fprintln(w, rule)
	money := func(label string, v decimal.Decimal) {
		fmt.Fprintf(w, "%-67s %12s\n", label, v.StringFixed(2))
	}
	money("Base retail price", p.BaseRetailPrice)
	if !p.G3UpgradeCost.IsZero() {
		money("G3 upgrade", p.G3UpgradeCost)
	}
	if !p.ManualAdjustments.IsZero() {
		money("Manual adjustments", p.ManualAdjustments)
	}
	money("Retail price", p.RetailPrice)
	money("Dig commission", p.DigCommission)
	money("Admin fee", p.AdminFee)
	money("Closeout commission", p.CloseoutCommission)
	if !p.DiscountTotal.IsZero() {
		money("PAP discounts (in cost)", p.DiscountTotal)
	}
	money("Gross profit", p.GrossProfit)
	fmt.Fprintf(w, "%-67s %11s%%\n", "Gross margin", p.GrossProfitMargin.StringFixed(2))
	fmt.Fprintln(w, "")

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "WARNINGS")
		fmt.Fprintln(w, rule)
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "⚠ %s\n", warning.Message)
		}
		fmt.Fprintln(w, "")
	}
	return nil
}

// MarkdownFormatter renders a markdown summary
type MarkdownFormatter struct{}

// Format implements Formatter
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render implements Formatter
func (f *MarkdownFormatter) Render(w io.Writer, result *engine.Result) error {
	fmt.Fprintln(w, "# Pool Cost Estimate")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "**Total cost:** %s\n", result.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "**Retail price:** %s\n", result.Pricing.RetailPrice.StringFixed(2))
	fmt.Fprintf(w, "**Gross margin:** %s%%\n", result.Pricing.GrossProfitMargin.StringFixed(2))
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "| Category | Total |")
	fmt.Fprintln(w, "|----------|------:|")
	for _, c := range types.Categories {
		if len(result.Breakdown.Items[c]) == 0 {
			continue
		}
		fmt.Fprintf(w, "| %s | %s |\n", Title(c), result.Breakdown.Totals[c].StringFixed(2))
	}
	fmt.Fprintf(w, "| **Subtotal** | **%s** |\n", result.Subtotal.StringFixed(2))

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "## Warnings")
		fmt.Fprintln(w, "")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "- %s\n", warning.Message)
		}
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func nonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "-"
}
