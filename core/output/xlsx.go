package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"poolcost/core/engine"
	"poolcost/internal/errors"
)

const (
	// ItemsSheet holds one row per line item under a header row
	ItemsSheet = "Estimate"
	// PricingSheet holds totals and the retail summary
	PricingSheet = "Pricing"
)

// XLSXFormatter renders an Excel workbook
type XLSXFormatter struct{}

// Format implements Formatter
func (f *XLSXFormatter) Format() Format { return FormatXLSX }

// Render implements Formatter
func (f *XLSXFormatter) Render(w io.Writer, result *engine.Result) error {
	book, err := Workbook(result)
	if err != nil {
		return err
	}
	defer book.Close()
	if err := book.Write(w); err != nil {
		return errors.Internal("write workbook", err)
	}
	return nil
}

// Workbook builds the estimate workbook
func Workbook(result *engine.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ItemsSheet); err != nil {
		f.Close()
		return nil, errors.Internal("rename sheet", err)
	}
	if err := writeItems(f, result); err != nil {
		f.Close()
		return nil, err
	}
	if err := writePricing(f, result); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeItems(f *excelize.File, result *engine.Result) error {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F4E79"}, Pattern: 1},
	})
	if err != nil {
		return errors.Internal("create header style", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return errors.Internal("create money style", err)
	}

	widths := map[string]float64{"A": 24, "B": 44, "C": 10, "D": 10, "E": 12, "F": 14}
	for col, width := range widths {
		if err := f.SetColWidth(ItemsSheet, col, col, width); err != nil {
			return errors.Internal("set column width", err)
		}
	}
	headers := []any{"Category", "Description", "Kind", "Quantity", "Unit Price", "Total"}
	if err := f.SetSheetRow(ItemsSheet, "A1", &headers); err != nil {
		return errors.Internal("write header", err)
	}
	f.SetCellStyle(ItemsSheet, "A1", "F1", header)

	row := 2
	for _, r := range Rows(result) {
		values := []any{Title(r.Category), sanitizeCell(r.Description), string(r.Kind), nil, nil, nil}
		if r.Quantity != "" {
			values[3] = number(r.Quantity)
			values[4] = number(r.UnitPrice)
		}
		values[5] = number(r.Total)

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ItemsSheet, cell, &values); err != nil {
			return errors.Internal("write item row", err)
		}
		f.SetCellStyle(ItemsSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), money)
		row++
	}
	return nil
}

func writePricing(f *excelize.File, result *engine.Result) error {
	if _, err := f.NewSheet(PricingSheet); err != nil {
		return errors.Internal("create pricing sheet", err)
	}
	label, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Internal("create label style", err)
	}
	f.SetColWidth(PricingSheet, "A", "A", 28)
	f.SetColWidth(PricingSheet, "B", "B", 16)

	p := result.Pricing
	summary := []struct {
		label string
		value string
	}{
		{"Subtotal", result.Subtotal.StringFixed(2)},
		{"Tax", result.TaxAmount.StringFixed(2)},
		{"Total cost", result.TotalCost.StringFixed(2)},
		{"PAP discounts", p.DiscountTotal.StringFixed(2)},
		{"Base retail price", p.BaseRetailPrice.StringFixed(2)},
		{"G3 upgrade", p.G3UpgradeCost.StringFixed(2)},
		{"Manual adjustments", p.ManualAdjustments.StringFixed(2)},
		{"Retail price", p.RetailPrice.StringFixed(2)},
		{"Dig commission", p.DigCommission.StringFixed(2)},
		{"Admin fee", p.AdminFee.StringFixed(2)},
		{"Closeout commission", p.CloseoutCommission.StringFixed(2)},
		{"Gross profit", p.GrossProfit.StringFixed(2)},
		{"Gross margin %", p.GrossProfitMargin.StringFixed(2)},
	}
	for i, s := range summary {
		row := i + 1
		f.SetCellValue(PricingSheet, fmt.Sprintf("A%d", row), s.label)
		f.SetCellValue(PricingSheet, fmt.Sprintf("B%d", row), number(s.value))
		f.SetCellStyle(PricingSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), label)
	}

	row := len(summary) + 2
	for _, warning := range result.Warnings {
		f.SetCellValue(PricingSheet, fmt.Sprintf("A%d", row), "Warning")
		f.SetCellValue(PricingSheet, fmt.Sprintf("B%d", row), sanitizeCell(warning.Message))
		row++
	}
	return nil
}

// number converts a decimal string to a spreadsheet number
func number(s string) float64 {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return v.InexactFloat64()
}

// sanitizeCell stops spreadsheet apps from reading text as a formula
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
