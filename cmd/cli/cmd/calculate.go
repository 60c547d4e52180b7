package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"poolcost/core/engine"
	"poolcost/core/input"
	"poolcost/core/output"
	"poolcost/core/pricing"
	"poolcost/core/types"
	"poolcost/internal/config"
	"poolcost/internal/errors"
	"poolcost/internal/logging"
)

var (
	calcFormat         string
	calcOut            string
	calcRatesFile      string
	calcDiscounts      map[string]string
	calcTableDiscounts bool
	calcFranchise      string
	calcTable          string
)

// calculateCmd prices one specification file
var calculateCmd = &cobra.Command{
	Use:   "calculate <specification>",
	Short: "Price a pool/spa specification",
	Long: `Price a specification file (JSON, YAML or HJSON).

The file holds either a bare specification or a request object with
"specification", "papDiscounts", "franchiseId" and "rateTableId" keys.

Examples:
  poolcost calculate proposal.yaml
  poolcost calculate --rates spring.yaml --discounts excavation=0.1 proposal.json
  poolcost calculate --format xlsx --out estimate.xlsx proposal.hjson`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&calcFormat, "format", "f", string(output.FormatText), "output format (text, json, markdown, xlsx)")
	calculateCmd.Flags().StringVarP(&calcOut, "out", "o", "", "write output to a file instead of stdout")
	calculateCmd.Flags().StringVarP(&calcRatesFile, "rates", "r", "", "rate-table document merged onto the defaults")
	calculateCmd.Flags().StringToStringVarP(&calcDiscounts, "discounts", "d", nil, "PAP discounts as key=fraction pairs")
	calculateCmd.Flags().BoolVar(&calcTableDiscounts, "table-discounts", false, "apply the rate table's PAP discounts when none are given")
	calculateCmd.Flags().StringVar(&calcFranchise, "franchise", "", "franchise whose rate table to use")
	calculateCmd.Flags().StringVar(&calcTable, "table", "", "stored rate table id (default: the franchise default)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	formatter, err := output.NewRegistry().Get(calcFormat)
	if err != nil {
		return err
	}

	req, err := loadRequest(args[0])
	if err != nil {
		return err
	}
	if len(calcDiscounts) > 0 {
		if req.Discounts, err = parseDiscounts(calcDiscounts); err != nil {
			return err
		}
	}
	if calcFranchise != "" {
		req.FranchiseID = calcFranchise
	}
	if req.FranchiseID == "" && req.Specification.Customer.FranchiseID == "" {
		req.FranchiseID = cfg.Engine.FranchiseID
	}
	if calcTable != "" {
		req.RateTableID = calcTable
	}

	ratesFile := calcRatesFile
	if ratesFile == "" {
		ratesFile = cfg.Engine.RatesFile
	}
	useTable := calcTableDiscounts || cfg.Engine.UseTableDiscounts

	var result *engine.Result
	if ratesFile != "" {
		result, err = calculateWithFile(req, ratesFile, useTable)
	} else {
		result, err = calculateWithStore(ctx, cfg, req, useTable)
	}
	if err != nil {
		return err
	}
	logging.Debug("calculation complete",
		zap.String("spec", args[0]),
		zap.String("table", result.RateTable.ContentHash),
		zap.Int("warnings", len(result.Warnings)))

	return writeOutput(cmd.OutOrStdout(), calcOut, func(w io.Writer) error {
		return formatter.Render(w, result)
	})
}

func calculateWithFile(req *engine.Request, path string, useTable bool) (*engine.Result, error) {
	table, err := pricing.LoadFile(pricing.Meta{ID: "file", FranchiseID: req.FranchiseID, Name: path}, path)
	if err != nil {
		return nil, err
	}
	discounts := req.Discounts
	if discounts == nil && useTable {
		discounts = engine.DefaultDiscounts(table)
	}
	return engine.Calculate(req.Specification, table, discounts)
}

func calculateWithStore(ctx context.Context, cfg *config.Config, req *engine.Request, useTable bool) (*engine.Result, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	eng := engine.New(pricing.NewProvider(store, cfg.CachePolicy()), engine.Config{UseTableDiscounts: useTable})
	return eng.Estimate(ctx, req)
}

// loadRequest reads a request or a bare specification
func loadRequest(path string) (*engine.Request, error) {
	format, err := input.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "read %s", path)
	}
	tree, err := input.Tree(data, format)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeParsing, err, "parse %s", path)
	}

	var req engine.Request
	if _, ok := tree["specification"]; ok {
		err = input.FromTree(tree, &req)
	} else {
		req.Specification = &types.Specification{}
		err = input.FromTree(tree, req.Specification)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.TypeParsing, err, "decode %s", path)
	}
	if req.Specification == nil {
		return nil, errors.Newf(errors.TypeInput, "%s: specification is empty", path)
	}
	return &req, nil
}

func parseDiscounts(raw map[string]string) (types.PAPDiscounts, error) {
	out := make(types.PAPDiscounts, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Newf(errors.TypeInput, "discount %s: %q is not a number", k, v)
		}
		out[types.DiscountKey(k)] = f
	}
	return out, nil
}

// writeOutput renders to path, or to w when path is empty
func writeOutput(w io.Writer, path string, render func(io.Writer) error) error {
	if path == "" {
		return render(w)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.TypeInput, err, "create %s", path)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
