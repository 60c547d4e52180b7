package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"poolcost/core/diff"
	"poolcost/core/engine"
	"poolcost/core/output"
	"poolcost/internal/config"
)

var (
	diffThreshold float64
	diffTop       int
	diffJSON      bool
)

// diffCmd compares two revisions of a proposal
var diffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Compare the cost of two proposal revisions",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Float64Var(&diffThreshold, "threshold", 0.01, "smallest line movement to report, in dollars")
	diffCmd.Flags().IntVar(&diffTop, "top", 10, "number of largest line changes to list")
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "print the full diff as JSON")
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	var results [2]*engine.Result
	for i, path := range args {
		req, err := loadRequest(path)
		if err != nil {
			return err
		}
		if req.FranchiseID == "" && req.Specification.Customer.FranchiseID == "" {
			req.FranchiseID = cfg.Engine.FranchiseID
		}
		if results[i], err = calculateWithStore(ctx, cfg, req, cfg.Engine.UseTableDiscounts); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	res := diff.NewDiffer(decimal.NewFromFloat(diffThreshold)).Diff(results[0], results[1])
	out := cmd.OutOrStdout()
	if diffJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprint(out, res.Summary())
	top := res.TopChanges(diffTop)
	if len(top) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CHANGE\tCATEGORY\tLINE\tBEFORE\tAFTER\tDELTA\t")
	for _, item := range top {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			item.ChangeType, output.Title(item.Category), item.Description,
			item.Before.StringFixed(2), item.After.StringFixed(2), item.Delta.StringFixed(2))
	}
	return tw.Flush()
}
