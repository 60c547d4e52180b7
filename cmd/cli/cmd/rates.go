package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"poolcost/core/input"
	"poolcost/core/pricing"
	"poolcost/db"
	"poolcost/internal/config"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Rate-table management",
	Long: `Inspect and publish franchise rate tables.

The CLI keeps tables in the sqlite file named by store.path unless the
config selects postgres.`,
}

var ratesDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in rate table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTable(cmd, pricing.DefaultTable())
	},
}

var ratesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a stored rate table merged onto the defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRatesShow,
}

var ratesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a franchise's rate tables",
	Args:  cobra.NoArgs,
	RunE:  runRatesList,
}

var ratesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate and publish a rate-table document",
	Long: `Read a partial rate-table document (JSON, YAML or HJSON), merge it
onto the defaults, validate it and store it. A document identical to a
stored table of the same franchise is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRatesImport,
}

var ratesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored rate table",
	Args:  cobra.ExactArgs(1),
	RunE:  runRatesDelete,
}

var (
	ratesFranchise string
	ratesFormat    string
	importName     string
	importVersion  string
	importDefault  bool
	importBy       string
)

func init() {
	ratesCmd.AddCommand(ratesDefaultsCmd)
	ratesCmd.AddCommand(ratesShowCmd)
	ratesCmd.AddCommand(ratesListCmd)
	ratesCmd.AddCommand(ratesImportCmd)
	ratesCmd.AddCommand(ratesDeleteCmd)

	ratesCmd.PersistentFlags().StringVar(&ratesFranchise, "franchise", "", "franchise id (default from config)")
	ratesDefaultsCmd.Flags().StringVarP(&ratesFormat, "format", "f", "json", "document format (json, yaml, hjson)")
	ratesShowCmd.Flags().StringVarP(&ratesFormat, "format", "f", "json", "document format (json, yaml, hjson)")

	ratesImportCmd.Flags().StringVar(&importName, "name", "", "display name (default: the file path)")
	ratesImportCmd.Flags().StringVar(&importVersion, "version", "", "version label")
	ratesImportCmd.Flags().BoolVar(&importDefault, "default", false, "make this the franchise default")
	ratesImportCmd.Flags().StringVar(&importBy, "updated-by", os.Getenv("USER"), "who published the table")
}

// openStore opens the configured store. The CLI persists to sqlite when
// the config asks for the in-memory store.
func openStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	sc := cfg.Store
	if sc.Driver == config.DriverMemory {
		sc.Driver = config.DriverSQLite
	}
	return db.Open(ctx, sc)
}

func franchise() string {
	if ratesFranchise != "" {
		return ratesFranchise
	}
	return config.Get().Engine.FranchiseID
}

func printTable(cmd *cobra.Command, table *pricing.Table) error {
	format, err := input.ParseFormat(ratesFormat)
	if err != nil {
		return err
	}
	data, err := input.Encode(table.Tree(), format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}

func runRatesShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Get())
	if err != nil {
		return err
	}
	defer store.Close()

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	table, err := pricing.NewProvider(store, nil).Select(ctx, franchise(), id)
	if err != nil {
		return err
	}
	return printTable(cmd, table)
}

func runRatesList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Get())
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(ctx, franchise())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No rate tables for franchise %s; the built-in defaults apply.\n", franchise())
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVERSION\tDEFAULT\tUPDATED\tBY")
	for _, rec := range records {
		def := ""
		if rec.IsDefault {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.Name, rec.Version, def, rec.UpdatedAt.Format("2006-01-02 15:04"), rec.UpdatedBy)
	}
	return tw.Flush()
}

func runRatesImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := db.NewImporter(pricing.NewProvider(store, cfg.CachePolicy())).Import(ctx, db.ImportRequest{
		Path:        args[0],
		FranchiseID: franchise(),
		Name:        importName,
		Version:     importVersion,
		SetDefault:  importDefault,
		UpdatedBy:   importBy,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Skipped {
		fmt.Fprintf(out, "Unchanged: %s already stores this table (hash %s)\n", res.Record.ID, short(res.Hash))
		return nil
	}
	fmt.Fprintf(out, "Published %s %q for franchise %s (hash %s)\n",
		res.Record.ID, res.Record.Name, res.Record.FranchiseID, short(res.Hash))
	return nil
}

func runRatesDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, config.Get())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(ctx, franchise(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
