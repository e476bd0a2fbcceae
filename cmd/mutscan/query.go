package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/mutscan/internal/duckdb"
	"github.com/inodb/mutscan/internal/output"
)

type queryOptions struct {
	dbPath   string
	runID    int64
	position int
	change   string
}

func newQueryCmd() *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query variants stored by 'scan --db'",
		Long: `Print stored variants as tab-delimited rows.

Without --position or --change all variants of the run are listed. --change
searches every stored run for an amino acid change such as A2V.`,
		Example: `  mutscan query --db scans.duckdb
  mutscan query --db scans.duckdb --position 35
  mutscan query --db scans.duckdb --change N501Y`,
		Args: usageArgs(cobra.NoArgs),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlag(cmd, "db.path", "db")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dbPath = viper.GetString("db.path")
			if opts.dbPath == "" {
				return &usageError{fmt.Errorf("--db is required (or set db.path in the config)")}
			}
			if opts.position != 0 && opts.change != "" {
				return &usageError{fmt.Errorf("--position and --change are mutually exclusive")}
			}
			return runQuery(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.String("db", "", "DuckDB database written by 'scan --db'")
	f.Int64Var(&opts.runID, "run", 0, "Run ID (default: latest run)")
	f.IntVar(&opts.position, "position", 0, "1-based nucleotide position")
	f.StringVar(&opts.change, "change", "", "Amino acid change, e.g. A2V")

	return cmd
}

func runQuery(opts queryOptions, stdout, stderr io.Writer) error {
	store, err := duckdb.Open(opts.dbPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	var variants []duckdb.StoredVariant
	if opts.change != "" {
		variants, err = store.SearchByAminoAcidChange(opts.change)
		if err != nil {
			return err
		}
	} else {
		run, err := resolveRun(store, opts.runID)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Run %d: %s (%d bp, %d aa)\n",
			run.ID, run.Source.Path, run.SequenceLength, len(run.OriginalProtein))

		if opts.position != 0 {
			variants, err = store.LookupPosition(run.ID, opts.position)
		} else {
			variants, err = store.Variants(run.ID)
		}
		if err != nil {
			return err
		}
	}

	tw := output.NewTabWriter(stdout, "", "")
	if err := tw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, sv := range variants {
		if err := tw.WriteRow(output.Row{
			Position:        sv.Variant.Position,
			Ref:             sv.Variant.OriginalBase,
			Alt:             sv.Variant.NewBase,
			CodonPosition:   sv.CodonPosition,
			CodonChange:     sv.CodonChange,
			AminoAcidChange: sv.AminoAcidChange,
			HGVSp:           sv.HGVSp,
			Protein:         sv.Variant.Protein,
			Consequence:     sv.Consequence,
		}); err != nil {
			return fmt.Errorf("writing variant: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	fmt.Fprintf(stderr, "%d variants\n", len(variants))
	return nil
}

func resolveRun(store *duckdb.Store, id int64) (*duckdb.Run, error) {
	var (
		run *duckdb.Run
		err error
	)
	if id == 0 {
		run, err = store.LatestRun()
	} else {
		run, err = store.GetRun(id)
	}
	if err != nil {
		return nil, err
	}
	if run == nil {
		if id == 0 {
			return nil, fmt.Errorf("no runs stored in %s", store.Path())
		}
		return nil, fmt.Errorf("run %d not found in %s", id, store.Path())
	}
	return run, nil
}
