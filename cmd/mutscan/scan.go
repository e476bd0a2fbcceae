package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/mutscan/internal/duckdb"
	"github.com/inodb/mutscan/internal/output"
	"github.com/inodb/mutscan/internal/scan"
	"github.com/inodb/mutscan/internal/sequence"
)

type scanOptions struct {
	inputPath  string
	recordID   string
	outputPath string
	format     string
	workers    int
	stopPolicy scan.StopPolicy
	dbPath     string
}

func newScanCmd() *cobra.Command {
	var recordID string

	cmd := &cobra.Command{
		Use:   "scan [options] <input-file>",
		Short: "Enumerate and classify every point mutation of a coding sequence",
		Long: `Enumerate every single-nucleotide substitution of a coding sequence.

The input is a plain text file holding one DNA sequence (whitespace and
case are ignored) or a FASTA file. Files ending in .gz are decompressed.
Use '-' to read from stdin.`,
		Example: `  mutscan scan input_sequence.txt
  mutscan scan -o rbd_variants.tsv -f tab rbd.fa
  mutscan scan --record RBD_WT --db scans.duckdb spike_domains.fa.gz
  mutscan scan --stop-policy match input_sequence.txt`,
		Args: usageArgs(cobra.ExactArgs(1)),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlag(cmd, "output.path", "output")
			bindFlag(cmd, "output.format", "format")
			bindFlag(cmd, "scan.workers", "workers")
			bindFlag(cmd, "scan.stop_policy", "stop-policy")
			bindFlag(cmd, "db.path", "db")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := scan.ParseStopPolicy(viper.GetString("scan.stop_policy"))
			if err != nil {
				return &usageError{err}
			}
			opts := scanOptions{
				inputPath:  args[0],
				recordID:   recordID,
				outputPath: viper.GetString("output.path"),
				format:     viper.GetString("output.format"),
				workers:    viper.GetInt("scan.workers"),
				stopPolicy: policy,
				dbPath:     viper.GetString("db.path"),
			}
			switch opts.format {
			case "report", "tab", "vcf":
			default:
				return &usageError{fmt.Errorf("unknown output format %q (want report, tab or vcf)", opts.format)}
			}

			logger := newLogger(cmd.ErrOrStderr(), verbose)
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runScan(ctx, opts, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "mutation_results.txt", "Output file ('-' for stdout)")
	f.StringP("format", "f", "report", "Output format: report, tab, vcf")
	f.IntP("workers", "j", 0, "Translation workers (0 = number of CPUs)")
	f.String("stop-policy", "final", "Where stop codons are tolerated: final (last codon only) or match (where the original has one)")
	f.String("db", "", "Also store results in this DuckDB database")
	f.StringVar(&recordID, "record", "", "FASTA record ID to scan (default: first record)")

	return cmd
}

// bindFlag binds a config key to a flag of the running command. An explicit
// flag wins over the config file and environment.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func runScan(ctx context.Context, opts scanOptions, stdout, stderr io.Writer, logger *zap.Logger) error {
	rec, err := sequence.Load(opts.inputPath, sequence.LoadOptions{RecordID: opts.recordID})
	if err != nil {
		return err
	}
	if err := sequence.Validate(rec.Sequence); err != nil {
		return fmt.Errorf("%s: %w", opts.inputPath, err)
	}
	seq := rec.Sequence

	fmt.Fprintf(stderr, "Loaded DNA Sequence Length: %d bp\n", len(seq))
	logger.Debug("loaded sequence",
		zap.String("path", opts.inputPath),
		zap.String("record", rec.ID),
		zap.Int("length", len(seq)))

	s := scan.NewScanner()
	s.SetWorkers(opts.workers)
	s.SetStopPolicy(opts.stopPolicy)
	s.SetLogger(logger)

	fmt.Fprintf(stderr, "Starting simulation...\n")
	res, err := s.Enumerate(ctx, seq)
	if err != nil {
		return err
	}

	writeSummary(stderr, res)
	logger.Info("scan complete",
		zap.Int("protein_length", len(res.OriginalProtein)),
		zap.Int("variants", len(res.Variants)),
		zap.Int("stop_codons", res.StopCount),
		zap.Int("synonymous", res.SynonymousCount),
		zap.Int("duplicates", res.DuplicateCount),
		zap.Int("skipped", res.SkippedCount))

	if err := writeResults(opts, rec, res, stdout); err != nil {
		return err
	}
	if opts.outputPath != "-" {
		fmt.Fprintf(stderr, "Results successfully saved to %s\n", opts.outputPath)
	}

	if opts.dbPath != "" {
		id, err := storeResults(opts, rec, res)
		if err != nil {
			return err
		}
		logger.Info("stored scan", zap.String("db", opts.dbPath), zap.Int64("run_id", id))
	}

	return nil
}

// writeSummary prints the summary statistics block.
func writeSummary(w io.Writer, res *scan.Result) {
	fmt.Fprintf(w, "\n--- Summary Statistics ---\n")
	fmt.Fprintf(w, "Wild Type Protein Length: %d aa\n", len(res.OriginalProtein))
	fmt.Fprintf(w, "Total Theoretical Variants: %d\n", len(res.Variants))
	fmt.Fprintf(w, "Stop Codons Eliminated: %d\n", res.StopCount)
	fmt.Fprintf(w, "Synonymous Mutations Eliminated: %d\n", res.SynonymousCount)
	fmt.Fprintf(w, "Duplicate Proteins Eliminated: %d\n", res.DuplicateCount)
	if res.SkippedCount > 0 {
		fmt.Fprintf(w, "Untranslatable Candidates Skipped: %d\n", res.SkippedCount)
	}
}

func writeResults(opts scanOptions, rec *sequence.Record, res *scan.Result, stdout io.Writer) error {
	seq := rec.Sequence
	var out io.Writer
	if opts.outputPath == "-" {
		out = stdout
	} else {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch opts.format {
	case "tab":
		tw := output.NewTabWriter(out, seq, res.OriginalProtein)
		if err := tw.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for _, v := range res.Variants {
			if err := tw.Write(v); err != nil {
				return fmt.Errorf("writing variant: %w", err)
			}
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	case "vcf":
		vw := output.NewVCFWriter(out, rec.ID, seq, res.OriginalProtein)
		if err := vw.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for _, v := range res.Variants {
			if err := vw.Write(v); err != nil {
				return fmt.Errorf("writing variant: %w", err)
			}
		}
		if err := vw.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	default:
		if err := output.WriteReport(out, res.OriginalProtein, res.Variants); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

func storeResults(opts scanOptions, rec *sequence.Record, res *scan.Result) (int64, error) {
	store, err := duckdb.Open(opts.dbPath)
	if err != nil {
		return 0, fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	fp, err := duckdb.StatFile(opts.inputPath)
	if err != nil {
		return 0, fmt.Errorf("stat input: %w", err)
	}

	id, err := store.WriteRun(duckdb.Run{
		Source:     fp,
		RecordID:   rec.ID,
		StopPolicy: opts.stopPolicy.String(),
	}, rec.Sequence, res)
	if err != nil {
		return 0, fmt.Errorf("storing results: %w", err)
	}
	return id, nil
}
