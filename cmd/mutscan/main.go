// Package main provides the mutscan command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/mutscan/internal/sequence"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	var ue *usageError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "Run 'mutscan --help' for usage.\n")
		return ExitUsage
	case errors.Is(err, sequence.ErrMissingInput):
		fmt.Fprintf(stderr, "Hint: Check that the file path is correct\n")
	case errors.Is(err, sequence.ErrInvalidSequence):
		fmt.Fprintf(stderr, "Hint: The input must be a coding sequence of A, C, G, T with a length divisible by 3\n")
	}
	return ExitError
}

// usageError marks command-line mistakes so they exit with ExitUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// usageArgs wraps a cobra argument validator so its errors are usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mutscan",
		Short: "Point mutation scanner for coding sequences",
		Long: `mutscan enumerates every single-nucleotide substitution of a coding
sequence, translates each mutant, and keeps one representative per distinct
non-synonymous protein. Substitutions that introduce a premature stop codon
or leave the protein unchanged are counted and discarded.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.mutscan.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	root.AddCommand(newScanCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mutscan version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig reads ~/.mutscan.yaml (or --config) and MUTSCAN_* environment
// variables. A missing default config file is not an error.
func initConfig() error {
	viper.SetDefault("scan.workers", 0)
	viper.SetDefault("scan.stop_policy", "final")
	viper.SetDefault("output.format", "report")
	viper.SetDefault("output.path", "mutation_results.txt")
	viper.SetDefault("db.path", "")

	viper.SetEnvPrefix("MUTSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.SetConfigFile(filepath.Join(home, ".mutscan.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (cfgFile == "" && errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds a console logger writing to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core)
}
