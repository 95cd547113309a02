package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/buildinfo"
	"github.com/demonstra-dev/demonstra/internal/config"
	"github.com/demonstra-dev/demonstra/internal/logging"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	chartPath  string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:     "demonstra",
		Short:   "Income statement and balance sheet from SPED ledger files",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", config.FileName, "configuration file")
	rootCmd.PersistentFlags().StringVar(&g.chartPath, "chart", "", "chart CSV naming accounts missing from the file (overrides parser.chart_file)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(
		newInitCommand(),
		newParseCommand(g),
		newReportCommand(g),
		newChartCommand(g),
		newBatchCommand(g),
		newServeCommand(g),
	)

	return rootCmd
}

// env is the configuration and logger a command runs with.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// load reads the config file. A missing default config file falls back to
// the built-in defaults; a missing file named with --config is an error.
func (g *globalFlags) load(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || cmd.Flags().Changed("config") {
			return nil, err
		}
		cfg = config.Default("")
	}
	if g.chartPath != "" {
		if err := cfg.LoadReferenceChart(g.chartPath); err != nil {
			return nil, err
		}
	}

	lc := cfg.Logging
	if g.verbose {
		lc.Level = "debug"
		lc.Development = true
	}
	log, err := logging.New(lc)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) close() {
	_ = e.log.Sync()
}
