package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ngmaloney/scubalog-terminal/internal/config"
	"github.com/ngmaloney/scubalog-terminal/internal/logging"
	"github.com/ngmaloney/scubalog-terminal/internal/sheets"
	"github.com/ngmaloney/scubalog-terminal/internal/ui"
)

// app holds what the subcommands share once flags are parsed
type app struct {
	configPath string
	verbose    bool

	// Flag overrides, applied only when set
	sheetID string
	tab     string
	host    string
	mapping string
	timeout time.Duration
	logFile string

	cfg    *config.Config
	logger *zap.Logger
	client *sheets.GoogleSheetsClient
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "scubalog",
		Short: "Terminal dashboard for a Google Sheets dive log",
		Long: `ScubaLog reads a dive log kept in a Google Sheet (usually the responses tab
of a Google Form), computes summary statistics and shows the dives as cards.

Run without a subcommand to open the interactive dashboard.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDashboard()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default ./"+config.DefaultConfigFile+" if present)")
	flags.StringVar(&a.sheetID, "sheet-id", "", "Google Sheet ID")
	flags.StringVar(&a.tab, "tab", "", "Sheet tab name")
	flags.StringVar(&a.host, "host", "", "Spreadsheet host URL")
	flags.StringVar(&a.mapping, "mapping", "", "Column mapping: positional or header")
	flags.DurationVar(&a.timeout, "timeout", config.DefaultHTTPTimeout, "HTTP timeout (0 for none)")
	flags.StringVar(&a.logFile, "log-file", "", "Log file path")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))

	return rootCmd
}

// setup loads config, applies flag overrides and builds the logger and client
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("sheet-id") {
		cfg.Sheet.ID = a.sheetID
	}
	if flags.Changed("tab") {
		cfg.Sheet.Tab = a.tab
	}
	if flags.Changed("host") {
		cfg.Sheet.Host = a.host
	}
	if flags.Changed("mapping") {
		cfg.Sheet.Mapping = config.MappingMode(a.mapping)
	}
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = a.timeout
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = a.logFile
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.client = sheets.NewGoogleSheetsClient(cfg.Sheet, cfg.HTTP.Timeout, logger)

	logger.Debug("Configuration loaded",
		zap.String("sheet", cfg.Sheet.ID),
		zap.String("tab", cfg.Sheet.Tab),
		zap.String("mapping", string(cfg.Sheet.Mapping)),
		zap.Duration("timeout", cfg.HTTP.Timeout))

	return nil
}

// runDashboard starts the interactive TUI
func (a *app) runDashboard() error {
	p := tea.NewProgram(ui.NewModel(a.client, a.cfg.Sheet, a.logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
