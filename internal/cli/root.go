// Package cli implements the tourguide command tree.
package cli

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Zereker/tourguide/internal/config"
	"github.com/Zereker/tourguide/internal/output"
)

// envLogLevel overrides the configured log level when --log-level is unset.
const envLogLevel = "TOURGUIDE_LOG_LEVEL"

// app carries the global flags and the state set during PersistentPreRunE.
type app struct {
	cfgFile  string
	logLevel string
	format   string
	address  string
	port     uint16

	cfg       *config.Config
	logger    *slog.Logger
	formatter output.Formatter
}

// NewRootCmd returns the tourguide command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tourguide",
		Short: "Ask a tour-guide where to go next",
		Long: `tourguide runs a tour-guide that owns a shared itinerary and answers one
question per connection, and the traveller commands that ask it.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ~/.tourguide/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "verbosity of log, valid values are: debug, info, warn, error")
	flags.StringVarP(&a.format, "output", "o", "", "output format: text, json, yaml (default \"text\")")
	flags.StringVar(&a.address, "address", "", "tour-guide address for traveller commands")
	flags.Uint16VarP(&a.port, "port", "p", 0, "tour-guide port")

	root.AddCommand(a.serveCmd(), a.askCmd(), a.tourCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	} else if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if flags.Changed("output") {
		cfg.Output = a.format
	}
	if flags.Changed("address") {
		cfg.Address = a.address
	}
	if flags.Changed("port") {
		cfg.Port = a.port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(a.logger)
	a.formatter = output.NewFormatter(cfg.Output)
	return nil
}
