// Package cmd provides the CLI commands for the voter directory.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khalidmahamud/voter-info-web/config"
	"github.com/khalidmahamud/voter-info-web/internal/directory"
	"github.com/khalidmahamud/voter-info-web/internal/logger"
)

// Version is set at build time.
var Version = "dev"

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	dataPath   string
	logLevel   string
}

// NewRootCmd creates the root command for the voter directory CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "voter_directory",
		Short: "Fuzzy search over ward voter lists",
		Long: `voter_directory serves and queries a ward voter list.

Names, parents' names, voter numbers and addresses are matched
approximately in Bengali and English, with Bengali and ASCII digits
treated alike.

Examples:
  voter_directory serve --data data/voters.json --watch
  voter_directory search "abdul karim" --ward 3
  voter_directory stats --ward all
  voter_directory export --ward 2 --gender female --format csv`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetVersionTemplate("voter_directory version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVarP(&opts.dataPath, "data", "d", "", "Path to the voter dataset (overrides data.path)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
		newConvertNumeralsCmd(opts),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (config.AppConfig, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.AppConfig{}, err
	}
	if o.dataPath != "" {
		cfg.Data.Path = o.dataPath
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// newLogger builds the logger. One-shot commands log warnings and errors
// only unless a level is configured.
func (o *rootOptions) newLogger(cfg config.AppConfig, quiet bool) (*zap.Logger, error) {
	level := cfg.Logging.Level
	if level == "" && quiet {
		level = "warn"
	}
	log, err := logger.NewLogger(cfg.Logging.Env, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// openDirectory loads the dataset and builds the ward indexes.
func openDirectory(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (*directory.Directory, error) {
	return directory.New(ctx, directory.Config{
		Path:            cfg.Data.Path,
		Search:          cfg.Search,
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
		CacheSize:       cfg.CacheSize(),
	}, log)
}

// setup loads config, logger and directory for one-shot commands.
func (o *rootOptions) setup(ctx context.Context) (*directory.Directory, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := o.newLogger(cfg, true)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = log.Sync() }

	dir, err := openDirectory(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return dir, cleanup, nil
}
