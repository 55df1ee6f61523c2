package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lostfound/internal/catalog"
	"github.com/dmitrijs2005/lostfound/internal/client/cli"
	"github.com/dmitrijs2005/lostfound/internal/client/config"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// loadConfig reads configuration from the raw command line so the config
// flags work before and after subcommand names.
var loadConfig = config.LoadConfig

// NewRootCmd creates the root command of the lostfound client.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lostfound",
		Short:         "Lost & found terminal client",
		Long:          `Sign in, register and browse lost and found items from the terminal.`,
		Version:       buildVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: runInteractive,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("lostfound {{.Version}} (built %s, commit %s)\n", buildDate, buildCommit))

	// Declared so they show in help and pass cobra's parser; config.Load
	// reads the values.
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file path")
	flags.StringP("store", "s", "", "session database path")
	flags.StringP("log-format", "f", "", "log format: text or json")
	flags.IntP("auth-delay", "t", 0, "simulated authentication delay (in milliseconds)")

	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewSessionCmd())

	return cmd
}

func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewSlogLogger(logging.Setup("lostfound", buildVersion, cfg.LogFormat, cfg.LogLevel, os.Stderr))
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := cli.NewApp(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), newLogger(cfg))
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(cmd.Context())
}

// NewCatalogCmd creates the catalog subcommand.
func NewCatalogCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List lost and found items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			filter, err := catalog.ParseFilter(kind)
			if err != nil {
				return err
			}

			var source catalog.Source = catalog.Builtin()
			if cfg.CatalogFile != "" {
				if source, err = catalog.LoadFile(cfg.CatalogFile); err != nil {
					return err
				}
			}

			entries, err := source.Entries(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range catalog.Apply(entries, filter) {
				cmd.Printf("#%s [%s] %s | %s | %s | %s\n", e.ID, e.Kind, e.Title, e.Category, e.Location, e.Date)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "all", "filter: all, lost or found")
	return cmd
}

// NewSessionCmd creates the session subcommand.
func NewSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := session.Open(cmd.Context(), cfg.StorePath)
			if err != nil {
				return err
			}
			defer store.Close()

			return cli.PrintSession(cmd.Context(), store, cmd.OutOrStdout())
		},
	}
}
