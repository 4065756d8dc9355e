package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sales-advisor/backend/internal/config"
	"github.com/sales-advisor/backend/internal/ioc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCmd() *cobra.Command {
	var opts serverFlags

	cmd := &cobra.Command{
		Use:          "sales-advisor",
		Short:        "Analyze sales CSV files and generate sales advice",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = opts.logLevel
			}

			logger := ioc.InitLogger(cfg.Log, os.Stderr)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, opts.configPath, logger)
		},
	}

	opts.register(cmd.PersistentFlags())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

type serverFlags struct {
	configPath string
	port       int
	logLevel   string
}

func (f *serverFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file (created with defaults if missing)")
	fs.IntVarP(&f.port, "port", "p", 0, "HTTP port (overrides config and PORT)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sales-advisor version %s (built %s)\n", Version, BuildTime)
			return nil
		},
	}
}
