package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kilianp07/studiodesk/app"
	"github.com/kilianp07/studiodesk/config"
	"github.com/kilianp07/studiodesk/core/factory"
	"github.com/kilianp07/studiodesk/infra/logger"
	inframetrics "github.com/kilianp07/studiodesk/infra/metrics"
)

const defaultEnvFile = ".env"

type rootOptions struct {
	cfgPath         string
	envFile         string
	metricsTextfile string
	format          string
}

// NewRootCmd builds the studiodesk command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "studiodesk",
		Short:         "Order board partitioning and photographer scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnv(opts.envFile)
		},
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file loaded before the configuration (default .env when present)")
	root.PersistentFlags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	root.PersistentFlags().StringVarP(&opts.format, "output", "o", "json", "output format: json or csv")

	root.AddCommand(newPartitionCmd(opts), newSuggestCmd(opts), newVersionCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
		return nil
	}
	if _, err := os.Stat(defaultEnvFile); err == nil {
		if err := godotenv.Load(defaultEnvFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	return nil
}

// session holds what a command needs for one run.
type session struct {
	svc      *app.Service
	textfile string
	closeLog io.Closer
}

func openSession(opts *rootOptions) (*session, error) {
	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	closer, err := logger.Configure(cfg.Logging.Options())
	if err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	textfile := cfg.Metrics.Textfile
	if opts.metricsTextfile != "" {
		textfile = opts.metricsTextfile
	}
	if textfile != "" && !hasSink(cfg.Metrics.Sinks, "prometheus") {
		cfg.Metrics.Sinks = append(cfg.Metrics.Sinks, factory.ModuleConfig{Type: "prometheus"})
	}
	svc, err := app.New(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return &session{
		svc:      svc,
		textfile: textfile,
		closeLog: closer,
	}, nil
}

func hasSink(sinks []factory.ModuleConfig, typ string) bool {
	for _, s := range sinks {
		if s.Type == typ {
			return true
		}
	}
	return false
}

// Close flushes the metrics textfile and releases the service and log file.
func (s *session) Close() error {
	var errs []error
	if s.textfile != "" {
		if err := inframetrics.WriteTextfile(s.textfile, prometheus.DefaultGatherer); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.svc.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.closeLog.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
