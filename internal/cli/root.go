// Package cli implements the aigc-check command line front-end over the
// detection client and orchestrator.
package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/imleoo/aigc-check/internal/client"
)

const version = "1.0.0"

type rootOptions struct {
	ServerURL string
	Timeout   time.Duration
	JSON      bool
	Verbose   bool
}

// Execute builds the root command tree and runs the CLI.
func Execute() error {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "aigc-check",
		Short:         "Client for the AIGC content detection service",
		Long: `aigc-check submits text to an AIGC (AI-generated-content) detection
service and renders the composite risk assessment: total and per-dimension
scores, rule engine findings, suggestions and multimodal fusion output.
It also lists and manages the stored detection history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate("aigc-check version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "http://localhost:8080/api/v1", "Base URL of the detection service API")
	rootCmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", client.DefaultTimeout, "Per-request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Emit raw JSON instead of formatted output")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newDetectCmd(opts),
		newGetCmd(opts),
		newHistoryCmd(opts),
	)

	return rootCmd.Execute()
}

// newClient builds the detection client shared by all subcommands.
func (o *rootOptions) newClient() (*client.Client, *zap.Logger) {
	logger := o.newLogger()
	return client.New(o.ServerURL, logger, client.WithTimeout(o.Timeout)), logger
}

func (o *rootOptions) newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if o.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
