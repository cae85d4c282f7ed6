package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/c360studio/semvocab/config"
	"github.com/c360studio/semvocab/converter"
	"github.com/c360studio/semvocab/export"
	"github.com/c360studio/semvocab/output"
)

// outputFlags override configuration for one invocation.
type outputFlags struct {
	source   string
	output   string
	format   string
	profile  string
	sink     string
	template string
	workers  int
	stdout   bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Source workbook or CSV file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (file sink)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (jsonld, turtle, ntriples)")
	cmd.Flags().StringVar(&f.profile, "profile", "", "RDF export profile (minimal, extended)")
	cmd.Flags().StringVar(&f.sink, "sink", "", "Output sink (file, stdout, nats)")
	cmd.Flags().StringVar(&f.template, "template", "", "JSON-LD envelope template")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Concurrent hierarchy workers")
	cmd.Flags().BoolVar(&f.stdout, "stdout", false, "Write to stdout (same as --sink stdout)")
}

// apply merges the flags into cfg.
func (f *outputFlags) apply(cfg *config.Config) {
	cfg.Merge(&config.Config{
		Vocabulary: config.VocabularyConfig{Template: f.template},
		Source:     config.SourceConfig{Path: f.source},
		Output: config.OutputConfig{
			Sink:    f.sink,
			Path:    f.output,
			Format:  f.format,
			Profile: f.profile,
		},
		Resolve: config.ResolveConfig{Workers: f.workers},
	})
	if f.stdout {
		cfg.Output.Sink = config.SinkStdout
	}
}

func convertCmd(global *globalFlags) *cobra.Command {
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the source once and publish the vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			flags.apply(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			conv, cleanup, err := newConverter(cmd, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := conv.Run(ctx)
			if err != nil {
				return err
			}
			if !summary.Report.Clean() {
				logger.Warn("Vocabulary published with warnings",
					"unresolved", len(summary.Report.Unresolved),
					"duplicates", len(summary.Report.Duplicates))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// newConverter validates cfg and wires the sink, graph publication and
// metrics. cleanup releases the sink and any NATS connection.
func newConverter(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, metrics *converter.Metrics) (*converter.Converter, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", config.ErrConfigLoad, err)
	}

	info, _ := export.GetFormatInfo(export.Format(cfg.Output.Format))
	sink, err := output.New(cfg, cmd.OutOrStdout(), info.MIMEType)
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){func() { _ = sink.Close() }}
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	opts := []converter.Option{converter.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, converter.WithMetrics(metrics))
	}
	if cfg.NATS.GraphSubject != "" {
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name(appName+"-graph"))
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to NATS: %w", err)
		}
		closers = append(closers, nc.Close)
		opts = append(opts, converter.WithGraph(nc, cfg.NATS.GraphSubject))
	}

	conv, err := converter.New(cfg, sink, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return conv, cleanup, nil
}
