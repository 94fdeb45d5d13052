// Package cli is the modfather command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"modfather/internal/core/app"
	"modfather/internal/core/config"
	"modfather/internal/core/ports"
	"modfather/internal/shared/observability"
	"modfather/internal/shared/util"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

type options struct {
	configPath      string
	output          string
	graphName       string
	analysisType    string
	format          string
	includeExternal bool
	csvHeader       bool
	workers         int
	verbose         bool
}

// NewRootCmd builds the modfather command. Rendered output goes to the
// command's stdout, logs and the verbose summary to its stderr.
func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "modfather [flags] <path>...",
		Short: "Analyze PHP monoliths and generate dependency graphs",
		Long: `modfather extracts class-level dependencies from PHP sources and renders
them as a DOT or CSV graph, either per class or projected onto namespaces.

The recommend analysis detects circular namespace dependencies and ranks
candidate module groupings by cohesion.`,
		Version:       Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config file (default ./"+config.DefaultPath+" when present)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	flags.StringVarP(&opts.graphName, "graph-name", "n", "php_dependencies", "Name of the graph")
	flags.StringVarP(&opts.analysisType, "type", "t", config.AnalysisClass, "Type of analysis: class, namespace or recommend")
	flags.StringVarP(&opts.format, "format", "f", "", "Output format: dot, csv, yaml, json for graphs; text, yaml, json for recommend")
	flags.BoolVar(&opts.includeExternal, "include-external", false, "Include classes referenced but not defined in the analyzed code")
	flags.BoolVar(&opts.csvHeader, "csv-header", true, "Write a from,to header row in CSV output")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Files analyzed in parallel (default GOMAXPROCS)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func run(cmd *cobra.Command, opts options, paths []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:  cfg.Observability.ServiceName,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		SampleRate:   cfg.Observability.SampleRate,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	a, err := app.New(cfg, app.WithStdout(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	res, err := a.AnalysisService().Analyze(ctx, ports.AnalysisRequest{Paths: paths})
	if err != nil {
		return err
	}

	if err := observability.WriteTextfile(cfg.Observability.MetricsTextfile); err != nil {
		slog.Warn("failed to write metrics textfile", "path", cfg.Observability.MetricsTextfile, "error", err)
	}

	if opts.verbose {
		stats := util.ReadRuntimeStats()
		slog.Debug("runtime stats", "run_id", res.RunID, "heap_mb", stats.HeapAllocMB, "gc", stats.NumGC)
		fmt.Fprintln(cmd.ErrOrStderr(), RenderSummary(res))
	}
	return nil
}

// loadConfig layers the config file, environment overrides and explicitly set
// flags, in that order.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return nil, err
	}
	config.ApplyEnvOverrides(cfg)

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path = strings.TrimSpace(opts.output)
	}
	if flags.Changed("graph-name") {
		cfg.Output.GraphName = opts.graphName
	}
	if flags.Changed("type") {
		cfg.Analysis.Type = strings.ToLower(strings.TrimSpace(opts.analysisType))
	}
	if flags.Changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(opts.format))
	}
	if flags.Changed("include-external") {
		cfg.Analysis.IncludeExternal = opts.includeExternal
	}
	if flags.Changed("csv-header") {
		header := opts.csvHeader
		cfg.Output.CSVHeader = &header
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = opts.workers
		if opts.workers == 0 {
			cfg.Analysis.Workers = config.DefaultWorkers()
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
