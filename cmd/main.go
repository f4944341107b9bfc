package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cathalgarvey/fastac/internal/config"
	"github.com/cathalgarvey/fastac/internal/fastac"
	"github.com/cathalgarvey/fastac/internal/store"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

type options struct {
	output  string
	format  string
	wrap    int
	casing  string
	config  string
	meta    bool
	verbose bool
}

func main() {
	opts := &options{}
	root := &cobra.Command{
		Use:          "fastac <fastafile>",
		Short:        "A simple compiler for commented fasta",
		Long:         "Compiles fastac source (FASTA with positional comments, JSON metadata and macros) into plain FASTA, metafasta, structured JSON or a sqlite database.",
		Args:         cobra.ExactArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}
	root.Flags().StringVarP(&opts.output, "output", "o", "", "filename to save output to, defaults to standard output")
	root.Flags().StringVarP(&opts.format, "format", "f", "fasta", "output format: fasta, metafasta, json or sqlite")
	root.Flags().IntVarP(&opts.wrap, "linelength", "l", fastac.DefaultLineWrap, "length to wrap sequence blocks around")
	root.Flags().StringVarP(&opts.casing, "case", "c", fastac.CaseLower, "casing to present sequences in: lower, upper or preserve")
	root.Flags().StringVar(&opts.config, "config", "", "path to config.json (optional)")
	root.Flags().BoolVarP(&opts.meta, "meta", "m", false, "keep metadata in the output (shorthand for --format metafasta)")
	root.Flags().BoolVar(&opts.verbose, "verbose", false, "enable verbose (debug) logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, input string, opts *options) error {
	cfg, err := config.LoadConfig(opts.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// merge CLI flags into config (flags override config when provided)
	if cfg.InputFasta == "" || input != "" {
		cfg.InputFasta = input
	}
	if cmd.Flags().Changed("output") || cfg.OutputPath == "" {
		cfg.OutputPath = opts.output
	}
	if cmd.Flags().Changed("format") || cfg.OutputFormat == "" {
		cfg.OutputFormat = opts.format
	}
	if (opts.meta || cfg.KeepMeta) && !cmd.Flags().Changed("format") {
		cfg.OutputFormat = "metafasta"
	}
	if cmd.Flags().Changed("linelength") || cfg.LineWrap == 0 {
		cfg.LineWrap = opts.wrap
	}
	if cmd.Flags().Changed("case") || cfg.LetterCase == "" {
		cfg.LetterCase = opts.casing
	}

	logger := newLogger(cfg, opts.verbose)
	logger.Debug("loaded config", "input_fasta", cfg.InputFasta, "output_path", cfg.OutputPath, "output_format", cfg.OutputFormat, "line_wrap", cfg.LineWrap, "letter_case", cfg.LetterCase)

	compiler, err := fastac.NewCompiler(fastac.Options{Case: cfg.LetterCase})
	if err != nil {
		return err
	}
	ns, err := compiler.CompileFile(cfg.InputFasta)
	if err != nil {
		logger.Error("compile failed", "path", cfg.InputFasta, "err", err)
		return err
	}
	logger.Info("compiled", "path", cfg.InputFasta, "blocks", ns.Len(), "libraries", compiler.Libraries().Len())

	var rendered string
	switch strings.ToLower(cfg.OutputFormat) {
	case "fasta", "":
		rendered = ns.Fasta(cfg.LineWrap)
	case "metafasta":
		rendered, err = ns.MetaFasta(cfg.LineWrap)
		if err != nil {
			return err
		}
	case "json":
		data, err := json.MarshalIndent(ns.Document(), "", "  ")
		if err != nil {
			return err
		}
		rendered = string(data)
	case "sqlite":
		if cfg.OutputPath == "" {
			return fmt.Errorf("sqlite output needs -o/--output")
		}
		if err := store.Save(cfg.OutputPath, ns); err != nil {
			logger.Error("failed to write sqlite output", "path", cfg.OutputPath, "err", err)
			return err
		}
		logger.Info("wrote sqlite output", "path", cfg.OutputPath, "blocks", ns.Len())
		return nil
	default:
		return fmt.Errorf("unknown output format %q", cfg.OutputFormat)
	}

	if cfg.OutputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	}
	if err := os.WriteFile(cfg.OutputPath, []byte(rendered+"\n"), 0o644); err != nil {
		logger.Error("failed to write output", "path", cfg.OutputPath, "err", err)
		return err
	}
	logger.Info("wrote output", "path", cfg.OutputPath, "format", cfg.OutputFormat, "blocks", ns.Len())
	return nil
}

// newLogger configures the charm logger on stderr, optionally teeing into
// the configured log file, with the level taken from flags then config.
func newLogger(cfg *config.Config, verbose bool) *log.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			out = io.MultiWriter(os.Stderr, f)
		}
	}
	logger := log.NewWithOptions(out, log.Options{ReportTimestamp: true})

	if verbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info", "":
		logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
		logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
	}
	return logger
}
