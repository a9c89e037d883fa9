// moodscope scores journal entries for sentiment and emotion.
//
// Main CLI entrypoint using the cobra command framework.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/moodscope"
	"github.com/tsawler/moodscope/api"
	"github.com/tsawler/moodscope/internal/config"
	"github.com/tsawler/moodscope/internal/logging"
	"github.com/tsawler/moodscope/internal/metrics"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by subcommands after PersistentPreRunE.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "moodscope",
		Short:         "Sentiment and emotion scoring for journal entries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			configFile, _ := cmd.Flags().GetString("config")
			if configFile != "" {
				a.cfg, err = config.LoadFromFile(configFile)
			} else {
				a.cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				a.cfg.Logging.Level = level
			}
			a.logger, err = logging.New(a.cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newLexiconCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) newAnalyzer() (*moodscope.Analyzer, error) {
	opts, err := a.cfg.AnalyzerOptions()
	if err != nil {
		return nil, err
	}
	return moodscope.NewAnalyzer(opts...)
}

// --- Serve Command ---

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port, _ := cmd.Flags().GetInt("port"); port > 0 {
				a.cfg.Server.Port = port
			}

			analyzer, err := a.newAnalyzer()
			if err != nil {
				return err
			}

			var collector *metrics.Collector
			if a.cfg.Metrics.Enabled {
				collector = metrics.NewCollector("moodscope")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting moodscope",
				zap.String("version", version),
				zap.String("polarity_backend", a.cfg.Analysis.PolarityBackend),
				zap.String("weighting_mode", a.cfg.Analysis.WeightingMode))

			return api.NewServer(a.cfg, analyzer, a.logger, collector, version).Run(ctx)
		},
	}
	cmd.Flags().Int("port", 0, "override server.port")
	return cmd
}

// --- Analyze Command ---

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze text from arguments, a file, or stdin",
		Long: `Analyze one entry given as arguments, or many entries read one per
line from --file or standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			format, _ := cmd.Flags().GetString("output")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			analyzer, err := a.newAnalyzer()
			if err != nil {
				return err
			}

			if len(args) > 0 && file == "" {
				report, err := analyzer.Analyze(strings.Join(args, " "), nil)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), format, report)
			}

			in := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			texts, err := readLines(in)
			if err != nil {
				return err
			}
			a.logger.Debug("analyzing batch", zap.Int("entries", len(texts)), zap.Int("concurrency", concurrency))

			reports, err := analyzer.AnalyzeBatch(cmd.Context(), texts, concurrency)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, reports)
		},
	}
	cmd.Flags().StringP("file", "f", "", "read entries from a file, one per line")
	cmd.Flags().StringP("output", "o", "json", "output format (json, yaml)")
	cmd.Flags().IntP("concurrency", "c", 4, "parallel analyses in batch mode")
	return cmd
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// --- Lexicon Command ---

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect emotion lexicons",
	}

	check := &cobra.Command{
		Use:   "check <path>",
		Short: "Validate an external lexicon file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			load := moodscope.LoadEmotionLexicon
			if strict {
				load = moodscope.LoadEmotionLexiconStrict
			}
			lex, err := load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s OK: %s\n", args[0], lex)
			for _, emotion := range lex.Emotions() {
				w := lex.Weight(emotion)
				fmt.Fprintf(out, "  %-12s %3d words  weights +%.2f/-%.2f\n",
					emotion, len(lex.Triggers(emotion)), w.Positive, w.Negative)
			}
			return nil
		},
	}
	check.Flags().Bool("strict", false, "do not merge onto the built-in lexicon")

	export := &cobra.Command{
		Use:   "export",
		Short: "Print the built-in lexicon in external file format",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			return writeOutput(cmd.OutOrStdout(), format, moodscope.DefaultEmotionLexicon().Export())
		},
	}
	export.Flags().StringP("output", "o", "yaml", "output format (json, yaml)")

	cmd.AddCommand(check, export)
	return cmd
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "moodscope %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

