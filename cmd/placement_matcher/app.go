package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/placement-matcher/internal/analysis"
	"github.com/jonathan/placement-matcher/internal/config"
	"github.com/jonathan/placement-matcher/internal/ingestion"
	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/jonathan/placement-matcher/internal/observability"
	"github.com/jonathan/placement-matcher/internal/types"
	"github.com/spf13/cobra"
)

// Output formats
const (
	formatJSON = "json"
	formatText = "text"
)

var (
	configPath   string
	lexiconPath  string
	outputFormat string
	verbose      bool

	// cfg and engine are set by setup before any command runs
	cfg    config.Config
	engine *analysis.Engine
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&lexiconPath, "lexicon", "", "Path to JSON lexicon file (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", formatJSON, "Output format: json or text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logging to stderr")
}

// setup loads configuration, configures logging and builds the engine.
func setup(cmd *cobra.Command, _ []string) error {
	if outputFormat != formatJSON && outputFormat != formatText {
		return fmt.Errorf("--format must be %q or %q, got %q", formatJSON, formatText, outputFormat)
	}

	fileCfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = loaded
	}
	flagCfg := config.Config{LexiconPath: lexiconPath}
	cfg = flagCfg.MergeWithDefaults(*fileCfg)
	cfg.Verbose = verbose || fileCfg.Verbose

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	lex, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		return err
	}
	engine, err = analysis.New(lex)
	if err != nil {
		return err
	}
	slog.Debug("engine ready", "lexicon_entries", lex.Len(), "lexicon_path", cfg.LexiconPath)
	return nil
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	return lexicon.LoadFile(path)
}

// readDocument reads and extracts text from a supported file, enforcing max_input_bytes.
func readDocument(path string) (string, *ingestion.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %s", path)
		}
		return "", nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > int64(cfg.MaxInputBytes) {
		return "", nil, fmt.Errorf("%s is %d bytes, limit is %d (max_input_bytes)", path, info.Size(), cfg.MaxInputBytes)
	}
	text, metadata, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", nil, err
	}
	slog.Debug("document ingested", "path", path, "format", metadata.Format, "bytes", metadata.Bytes)
	return text, metadata, nil
}

// readProfile builds a StudentProfile from a JSON file if given, then applies flag overrides.
func readProfile(cmd *cobra.Command, path string, cgpa float64, branch string, backlogs int, skills string) (*types.StudentProfile, error) {
	profile := &types.StudentProfile{}
	if path != "" {
		if err := readJSONFile(path, profile); err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}
	}
	if cmd.Flags().Changed("cgpa") {
		profile.CGPA = cgpa
	}
	if cmd.Flags().Changed("branch") {
		profile.Branch = branch
	}
	if cmd.Flags().Changed("backlogs") {
		profile.Backlogs = backlogs
	}
	if cmd.Flags().Changed("skills") {
		profile.Skills = skills
	}
	return profile, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// openOutput returns the --out file, or the command's stdout when path is empty.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeResult writes v as indented JSON, or through printText in text mode.
func writeResult(cmd *cobra.Command, outPath string, v any, printText func(*observability.Printer)) error {
	w, closeOut, err := openOutput(cmd, outPath)
	if err != nil {
		return err
	}

	if outputFormat == formatText {
		printText(observability.NewPrinter(w))
		return closeOut()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = closeOut()
		return fmt.Errorf("failed to write result: %w", err)
	}
	return closeOut()
}
