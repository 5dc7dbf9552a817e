package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/placement-matcher/internal/ingestion"
	"github.com/jonathan/placement-matcher/internal/observability"
	"github.com/spf13/cobra"
)

var analyzeJDCmd = &cobra.Command{
	Use:   "analyze-jd",
	Short: "Analyze a job description from a file or URL",
	Long:  "Derive required and preferred skills and a seniority hint from a job description file or posting URL.",
	RunE:  runAnalyzeJD,
}

var (
	jdIn  string
	jdURL string
	jdOut string
)

func init() {
	analyzeJDCmd.Flags().StringVarP(&jdIn, "in", "i", "", "Path to job description file")
	analyzeJDCmd.Flags().StringVarP(&jdURL, "url", "u", "", "URL to fetch the job posting from")
	analyzeJDCmd.Flags().StringVarP(&jdOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(analyzeJDCmd)
}

// readJobDescription ingests a job description from exactly one of path or url.
func readJobDescription(cmd *cobra.Command, path, url string) (string, error) {
	if path == "" && url == "" {
		return "", fmt.Errorf("either --in or --url must be provided")
	}
	if path != "" && url != "" {
		return "", fmt.Errorf("--in and --url are mutually exclusive; provide only one")
	}

	if path != "" {
		text, _, err := readDocument(path)
		return text, err
	}

	text, metadata, err := ingestion.IngestFromURL(cmd.Context(), url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to ingest from URL: %w", err)
	}
	if len(text) > cfg.MaxInputBytes {
		return "", fmt.Errorf("job description is %d bytes, limit is %d (max_input_bytes)", len(text), cfg.MaxInputBytes)
	}
	slog.Debug("job description fetched", "url", metadata.Source, "platform", metadata.Platform, "hash", metadata.Hash)
	return text, nil
}

func runAnalyzeJD(cmd *cobra.Command, _ []string) error {
	description, err := readJobDescription(cmd, jdIn, jdURL)
	if err != nil {
		return err
	}

	result, err := engine.AnalyzeJobDescription(description)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeResult(cmd, jdOut, result, func(p *observability.Printer) {
		p.PrintJDAnalysis(result)
	})
}
