package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/placement-matcher/internal/ingestion"
	"github.com/jonathan/placement-matcher/internal/observability"
	"github.com/jonathan/placement-matcher/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every resume in a directory",
	Long: "Analyze every supported resume file in a directory concurrently and write one JSON line " +
		"per file, in file name order. A file that fails records its error and does not stop the batch.",
	RunE: runBatch,
}

var (
	batchDir          string
	batchOut          string
	batchRole         string
	batchProfile      string
	batchRequirements string
	batchConcurrency  int
)

func init() {
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of resume files (required)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output file (default stdout)")
	batchCmd.Flags().StringVar(&batchRole, "role", "", "Role weight profile applied to every resume")
	batchCmd.Flags().StringVar(&batchProfile, "profile", "", "Student profile JSON applied to every resume")
	batchCmd.Flags().StringVar(&batchRequirements, "requirements", "", "Job requirements JSON applied to every resume")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Parallel analyses (default from config)")

	batchCmd.MarkFlagRequired("dir")

	rootCmd.AddCommand(batchCmd)
}

// batchLine is one output line of the batch command
type batchLine struct {
	File     string                `json:"file"`
	Analysis *types.ResumeAnalysis `json:"analysis,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// batchFiles lists the supported files in dir, sorted by name.
func batchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if _, err := ingestion.DetectFormat(e.Name()); err != nil {
			slog.Debug("skipping unsupported file", "file", e.Name())
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}

// analyzeBatch analyzes files concurrently; results keep the order of files.
func analyzeBatch(ctx context.Context, dir string, files []string, profile *types.StudentProfile, req *types.JobRequirements, role string, limit int) ([]batchLine, error) {
	results := make([]batchLine, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, name := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			line := batchLine{File: name}
			text, _, err := readDocument(filepath.Join(dir, name))
			if err == nil {
				line.Analysis, err = engine.AnalyzeResume(text, profile, req, role)
			}
			if err != nil {
				slog.Warn("resume analysis failed", "file", name, "error", err)
				line.Error = err.Error()
			}
			results[i] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	files, err := batchFiles(batchDir)
	if err != nil {
		return err
	}

	profile := &types.StudentProfile{}
	if batchProfile != "" {
		if err := readJSONFile(batchProfile, profile); err != nil {
			return fmt.Errorf("failed to read profile: %w", err)
		}
	}
	var req *types.JobRequirements
	if batchRequirements != "" {
		req = &types.JobRequirements{}
		if err := readJSONFile(batchRequirements, req); err != nil {
			return fmt.Errorf("failed to read requirements: %w", err)
		}
	}

	limit := batchConcurrency
	if limit <= 0 {
		limit = cfg.BatchConcurrency
	}
	slog.Debug("batch starting", "dir", batchDir, "files", len(files), "concurrency", limit)

	results, err := analyzeBatch(cmd.Context(), batchDir, files, profile, req, roleOrDefault(batchRole), limit)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(cmd, batchOut)
	if err != nil {
		return err
	}

	if outputFormat == formatText {
		p := observability.NewPrinter(w)
		for _, line := range results {
			fmt.Fprintf(w, "\n== %s ==\n", line.File)
			if line.Error != "" {
				p.PrintWarnings([]string{line.Error})
				continue
			}
			p.PrintResumeAnalysis(line.Analysis)
		}
		return closeOut()
	}

	enc := json.NewEncoder(w)
	for _, line := range results {
		if err := enc.Encode(line); err != nil {
			_ = closeOut()
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return closeOut()
}
