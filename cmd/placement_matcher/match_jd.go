package main

import (
	"fmt"

	"github.com/jonathan/placement-matcher/internal/observability"
	"github.com/jonathan/placement-matcher/internal/types"
	"github.com/spf13/cobra"
)

var matchJDCmd = &cobra.Command{
	Use:   "match-jd",
	Short: "Match a resume against a job description",
	Long:  "Analyze a job description, then score a resume's skills against the requirements it implies.",
	RunE:  runMatchJD,
}

var (
	matchResume string
	matchJDIn   string
	matchJDURL  string
	matchOut    string
)

func init() {
	matchJDCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume file (required)")
	matchJDCmd.Flags().StringVarP(&matchJDIn, "jd", "j", "", "Path to job description file")
	matchJDCmd.Flags().StringVarP(&matchJDURL, "url", "u", "", "URL to fetch the job posting from")
	matchJDCmd.Flags().StringVarP(&matchOut, "out", "o", "", "Output file (default stdout)")

	matchJDCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(matchJDCmd)
}

// jdMatch is the match-jd output
type jdMatch struct {
	JDAnalysis *types.JDAnalysis  `json:"jd_analysis"`
	Match      *types.MatchResult `json:"match"`
}

func runMatchJD(cmd *cobra.Command, _ []string) error {
	resumeText, _, err := readDocument(matchResume)
	if err != nil {
		return err
	}
	description, err := readJobDescription(cmd, matchJDIn, matchJDURL)
	if err != nil {
		return err
	}

	jd, err := engine.AnalyzeJobDescription(description)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	match, err := engine.MatchResumeWithJD(resumeText, jd)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	result := &jdMatch{JDAnalysis: jd, Match: match}
	return writeResult(cmd, matchOut, result, func(p *observability.Printer) {
		p.PrintJDAnalysis(jd)
		p.PrintMatchResult(match)
	})
}
