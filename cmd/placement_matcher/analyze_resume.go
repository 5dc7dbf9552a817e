package main

import (
	"fmt"

	"github.com/jonathan/placement-matcher/internal/observability"
	"github.com/jonathan/placement-matcher/internal/types"
	"github.com/spf13/cobra"
)

var analyzeResumeCmd = &cobra.Command{
	Use:   "analyze-resume",
	Short: "Analyze a resume file",
	Long: "Extract skills and sections from a resume (.txt, .pdf, .docx, .html), score its structure " +
		"under a role weight profile, and optionally match it against a requirement set.",
	RunE: runAnalyzeResume,
}

var (
	resumeIn          string
	resumeOut         string
	resumeRole        string
	profilePath       string
	requirementsPath  string
	profileCGPA       float64
	profileBranch     string
	profileBacklogs   int
	profileSkills     string
	requiredSkills    string
	preferredSkills   string
	requirementMinGPA float64
)

func init() {
	analyzeResumeCmd.Flags().StringVarP(&resumeIn, "in", "i", "", "Path to resume file (required)")
	analyzeResumeCmd.Flags().StringVarP(&resumeOut, "out", "o", "", "Output file (default stdout)")
	analyzeResumeCmd.Flags().StringVar(&resumeRole, "role", "", "Role weight profile (default, research, internship)")
	analyzeResumeCmd.Flags().StringVar(&profilePath, "profile", "", "Path to student profile JSON")
	analyzeResumeCmd.Flags().Float64Var(&profileCGPA, "cgpa", 0, "Student CGPA on a 10-point scale")
	analyzeResumeCmd.Flags().StringVar(&profileBranch, "branch", "", "Student branch")
	analyzeResumeCmd.Flags().IntVar(&profileBacklogs, "backlogs", 0, "Active backlog count")
	analyzeResumeCmd.Flags().StringVar(&profileSkills, "skills", "", "Comma-separated skills claimed on the profile")
	analyzeResumeCmd.Flags().StringVar(&requirementsPath, "requirements", "", "Path to job requirements JSON")
	analyzeResumeCmd.Flags().StringVar(&requiredSkills, "required", "", "Comma-separated required skills")
	analyzeResumeCmd.Flags().StringVar(&preferredSkills, "preferred", "", "Comma-separated preferred skills")
	analyzeResumeCmd.Flags().Float64Var(&requirementMinGPA, "min-cgpa", 0, "Minimum CGPA for eligibility")

	analyzeResumeCmd.MarkFlagRequired("in")
	analyzeResumeCmd.MarkFlagsMutuallyExclusive("requirements", "required")
	analyzeResumeCmd.MarkFlagsMutuallyExclusive("requirements", "preferred")

	rootCmd.AddCommand(analyzeResumeCmd)
}

// readRequirements builds JobRequirements from --requirements or the inline flags; nil when none are given.
func readRequirements(cmd *cobra.Command) (*types.JobRequirements, error) {
	var req *types.JobRequirements
	if requirementsPath != "" {
		req = &types.JobRequirements{}
		if err := readJSONFile(requirementsPath, req); err != nil {
			return nil, fmt.Errorf("failed to read requirements: %w", err)
		}
	}
	if cmd.Flags().Changed("required") || cmd.Flags().Changed("preferred") {
		req = &types.JobRequirements{
			RequiredSkills:  splitList(requiredSkills),
			PreferredSkills: splitList(preferredSkills),
		}
	}
	if cmd.Flags().Changed("min-cgpa") {
		if req == nil {
			req = &types.JobRequirements{}
		}
		minCGPA := requirementMinGPA
		req.MinCGPA = &minCGPA
	}
	return req, nil
}

func roleOrDefault(role string) string {
	if role == "" {
		return cfg.DefaultRole
	}
	return role
}

func runAnalyzeResume(cmd *cobra.Command, _ []string) error {
	text, _, err := readDocument(resumeIn)
	if err != nil {
		return err
	}
	profile, err := readProfile(cmd, profilePath, profileCGPA, profileBranch, profileBacklogs, profileSkills)
	if err != nil {
		return err
	}
	requirements, err := readRequirements(cmd)
	if err != nil {
		return err
	}

	result, err := engine.AnalyzeResume(text, profile, requirements, roleOrDefault(resumeRole))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeResult(cmd, resumeOut, result, func(p *observability.Printer) {
		p.PrintResumeAnalysis(result)
	})
}
