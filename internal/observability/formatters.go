// Package observability provides formatted output utilities for text-mode CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/placement-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// writeList writes up to limit items as bullets, then a "more" line.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

func mark(passed bool) string {
	if passed {
		return "✓"
	}
	return "✗"
}

// PrintResumeAnalysis outputs a human-readable summary of a resume analysis.
func (p *Printer) PrintResumeAnalysis(a *types.ResumeAnalysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Structural score: %.2f (%s profile)\n", a.StructuralScore, a.RoleProfile))
	sb.WriteString(fmt.Sprintf("Word count:       %d\n", a.WordCount))
	if a.MeetsMinCGPA != nil {
		sb.WriteString(fmt.Sprintf("Meets min CGPA:   %t\n", *a.MeetsMinCGPA))
	}
	sb.WriteString("\n")

	if len(a.Checks) > 0 {
		sb.WriteString("Checks:\n")
		for _, c := range a.Checks {
			sb.WriteString(fmt.Sprintf("  %s %-24s %3d\n", mark(c.Passed), c.Name, c.Weight))
		}
		sb.WriteString("\n")
	}

	skillNames := make([]string, len(a.Skills))
	for i, s := range a.Skills {
		skillNames[i] = fmt.Sprintf("%s (%s)", s.Canonical, strings.ToLower(string(s.Category)))
	}
	if len(skillNames) > 0 {
		sb.WriteString(fmt.Sprintf("Skills found: %d\n", len(skillNames)))
		writeList(&sb, "Top skills", skillNames, maxItemsToShow)
	}
	writeList(&sb, "Unverified profile skills", a.UnverifiedProfileSkills, 3)

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))

	if a.RequirementMatch != nil {
		p.PrintMatchResult(a.RequirementMatch)
	}
	p.PrintWarnings(a.Warnings)
}

// PrintJDAnalysis outputs the skills and seniority implied by a job description.
func (p *Printer) PrintJDAnalysis(jd *types.JDAnalysis) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Seniority: %s", jd.SeniorityHint))
	if jd.ExperienceYears != nil {
		sb.WriteString(fmt.Sprintf(" (%d+ years)", *jd.ExperienceYears))
	}
	sb.WriteString("\n\n")

	writeList(&sb, "Required", jd.ImpliedRequired, maxItemsToShow)
	writeList(&sb, "Preferred", jd.ImpliedPreferred, 3)
	if len(jd.ImpliedRequired) == 0 && len(jd.ImpliedPreferred) == 0 {
		sb.WriteString("No known skills mentioned\n")
	}

	p.printBox("JOB DESCRIPTION ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintWarnings(jd.Warnings)
}

// PrintMatchResult outputs a match score with matched and missing skills.
func (p *Printer) PrintMatchResult(m *types.MatchResult) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score: %.2f / 100\n\n", m.Score))
	writeList(&sb, "Matched", m.MatchedSkills, maxItemsToShow)
	writeList(&sb, "Missing required", m.MissingRequired, maxItemsToShow)
	writeList(&sb, "Missing preferred", m.MissingPreferred, 3)

	p.printBox("SKILL MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs analysis warnings, or a single line when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, w := range warnings {
		sb.WriteString("⚠ " + w)
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("WARNINGS (%d)", len(warnings)), sb.String())
}
