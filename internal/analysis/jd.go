package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/ranking"
	"github.com/jonathan/placement-matcher/internal/skills"
	"github.com/jonathan/placement-matcher/internal/types"
)

// qualifierWindow is how many tokens a skill may sit from a qualifier and still be required
const qualifierWindow = 8

// qualifiers are token sequences that mark nearby skills as required
var qualifiers = [][]string{
	{"required"},
	{"requires"},
	{"requirement"},
	{"requirements"},
	{"mandatory"},
	{"essential"},
	{"must-have"},
	{"must", "have"},
	{"must", "know"},
}

// preferredHeadings open a list of preferred skills ("Preferred Qualifications",
// "Nice to have:") and end any requirements block
var preferredHeadings = []string{
	"preferred", "nice to have", "nice-to-have", "good to have", "good-to-have",
	"bonus", "plus", "desired", "desirable", "optional",
}

// maxBareHeadingTokens is the longest line without a trailing colon that can be a block heading
const maxBareHeadingTokens = 4

var (
	// yearsRe matches "3+ years", "5-7 years", "2 to 4 yrs", "10 plus years"
	yearsRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:\+|plus)?\s*(?:(?:-|–|to)\s*\d{1,2}\s*\+?\s*)?(?:years?|yrs?)\b`)
	// sentenceEndRe splits a line into sentences; a period inside node.js does not match
	sentenceEndRe = regexp.MustCompile(`[.;!?](?:\s+|$)`)
)

// AnalyzeJobDescription extracts the skills a job description asks for.
// Skills within a few tokens of a qualifier ("required", "must have"), or
// listed under a qualifier heading, are required; every other skill is
// preferred. Seniority comes from experience-year phrases.
// Invalid UTF-8 is replaced and reported as a warning.
func (e *Engine) AnalyzeJobDescription(description string) (*types.JDAnalysis, error) {
	description, repaired := sanitizeText(description)
	result := e.analyzeJD(description)
	if repaired {
		result.Warnings = append(result.Warnings, "job description contained invalid UTF-8; bad bytes were replaced")
	}
	return result, nil
}

func (e *Engine) analyzeJD(description string) *types.JDAnalysis {
	result := &types.JDAnalysis{
		ImpliedRequired:  []string{},
		ImpliedPreferred: []string{},
		SeniorityHint:    types.SeniorityUnknown,
		Warnings:         []string{},
	}
	if strings.TrimSpace(description) == "" {
		result.Warnings = append(result.Warnings, "job description is empty")
		return result
	}

	type hit struct {
		canonical string
		required  bool
	}
	var hits []hit
	inRequiredBlock := false

	for _, line := range strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if heading, required := e.classifyBlockLine(trimmed); heading {
			inRequiredBlock = required
		}
		for _, sentence := range splitSentences(trimmed) {
			tokens := e.extractor.Normalizer().Normalize(sentence)
			spans := qualifierSpans(tokens)
			for _, occ := range e.extractor.Scan(tokens, "") {
				hits = append(hits, hit{
					canonical: occ.Skill.Canonical,
					required:  inRequiredBlock || nearQualifier(occ, spans),
				})
			}
		}
	}

	required := make(map[string]bool)
	for _, h := range hits {
		if h.required {
			required[h.canonical] = true
		}
	}
	seen := make(map[string]struct{})
	for _, h := range hits {
		if _, dup := seen[h.canonical]; dup {
			continue
		}
		seen[h.canonical] = struct{}{}
		if required[h.canonical] {
			result.ImpliedRequired = append(result.ImpliedRequired, h.canonical)
		} else {
			result.ImpliedPreferred = append(result.ImpliedPreferred, h.canonical)
		}
	}

	if years, ok := ExperienceYears(description); ok {
		result.ExperienceYears = &years
		result.SeniorityHint = SeniorityForYears(years)
	}
	if len(hits) == 0 {
		result.Warnings = append(result.Warnings, "no recognized skills found in job description")
	}
	return result
}

// MatchResumeWithJD extracts resume skills and matches them against the
// skills implied by a job description analysis.
func (e *Engine) MatchResumeWithJD(text string, jd *types.JDAnalysis) (*types.MatchResult, error) {
	if jd == nil {
		return nil, &parsing.ValidationError{Field: "jd_analysis", Message: "job description analysis is required"}
	}
	text, _ = sanitizeText(text)
	extracted := e.extractor.ExtractSections(parsing.Segment(text))
	names := make([]string, len(extracted))
	for i, s := range extracted {
		names[i] = s.Canonical
	}
	match := ranking.Match(names, jd.ImpliedRequired, jd.ImpliedPreferred, e.extractor)
	return &match, nil
}

// ExperienceYears returns the largest minimum year count among the
// experience-year phrases in text.
func ExperienceYears(text string) (int, bool) {
	best, found := 0, false
	for _, m := range yearsRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !found || n > best {
			best, found = n, true
		}
	}
	return best, found
}

// SeniorityForYears maps a year count to a band: 0-1 entry, 2-5 mid, 6+ senior.
func SeniorityForYears(years int) types.Seniority {
	switch {
	case years <= 1:
		return types.SeniorityEntry
	case years <= 5:
		return types.SeniorityMid
	default:
		return types.SenioritySenior
	}
}

type span struct{ start, end int }

func qualifierSpans(tokens []string) []span {
	var spans []span
	for i := range tokens {
		for _, q := range qualifiers {
			if i+len(q) > len(tokens) {
				continue
			}
			match := true
			for j, word := range q {
				if tokens[i+j] != word {
					match = false
					break
				}
			}
			if match {
				spans = append(spans, span{start: i, end: i + len(q)})
			}
		}
	}
	return spans
}

// nearQualifier reports whether a qualifier starts or ends within
// qualifierWindow tokens of the occurrence.
func nearQualifier(occ skills.Occurrence, spans []span) bool {
	for _, q := range spans {
		if q.start <= occ.End-1+qualifierWindow && q.end-1 >= occ.Start-qualifierWindow {
			return true
		}
	}
	return false
}

// classifyBlockLine recognizes lines that start a new block of a job
// description: "Requirements:", "Must Have", "Preferred Qualifications",
// "Responsibilities". required reports whether the block that follows lists
// required skills. List items are never headings.
func (e *Engine) classifyBlockLine(line string) (heading, required bool) {
	if isListItem(line) {
		return false, false
	}
	if isPreferredHeading(line) {
		return true, false
	}
	tokens := e.extractor.Normalizer().Normalize(line)
	if len(tokens) == 0 {
		return false, false
	}
	qualified := len(qualifierSpans(tokens)) > 0
	if strings.HasSuffix(line, ":") && len(tokens) <= 6 {
		return true, qualified
	}
	if len(tokens) > maxBareHeadingTokens || strings.ContainsAny(line[len(line)-1:], ".!?;,") {
		return false, false
	}
	// A short line with no skills of its own, such as "Required Qualifications" or "About Us"
	if len(e.extractor.Scan(tokens, "")) > 0 {
		return false, false
	}
	return true, qualified
}

// isPreferredHeading reports whether line starts with a preferred-skills keyword.
func isPreferredHeading(line string) bool {
	key := strings.ToLower(strings.Trim(line, " #*:"))
	for _, h := range preferredHeadings {
		rest, ok := strings.CutPrefix(key, h)
		if !ok {
			continue
		}
		if rest == "" || rest[0] == ' ' || rest[0] == ':' || rest[0] == '(' {
			return true
		}
	}
	return false
}

func isListItem(line string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· ", "– "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

func splitSentences(line string) []string {
	if line == "" {
		return nil
	}
	var out []string
	last := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(line, -1) {
		out = append(out, line[last:loc[1]])
		last = loc[1]
	}
	if last < len(line) {
		out = append(out, line[last:])
	}
	return out
}
