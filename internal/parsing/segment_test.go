package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		section string // "" means NotHeading
		inline  string
	}{
		{"uppercase heading", "EXPERIENCE", SectionExperience, ""},
		{"title case with colon", "Technical Skills:", SectionSkills, ""},
		{"ampersand heading", "Honors & Awards", SectionAchievements, ""},
		{"markdown heading", "## Projects", SectionProjects, ""},
		{"inline content", "Skills: Python, Go", SectionSkills, "Python, Go"},
		{"contact heading", "Contact Information", SectionContact, ""},
		{"publications", "Research Papers", SectionPublications, ""},
		{"certifications", "Licenses & Certifications", SectionCertifications, ""},
		{"education", "Education", SectionEducation, ""},
		{"blank line", "   ", "", ""},
		{"sentence", "I have experience.", "", ""},
		{"heading word with period", "Experience.", "", ""},
		{"unrecognized heading", "Hobbies", "", ""},
		{"too long", strings.Repeat("skills ", 10), "", ""},
		{"body line mentioning skills", "Improved skills of the team", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLine(tt.line)
			if tt.section == "" {
				_, ok := got.(NotHeading)
				assert.True(t, ok, "expected NotHeading, got %#v", got)
				return
			}
			match, ok := got.(HeadingMatch)
			require.True(t, ok, "expected HeadingMatch, got %#v", got)
			assert.Equal(t, tt.section, match.Section)
			assert.Equal(t, tt.inline, match.Inline)
		})
	}
}

func TestHeadingKeywords_EverySectionHasKeywords(t *testing.T) {
	for _, section := range AllSections {
		if section == SectionHeader {
			assert.Empty(t, HeadingKeywords(section))
			continue
		}
		keywords := HeadingKeywords(section)
		assert.NotEmpty(t, keywords, section)
		for _, kw := range keywords {
			match, ok := ClassifyLine(kw).(HeadingMatch)
			require.True(t, ok, "keyword %q should classify as a heading", kw)
			assert.Equal(t, section, match.Section, "keyword %q", kw)
		}
	}
}

func TestSegment_PartitionsSections(t *testing.T) {
	text := `Jane Doe
jane@example.com | +91 98765 43210

EXPERIENCE
Software Intern, Acme
Built REST services in Go

SKILLS
Python, Docker
`
	s := Segment(text)

	assert.Equal(t, []string{SectionHeader, SectionExperience, SectionSkills}, s.Names())
	assert.Equal(t, "Jane Doe\njane@example.com | +91 98765 43210", s.Body(SectionHeader))
	assert.Equal(t, "Software Intern, Acme\nBuilt REST services in Go", s.Body(SectionExperience))
	assert.Equal(t, "Python, Docker", s.Body(SectionSkills))
	assert.NotContains(t, s.Body(SectionSkills), "Go")
	assert.False(t, s.Present(SectionEducation))
}

func TestSegment_UnrecognizedHeadingStaysInCurrentSection(t *testing.T) {
	text := "Projects\nChat app\nHobbies\nChess\n"
	s := Segment(text)

	assert.Equal(t, []string{SectionProjects}, s.Names())
	assert.Equal(t, "Chat app\nHobbies\nChess", s.Body(SectionProjects))
}

func TestSegment_RepeatedHeadingAppends(t *testing.T) {
	text := "Experience\nJob A\nSkills\nGo\nWork Experience\nJob B"
	s := Segment(text)

	assert.Equal(t, "Job A\nJob B", s.Body(SectionExperience))
	assert.Equal(t, []string{SectionExperience, SectionSkills}, s.Names())
}

func TestSegment_InlineHeadingContent(t *testing.T) {
	s := Segment("Skills: Go, SQL\nEducation\nB.Tech CSE")
	assert.Equal(t, "Go, SQL", s.Body(SectionSkills))
	assert.Equal(t, "B.Tech CSE", s.Body(SectionEducation))
}

func TestSegment_EmptyHeadingNotPresent(t *testing.T) {
	s := Segment("Education\n\nSkills\nGo")
	assert.False(t, s.Present(SectionEducation))
	assert.Equal(t, []string{SectionSkills}, s.Names())
	_, ok := s.Map()[SectionEducation]
	assert.False(t, ok)
}

func TestSegment_EmptyText(t *testing.T) {
	s := Segment("")
	assert.Empty(t, s.Names())
	assert.Empty(t, s.Map())
}

func TestSegment_CRLF(t *testing.T) {
	s := Segment("Header line\r\nSKILLS\r\nGo\r\n")
	assert.Equal(t, "Go", s.Body(SectionSkills))
	assert.Equal(t, "Header line", s.Body(SectionHeader))
}
