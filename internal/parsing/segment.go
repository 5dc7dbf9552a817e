package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section names produced by the segmenter
const (
	SectionHeader         = "header"
	SectionContact        = "contact"
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionProjects       = "projects"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionAchievements   = "achievements"
	SectionPublications   = "publications"
)

// MaxHeadingLength is the longest line (in runes) that can be a heading
const MaxHeadingLength = 60

// AllSections lists every section name in canonical order, header first.
var AllSections = []string{
	SectionHeader,
	SectionContact,
	SectionEducation,
	SectionExperience,
	SectionProjects,
	SectionSkills,
	SectionCertifications,
	SectionAchievements,
	SectionPublications,
}

// headingKeywords maps each section to the heading texts that open it.
// Keys are compared after headingKey normalization.
var headingKeywords = map[string][]string{
	SectionContact: {
		"contact", "contact information", "contact info", "contact details",
		"personal details", "personal information",
	},
	SectionEducation: {
		"education", "academic background", "academic qualifications", "academics",
		"educational qualifications", "education and qualifications", "qualifications",
	},
	SectionExperience: {
		"experience", "work experience", "professional experience", "employment",
		"employment history", "work history", "internships", "internship",
		"internship experience", "industrial experience",
	},
	SectionProjects: {
		"projects", "project", "academic projects", "personal projects",
		"project work", "key projects", "major projects",
	},
	SectionSkills: {
		"skills", "technical skills", "key skills", "core competencies", "skill set",
		"skillset", "technologies", "tools and technologies", "technical proficiency",
	},
	SectionCertifications: {
		"certifications", "certification", "certificates", "licenses and certifications",
		"courses and certifications", "courses",
	},
	SectionAchievements: {
		"achievements", "awards", "honors", "honours", "accomplishments",
		"awards and achievements", "honors and awards", "extracurricular achievements",
	},
	SectionPublications: {
		"publications", "research papers", "papers", "conference papers",
		"research publications",
	},
}

// headingIndex is the inverted headingKeywords table
var headingIndex = buildHeadingIndex()

func buildHeadingIndex() map[string]string {
	idx := make(map[string]string)
	for section, keywords := range headingKeywords {
		for _, kw := range keywords {
			idx[headingKey(kw)] = section
		}
	}
	return idx
}

// HeadingKeywords returns a copy of the heading keyword list for a section.
func HeadingKeywords(section string) []string {
	return append([]string(nil), headingKeywords[section]...)
}

// LineClass is the result of classifying a single line.
// It is either HeadingMatch or NotHeading.
type LineClass interface {
	isLineClass()
}

// HeadingMatch is a line that opens a section
type HeadingMatch struct {
	Section string
	Keyword string
	Inline  string // Text after "Heading:" on the same line
}

// NotHeading is a line that belongs to the current section
type NotHeading struct {
	Reason string
}

func (HeadingMatch) isLineClass() {}
func (NotHeading) isLineClass()   {}

// ClassifyLine decides whether a line is a section heading.
func ClassifyLine(line string) LineClass {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return NotHeading{Reason: "blank"}
	}

	head, inline := trimmed, ""
	if i := strings.IndexRune(trimmed, ':'); i >= 0 {
		head, inline = trimmed[:i], strings.TrimSpace(trimmed[i+1:])
	}

	if utf8.RuneCountInString(head) > MaxHeadingLength {
		return NotHeading{Reason: "too long"}
	}
	if inline == "" && endsWithSentencePunct(head) {
		return NotHeading{Reason: "sentence punctuation"}
	}

	key := headingKey(head)
	if key == "" {
		return NotHeading{Reason: "no letters"}
	}
	section, ok := headingIndex[key]
	if !ok {
		return NotHeading{Reason: "unrecognized heading"}
	}
	return HeadingMatch{Section: section, Keyword: key, Inline: inline}
}

func endsWithSentencePunct(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	switch r {
	case '.', '!', '?', ';', ',':
		return true
	}
	return false
}

// headingKey lowercases a heading, maps "&" to "and", drops other symbols and collapses spaces.
func headingKey(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "&", " and ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Sections holds a segmented resume with bodies in document order
type Sections struct {
	order  []string
	bodies map[string]*strings.Builder
}

// Names returns the sections that received any text, in order of first appearance.
func (s *Sections) Names() []string {
	out := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if s.Present(name) {
			out = append(out, name)
		}
	}
	return out
}

// Body returns the text of a section, or "" when absent.
func (s *Sections) Body(name string) string {
	if b, ok := s.bodies[name]; ok {
		return strings.TrimSpace(b.String())
	}
	return ""
}

// Present reports whether a section exists and has non-blank text.
func (s *Sections) Present(name string) bool {
	return s.Body(name) != ""
}

// Map returns section name to body for every present section.
func (s *Sections) Map() map[string]string {
	out := make(map[string]string, len(s.order))
	for _, name := range s.Names() {
		out[name] = s.Body(name)
	}
	return out
}

func (s *Sections) appendLine(name, line string) {
	b, ok := s.bodies[name]
	if !ok {
		b = &strings.Builder{}
		s.bodies[name] = b
		s.order = append(s.order, name)
	}
	b.WriteString(line)
	b.WriteByte('\n')
}

// Segment splits resume text into labeled sections.
// Text before the first heading goes to the header section; repeated
// headings append to the existing section.
func Segment(text string) *Sections {
	s := &Sections{bodies: make(map[string]*strings.Builder)}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	current := SectionHeader
	for _, line := range strings.Split(text, "\n") {
		switch c := ClassifyLine(line).(type) {
		case HeadingMatch:
			current = c.Section
			if _, ok := s.bodies[current]; !ok {
				s.bodies[current] = &strings.Builder{}
				s.order = append(s.order, current)
			}
			if c.Inline != "" {
				s.appendLine(current, c.Inline)
			}
		case NotHeading:
			if c.Reason == "blank" {
				continue
			}
			s.appendLine(current, strings.TrimSpace(line))
		}
	}
	return s
}
