// Package analysis provides the resume and job-description analysis engine.
//
// An Engine wraps one immutable lexicon. Its methods are pure functions of
// their arguments and may be called concurrently.
package analysis

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/skills"
)

// Engine exposes the analysis entry points over a lexicon
type Engine struct {
	lexicon   *lexicon.Lexicon
	extractor *skills.Extractor
}

// New builds an Engine for lex.
func New(lex *lexicon.Lexicon) (*Engine, error) {
	if lex == nil {
		return nil, &parsing.ValidationError{Field: "lexicon", Message: "lexicon is required"}
	}
	x, err := skills.NewExtractor(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to index lexicon: %w", err)
	}
	return &Engine{lexicon: lex, extractor: x}, nil
}

// Lexicon returns the engine's lexicon.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lexicon
}

// Extractor returns the engine's skill extractor.
func (e *Engine) Extractor() *skills.Extractor {
	return e.extractor
}

// jsonFieldNames maps struct field names reported by the validator to wire names
var jsonFieldNames = map[string]string{
	"CGPA":     "cgpa",
	"Backlogs": "backlogs",
	"MinCGPA":  "min_cgpa",
}

// fromValidator converts validator field errors into a ValidationError.
func fromValidator(prefix string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &parsing.ValidationError{Field: prefix, Message: err.Error(), Cause: err}
	}
	fe := fieldErrs[0]
	name, ok := jsonFieldNames[fe.Field()]
	if !ok {
		name = strings.ToLower(fe.Field())
	}
	msg := fmt.Sprintf("must satisfy %s", fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	}
	return &parsing.ValidationError{Field: prefix + "." + name, Message: msg, Cause: err}
}

// sanitizeText replaces invalid UTF-8 sequences with U+FFFD. It reports
// whether any replacement was made.
func sanitizeText(text string) (string, bool) {
	if utf8.ValidString(text) {
		return text, false
	}
	return strings.ToValidUTF8(text, "\uFFFD"), true
}
