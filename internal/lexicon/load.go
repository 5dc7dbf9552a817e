package lexicon

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/placement-matcher/internal/schemas"
	schemadocs "github.com/jonathan/placement-matcher/schemas"
)

// File is the on-disk lexicon document
type File struct {
	Version string  `json:"version,omitempty"`
	Entries []Entry `json:"entries"`
}

// LoadFile reads a lexicon JSON file, validates it against the embedded
// lexicon schema, and builds a Lexicon.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// Parse validates and builds a Lexicon from JSON bytes
func Parse(data []byte) (*Lexicon, error) {
	if err := schemas.Validate(schemadocs.Lexicon, data); err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	return New(f.Entries)
}

// WriteJSON writes the lexicon in the same document shape LoadFile accepts.
func (l *Lexicon) WriteJSON(w io.Writer, version string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(File{Version: version, Entries: l.Entries()})
}
