// Package parsing provides text normalization and resume section segmentation.
package parsing

import (
	"strings"
	"unicode"
)

const (
	// leadingSoft is stripped from the start of a whitespace chunk before protected lookup
	leadingSoft = "([{\"'<“‘*•·"
	// trailingSoft is stripped from the end of a whitespace chunk before protected lookup
	trailingSoft = ")]}\"'>”’,.;:!?*"
)

// Normalizer turns free text into comparable lowercase tokens.
// Protected spellings (node.js, c++, ci/cd) survive as single tokens;
// every other punctuation mark except an inner hyphen is a separator.
type Normalizer struct {
	protected map[string]struct{}
}

// NewNormalizer creates a Normalizer that keeps the given spellings intact.
func NewNormalizer(protected []string) *Normalizer {
	n := &Normalizer{protected: make(map[string]struct{}, len(protected))}
	for _, p := range protected {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			n.protected[p] = struct{}{}
		}
	}
	return n
}

// Normalize lowercases text and splits it into tokens.
// Empty or whitespace-only input yields an empty, non-nil slice.
func (n *Normalizer) Normalize(text string) []string {
	chunks := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		tokens = n.appendChunk(tokens, chunk)
	}
	return tokens
}

// Key returns the space-joined token form of a phrase, used as a lookup key.
func (n *Normalizer) Key(phrase string) string {
	return strings.Join(n.Normalize(phrase), " ")
}

// IsProtected reports whether token is a protected spelling.
func (n *Normalizer) IsProtected(token string) bool {
	_, ok := n.protected[token]
	return ok
}

func (n *Normalizer) appendChunk(tokens []string, chunk string) []string {
	if t := trimSoft(chunk); n.IsProtected(t) {
		return append(tokens, t)
	}

	// Split on hard separators first so "react/node.js" still yields node.js
	for _, piece := range strings.FieldsFunc(chunk, isSeparator) {
		piece = trimSoft(piece)
		if piece == "" {
			continue
		}
		if n.IsProtected(piece) {
			tokens = append(tokens, piece)
			continue
		}
		for _, part := range strings.FieldsFunc(piece, isInnerPunct) {
			part = strings.Trim(part, "-")
			if part != "" {
				tokens = append(tokens, part)
			}
		}
	}
	return tokens
}

func trimSoft(s string) string {
	return strings.TrimLeft(strings.TrimRight(s, trailingSoft), leadingSoft)
}

// isSeparator reports runes that always split a chunk.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && !isInnerPunct(r)
}

// isInnerPunct reports punctuation that only survives inside protected spellings.
func isInnerPunct(r rune) bool {
	return r == '.' || r == '+' || r == '#'
}
