package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	multiSpaceRe  = regexp.MustCompile(`\s+`)
	blankLinesRe  = regexp.MustCompile(`\n\n\n+`)
	bulletMarkers = []string{"- ", "* ", "• ", "· "}
)

// CleanText cleans and normalizes text content while preserving line structure.
// Section segmentation depends on headings staying on their own lines.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	// Form feeds separate PDF pages
	content = strings.ReplaceAll(content, "\f", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t ")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}

	content := multiSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// IngestFile extracts and cleans an in-memory document
func IngestFile(filename string, data []byte) (string, *Metadata, error) {
	text, format, err := ExtractText(filename, data)
	if err != nil {
		return "", nil, err
	}
	cleanedText := CleanText(text)
	return cleanedText, NewMetadata(cleanedText, filename, format, len(data)), nil
}

// IngestFromFile reads a document from disk, extracts and cleans its text, and returns it with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	if _, err := DetectFormat(path); err != nil {
		return "", nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	return IngestFile(path, content)
}
