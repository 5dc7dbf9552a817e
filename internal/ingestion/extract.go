// Package ingestion turns uploaded resume and job-description documents into clean plain text.
package ingestion

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/placement-matcher/internal/fetch"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported document format
type Format string

// Supported formats
const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

var formatsByExt = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// UnsupportedFormatError is returned for file extensions with no extractor
type UnsupportedFormatError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported document format for %q: no file extension", e.Filename)
	}
	return fmt.Sprintf("unsupported document format %q for %q", e.Ext, e.Filename)
}

// ExtractError wraps a failure inside a format decoder
type ExtractError struct {
	Format Format
	Cause  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to extract %s text: %v", e.Format, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// DetectFormat returns the document format for a filename.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Filename: filename, Ext: ext}
}

// SupportedExtensions lists the file extensions ExtractText accepts.
func SupportedExtensions() []string {
	return []string{".docx", ".htm", ".html", ".markdown", ".md", ".pdf", ".text", ".txt"}
}

// ExtractText returns the plain text of a document. The format is chosen by
// the filename extension. Invalid UTF-8 sequences are dropped.
func ExtractText(filename string, data []byte) (string, Format, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", "", err
	}

	var text string
	switch format {
	case FormatText:
		text = string(data)
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatHTML:
		text, err = fetch.ExtractMainText(string(data), []string{"main", "article"})
	}
	if err != nil {
		return "", format, &ExtractError{Format: format, Cause: err}
	}
	return strings.ToValidUTF8(text, ""), format, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer func() { _ = doc.Close() }()
	return wordXMLText(doc.Editable().GetContent())
}

// wordXMLText flattens WordprocessingML body XML into text, one paragraph per line.
func wordXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
