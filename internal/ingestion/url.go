package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/placement-matcher/internal/fetch"
)

// IngestFromURL fetches a job posting, extracts its main text with the
// detected job board's selectors, and cleans it.
func IngestFromURL(ctx context.Context, urlStr string, opts *fetch.Options) (string, *Metadata, error) {
	text, platform, err := fetch.JobDescription(ctx, urlStr, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to ingest %s: %w", urlStr, err)
	}
	cleanedText := CleanText(text)
	metadata := NewMetadata(cleanedText, urlStr, FormatHTML, len(text))
	metadata.Platform = string(platform)
	return cleanedText, metadata, nil
}
