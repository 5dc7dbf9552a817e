// Package schemas embeds the JSON Schema documents for lexicon files and API request bodies.
package schemas

import "embed"

// Files holds every *.schema.json document in this directory
//
//go:embed *.schema.json
var Files embed.FS

// Names of the embedded schema documents
const (
	Lexicon              = "lexicon.schema.json"
	AnalyzeResumeRequest = "analyze_resume_request.schema.json"
	AnalyzeJDRequest     = "analyze_jd_request.schema.json"
	MatchJDRequest       = "match_jd_request.schema.json"
)

// All lists the embedded schema names.
var All = []string{Lexicon, AnalyzeResumeRequest, AnalyzeJDRequest, MatchJDRequest}
