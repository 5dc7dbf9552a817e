package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/placement-matcher/internal/db"
	"github.com/jonathan/placement-matcher/internal/ingestion"
	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/jonathan/placement-matcher/internal/schemas"
	"github.com/jonathan/placement-matcher/internal/types"
	schemadocs "github.com/jonathan/placement-matcher/schemas"
)

// AnalyzeResumeRequest represents the request body for /v1/resumes/analyze
type AnalyzeResumeRequest struct {
	ResumeText   string                 `json:"resume_text"`
	Profile      *types.StudentProfile  `json:"profile"`
	Requirements *types.JobRequirements `json:"requirements,omitempty"`
	RoleID       string                 `json:"role_id,omitempty"`
	StudentRef   string                 `json:"student_ref,omitempty"`
	Persist      bool                   `json:"persist,omitempty"`
}

// AnalyzeJDRequest represents the request body for /v1/job-descriptions/analyze
type AnalyzeJDRequest struct {
	Description string `json:"description"`
	Persist     bool   `json:"persist,omitempty"`
}

// MatchJDRequest represents the request body for /v1/job-descriptions/match
type MatchJDRequest struct {
	ResumeText  string `json:"resume_text"`
	Description string `json:"description"`
	StudentRef  string `json:"student_ref,omitempty"`
	Persist     bool   `json:"persist,omitempty"`
}

// MatchJDResult is the result of matching a resume with a job description
type MatchJDResult struct {
	JDAnalysis *types.JDAnalysis  `json:"jd_analysis"`
	Match      *types.MatchResult `json:"match"`
}

// AnalysisResponse wraps an analysis result with its stored ID, if persisted
type AnalysisResponse struct {
	ID     string              `json:"id,omitempty"`
	Kind   string              `json:"kind"`
	Source *ingestion.Metadata `json:"source,omitempty"`
	Result any                 `json:"result"`
}

// LexiconResponse represents the response for /v1/lexicon
type LexiconResponse struct {
	Count   int             `json:"count"`
	Entries []lexicon.Entry `json:"entries"`
}

// decodeBody reads at most maxInputBytes, validates against the named schema and unmarshals into v.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, schema string, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxInputBytes))
	if err != nil {
		return s.bodyError(err)
	}
	if err := schemas.Validate(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &ErrValidation{Field: "(root)", Message: err.Error()}
	}
	return nil
}

func (s *Server) bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return &ErrPayloadTooLarge{Limit: s.maxInputBytes}
	}
	return &ErrValidation{Field: "(body)", Message: err.Error()}
}

// persist stores a result when requested; it returns the new ID or "".
func (s *Server) persist(r *http.Request, requested bool, input *db.AnalysisCreateInput) (string, error) {
	if !requested {
		return "", nil
	}
	if s.store == nil {
		return "", &ErrStorageUnavailable{}
	}
	saved, err := s.store.SaveAnalysis(r.Context(), input)
	if err != nil {
		return "", err
	}
	return saved.ID.String(), nil
}

func (s *Server) roleOrDefault(roleID string) string {
	if strings.TrimSpace(roleID) == "" {
		return s.defaultRole
	}
	return roleID
}

func scorePtr(v float64) *float64 {
	return &v
}

// handleAnalyzeResume analyzes resume text against a profile and optional requirements
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeResumeRequest
	if err := s.decodeBody(w, r, schemadocs.AnalyzeResumeRequest, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	s.analyzeResume(w, r, req, nil)
}

// handleAnalyzeResumeFile analyzes an uploaded .txt, .pdf, .docx or .html resume.
// Form fields: resume (file), profile (JSON), requirements (JSON, optional),
// role_id, student_ref, persist.
func (s *Server) handleAnalyzeResumeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxInputBytes)
	if err := r.ParseMultipartForm(s.maxInputBytes); err != nil {
		s.failure(w, r, s.bodyError(err))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "resume", Message: "resume file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		s.failure(w, r, s.bodyError(err))
		return
	}

	text, metadata, err := ingestion.IngestFile(header.Filename, data)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	req := AnalyzeResumeRequest{
		ResumeText: text,
		RoleID:     r.FormValue("role_id"),
		StudentRef: r.FormValue("student_ref"),
	}
	if raw := r.FormValue("profile"); raw != "" {
		req.Profile = &types.StudentProfile{}
		if err := json.Unmarshal([]byte(raw), req.Profile); err != nil {
			s.failure(w, r, &ErrValidation{Field: "profile", Message: err.Error()})
			return
		}
	}
	if raw := r.FormValue("requirements"); raw != "" {
		req.Requirements = &types.JobRequirements{}
		if err := json.Unmarshal([]byte(raw), req.Requirements); err != nil {
			s.failure(w, r, &ErrValidation{Field: "requirements", Message: err.Error()})
			return
		}
	}
	if raw := r.FormValue("persist"); raw != "" {
		persist, err := strconv.ParseBool(raw)
		if err != nil {
			s.failure(w, r, &ErrValidation{Field: "persist", Message: "must be true or false"})
			return
		}
		req.Persist = persist
	}

	s.analyzeResume(w, r, req, metadata)
}

func (s *Server) analyzeResume(w http.ResponseWriter, r *http.Request, req AnalyzeResumeRequest, source *ingestion.Metadata) {
	roleID := s.roleOrDefault(req.RoleID)
	result, err := s.engine.AnalyzeResume(req.ResumeText, req.Profile, req.Requirements, roleID)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	id, err := s.persist(r, req.Persist, &db.AnalysisCreateInput{
		StudentRef: req.StudentRef,
		Kind:       db.KindResume,
		RoleID:     result.RoleProfile,
		Score:      scorePtr(result.StructuralScore),
		Content:    result,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalysisResponse{ID: id, Kind: db.KindResume, Source: source, Result: result})
}

// handleAnalyzeJD derives required and preferred skills from a job description
func (s *Server) handleAnalyzeJD(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeJDRequest
	if err := s.decodeBody(w, r, schemadocs.AnalyzeJDRequest, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.engine.AnalyzeJobDescription(req.Description)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	id, err := s.persist(r, req.Persist, &db.AnalysisCreateInput{
		Kind:    db.KindJobDescription,
		Content: result,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalysisResponse{ID: id, Kind: db.KindJobDescription, Result: result})
}

// handleMatchJD analyzes a job description and matches a resume against it
func (s *Server) handleMatchJD(w http.ResponseWriter, r *http.Request) {
	var req MatchJDRequest
	if err := s.decodeBody(w, r, schemadocs.MatchJDRequest, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	jd, err := s.engine.AnalyzeJobDescription(req.Description)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	match, err := s.engine.MatchResumeWithJD(req.ResumeText, jd)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	result := &MatchJDResult{JDAnalysis: jd, Match: match}

	id, err := s.persist(r, req.Persist, &db.AnalysisCreateInput{
		StudentRef: req.StudentRef,
		Kind:       db.KindMatch,
		Score:      scorePtr(match.Score),
		Content:    result,
	})
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnalysisResponse{ID: id, Kind: db.KindMatch, Result: result})
}

// handleGetAnalysis returns a stored analysis by ID
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, r, &ErrStorageUnavailable{})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	a, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("analysis %s not found", id))
			return
		}
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, a)
}

// handleLexicon returns the lexicon the engine was built with
func (s *Server) handleLexicon(w http.ResponseWriter, _ *http.Request) {
	entries := s.engine.Lexicon().Entries()
	s.jsonResponse(w, http.StatusOK, LexiconResponse{Count: len(entries), Entries: entries})
}
