package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/jonathan/cv-coach/internal/extraction"
	"github.com/jonathan/cv-coach/internal/server/middleware"
	"github.com/jonathan/cv-coach/internal/types"
	"go.uber.org/zap"
)

const (
	// multipartMemory is how much of a multipart form is kept in memory before
	// spilling to temp files.
	multipartMemory = 32 << 20
	// formOverhead is allowed on top of MaxUploadBytes for multipart framing.
	formOverhead = 1 << 20
	// maxJSONBody bounds interview and review request bodies.
	maxJSONBody = 1 << 20
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

// handleParseCV extracts text from the uploaded "file" field and returns its
// sections.
func (s *Server) handleParseCV(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.errorResponse(w, r, &UploadTooLargeError{Limit: limit})
			return
		}
		s.errorResponse(w, r, &ValidationError{Field: "file", Message: "invalid multipart form"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, r, &ValidationError{Field: "file", Message: "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		s.errorResponse(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	if int64(len(data)) > limit {
		s.errorResponse(w, r, &UploadTooLargeError{Limit: limit})
		return
	}

	kind, err := extraction.Detect(header.Header.Get("Content-Type"), header.Filename, data)
	if err != nil {
		DocumentsTotal.WithLabelValues("unknown", "unsupported").Inc()
		s.errorResponse(w, r, err)
		return
	}
	if !s.accepted[kind] {
		DocumentsTotal.WithLabelValues(string(kind), "unsupported").Inc()
		s.errorResponse(w, r, &extraction.UnsupportedInputError{
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
			Message:     fmt.Sprintf("only %s documents are accepted", s.acceptedList()),
		})
		return
	}

	text, err := extraction.Extract(r.Context(), kind, data)
	if err != nil {
		DocumentsTotal.WithLabelValues(string(kind), "error").Inc()
		s.errorResponse(w, r, err)
		return
	}

	result := s.parser.Parse(text)
	if result.Empty() {
		DocumentsTotal.WithLabelValues(string(kind), "empty").Inc()
		if s.cfg.RejectEmptyResult {
			s.errorResponse(w, r, &EmptyResultError{})
			return
		}
	} else {
		DocumentsTotal.WithLabelValues(string(kind), "parsed").Inc()
	}

	counts := make([]zap.Field, 0, len(result)+3)
	counts = append(counts,
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(data)))
	for _, sec := range result.Sections() {
		n := len(result[sec])
		EntriesTotal.WithLabelValues(string(sec)).Add(float64(n))
		counts = append(counts, zap.Int(string(sec), n))
	}
	s.logger.Info("parsed cv sections", counts...)

	s.jsonResponse(w, http.StatusOK, result)
}

// handleMockInterview returns the next interviewer question for a CV entry.
func (s *Server) handleMockInterview(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, &ValidationError{Field: "section", Message: err.Error()})
		return
	}

	reply, err := s.interviews.Ask(r.Context(), req.Section.Entry(), req.Turns())
	AICallsTotal.WithLabelValues("interview", resultLabel(err)).Inc()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, reply)
}

// handleQuickReview returns revision bullet points for a CV entry.
func (s *Server) handleQuickReview(w http.ResponseWriter, r *http.Request) {
	var req types.ReviewRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := types.ValidateSection(&req); err != nil {
		s.errorResponse(w, r, &ValidationError{Message: err.Error()})
		return
	}

	points, err := s.interviews.QuickReview(r.Context(), req.Entry())
	AICallsTotal.WithLabelValues("review", resultLabel(err)).Inc()
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ReviewResponse{Points: points})
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return &UploadTooLargeError{Limit: maxJSONBody}
		}
		return &ValidationError{Message: "invalid JSON body"}
	}
	return nil
}

func (s *Server) acceptedList() string {
	names := make([]string, 0, len(s.accepted))
	for kind := range s.accepted {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
