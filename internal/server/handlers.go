package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/pipeline"
	"github.com/hyperjump/kousei/internal/scrub"
)

// handleScore runs one document through the full quality gate. Escalated
// runs are still a 200; the gate state lives in the response body.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Text == "" && input.Path != "" {
		text, err := s.extractor.Extract(input.Path)
		if err != nil {
			s.logger.Warn("extraction failed", zap.String("path", input.Path), zap.Error(err))
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		input.Text = text
	}
	s.logger.Debug("score request",
		zap.String("keyword", input.PrimaryKeyword),
		zap.Int("text_len", len(input.Text)))

	record, err := s.pipe.Run(r.Context(), &input)
	if err != nil {
		if isInputError(err) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("scoring failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, record)
}

// scrubResponse pairs the cleaned text with the removal report.
type scrubResponse struct {
	Text   string              `json:"text"`
	Report *models.ScrubReport `json:"report"`
}

// handleScrub cleans a document without scoring it.
func (s *Server) handleScrub(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cleaned, report := scrub.Scrub(input.Text)
	s.respondJSON(w, http.StatusOK, scrubResponse{Text: cleaned, Report: report})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func isInputError(err error) bool {
	return errors.Is(err, pipeline.ErrEmptyDocument) ||
		errors.Is(err, pipeline.ErrNoPrimaryKeyword) ||
		errors.Is(err, pipeline.ErrInvalidTargets)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
