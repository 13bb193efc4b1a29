package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/leonardotrapani/tunescribe/internal/media"
	"github.com/leonardotrapani/tunescribe/internal/pipeline"
	"github.com/leonardotrapani/tunescribe/internal/provider"
	"github.com/leonardotrapani/tunescribe/internal/transcriber"
	"github.com/leonardotrapani/tunescribe/internal/transcript"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "tunescribe API"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, provider.Snapshot())
}

type transcribeRequest struct {
	FilePath      string `json:"file_path"`
	SourceURL     string `json:"source_url,omitempty"`
	Provider      string `json:"provider,omitempty"`
	Model         string `json:"model,omitempty"`
	ForceLanguage string `json:"force_language,omitempty"`
	TranslateTo   string `json:"translate_to,omitempty"`
	Diarize       bool   `json:"diarize,omitempty"`
	MaxSpeakers   int    `json:"max_speakers,omitempty"`
	Granularity   string `json:"timestamps_granularity,omitempty"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, transcriber.NewValidationError("invalid request body: %v", err))
		return
	}

	if req.Provider == "" {
		req.Provider = s.cfg.Transcription.Provider
	}
	if req.Model == "" {
		req.Model = s.cfg.Transcription.Model
	}
	if req.ForceLanguage == "" {
		req.ForceLanguage = s.cfg.Transcription.Language
	}

	tr, err := s.pipeline.Run(r.Context(), pipeline.Request{
		FilePath:      req.FilePath,
		SourceURL:     req.SourceURL,
		Provider:      req.Provider,
		Model:         req.Model,
		ForceLanguage: req.ForceLanguage,
		TranslateTo:   req.TranslateTo,
		Diarize:       req.Diarize,
		MaxSpeakers:   req.MaxSpeakers,
		Granularity:   req.Granularity,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, transcribeResponse{Transcript: tr, Text: tr.Text()})
}

// transcribeResponse flattens the transcript and adds the joined text so
// clients that only want plain text can skip the segment list.
type transcribeResponse struct {
	*transcript.Transcript
	Text string `json:"text"`
}

type trimRequest struct {
	FilePath  string `json:"file_path"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s *Server) handleTrim(w http.ResponseWriter, r *http.Request) {
	var req trimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, transcriber.NewValidationError("invalid request body: %v", err))
		return
	}
	if req.StartTime == "" || req.EndTime == "" {
		s.writeError(w, transcriber.NewValidationError("start_time and end_time are required"))
		return
	}

	result, err := s.audio.Trim(r.Context(), req.FilePath, req.StartTime, req.EndTime)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		query = r.URL.Query().Get("q")
	}
	if query == "" {
		s.writeError(w, transcriber.NewValidationError("query parameter is required"))
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			s.writeError(w, transcriber.NewValidationError("limit must be between 1 and 50"))
			return
		}
		limit = parsed
	}

	results, err := s.media.Search(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			s.writeJSON(w, http.StatusOK, []media.SearchResult{})
			return
		}
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

type downloadRequest struct {
	VideoID string `json:"video_id"`
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, transcriber.NewValidationError("invalid request body: %v", err))
		return
	}
	if req.VideoID == "" {
		s.writeError(w, transcriber.NewValidationError("video_id is required"))
		return
	}

	result, err := s.media.Download(r.Context(), req.VideoID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}
