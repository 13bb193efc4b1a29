package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/audio"
	"github.com/leonardotrapani/tunescribe/internal/transcriber"
)

type errorResponse struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// writeError maps the structured error taxonomy onto HTTP status codes. It
// never re-derives meaning from error text.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	var remote *transcriber.RemoteServiceError

	switch {
	case errors.Is(err, transcriber.ErrAuthentication):
		status, kind = http.StatusUnauthorized, string(transcriber.KindProvider)
	case errors.Is(err, transcriber.ErrPayloadTooLarge):
		status, kind = http.StatusRequestEntityTooLarge, string(transcriber.KindResource)
	case errors.As(err, &remote):
		status, kind = http.StatusBadGateway, string(transcriber.KindProvider)
	case errors.Is(err, audio.ErrFileNotFound):
		status, kind = http.StatusNotFound, string(transcriber.KindResource)
	case errors.Is(err, audio.ErrUnsupportedFormat), errors.Is(err, audio.ErrInvalidTimeFormat):
		status, kind = http.StatusBadRequest, string(transcriber.KindValidation)
	default:
		switch transcriber.KindOf(err) {
		case transcriber.KindValidation:
			status, kind = http.StatusBadRequest, string(transcriber.KindValidation)
		case transcriber.KindResource:
			status, kind = http.StatusNotFound, string(transcriber.KindResource)
		case transcriber.KindProvider:
			status, kind = http.StatusBadGateway, string(transcriber.KindProvider)
		case transcriber.KindTranslation:
			status, kind = http.StatusBadGateway, string(transcriber.KindTranslation)
		}
	}

	if status >= 500 {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		s.logger.Warn("request rejected", zap.Int("status", status), zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Kind: kind, Detail: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", zap.Error(err))
	}
}
