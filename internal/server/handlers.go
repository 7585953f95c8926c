package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/momentum/internal/inference"
	"github.com/at-ishikawa/momentum/internal/study"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

type buddyResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var input study.OnboardingInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := s.service.Onboard(r.Context(), input, s.today())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.metrics.observeProfile(*profile)
	writeJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.service.Profile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.service.Visit(r.Context(), s.today())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.metrics.observeProfile(dashboard.Profile)
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	indexParam := chi.URLParam(r, "index")
	index, err := strconv.Atoi(indexParam)
	if err != nil {
		writeError(w, r, &study.ValidationError{Messages: []string{fmt.Sprintf("task index %q is not a number", indexParam)}})
		return
	}

	var request updateTaskRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}
	if request.Completed == nil {
		writeError(w, r, &study.ValidationError{Messages: []string{"completed is a required field"}})
		return
	}

	tasks, err := s.service.SetTaskCompleted(r.Context(), s.today(), index, *request.Completed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	entry, err := s.service.Finalize(r.Context(), s.today())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.metrics.finalizedDays.Inc()
	if profile, err := s.service.Profile(r.Context()); err == nil {
		s.metrics.observeProfile(*profile)
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Weekly(r.Context(), s.today())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.service.Progress(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.service.History(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.service.Badges(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

func (s *Server) handleBuddy(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.service.Visit(r.Context(), s.today())
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := inference.Encourage(r.Context(), s.buddy, dashboard.BuddyRequest())
	writeJSON(w, http.StatusOK, buddyResponse{Message: message})
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return &study.ValidationError{Messages: []string{"invalid JSON body: " + err.Error()}}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode a response", "error", err)
	}
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *study.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Details: validationErr.Messages})
	case errors.Is(err, study.ErrTaskIndexOutOfRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, study.ErrNoProfile):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, study.ErrProfileExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		slog.Default().Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
