// Package api exposes HTTP handlers for the training summary service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"example.com/fittracker/internal/auth"
	"example.com/fittracker/internal/observability"
	"example.com/fittracker/internal/summary"
	"example.com/fittracker/internal/training"
)

// maxRequestBytes caps the size of a submitted sensor package.
const maxRequestBytes = 1 << 20

// Handler coordinates HTTP requests with the summary service.
type Handler struct {
	service *summary.Service
}

// NewHandler builds a Handler.
func NewHandler(service *summary.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/v1/trainings", h.createSummary).Methods(http.MethodPost)
	r.HandleFunc("/v1/trainings/types", h.listTypes).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	})
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) createSummary(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.Authorize(r.Context(), auth.ScopeTrainingsWrite)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var req CreateSummaryRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordRejected(observability.ReasonInvalidRequest)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds 1 MiB")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		observability.RecordRejected(observability.ReasonInvalidRequest)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	res, err := h.service.Summarize(r.Context(), summary.Request{
		TenantID: claims.TenantID,
		Subject:  claims.Subject,
		Code:     req.WorkoutType,
		Data:     req.Data,
	})
	if err != nil {
		switch {
		case errors.Is(err, training.ErrUnknownWorkout):
			writeError(w, http.StatusUnprocessableEntity, "unknown_workout", err.Error())
		case errors.Is(err, training.ErrArityMismatch):
			writeError(w, http.StatusUnprocessableEntity, "arity_mismatch", err.Error())
		case errors.Is(err, training.ErrZeroDuration):
			writeError(w, http.StatusUnprocessableEntity, "zero_duration", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, toSummaryView(res))
}

func (h *Handler) listTypes(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.Authorize(r.Context(), auth.ScopeTrainingsRead, auth.ScopeTrainingsWrite); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListTypesResponse{Items: training.Codes()})
}

// CreateSummaryRequest is the payload for POST /v1/trainings.
type CreateSummaryRequest struct {
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

// Validate ensures request correctness. Field counts and values are checked by
// the training package.
func (r CreateSummaryRequest) Validate() error {
	if strings.TrimSpace(r.WorkoutType) == "" {
		return errors.New("workout_type is required")
	}
	if r.Data == nil {
		return errors.New("data is required")
	}
	return nil
}

// SummaryView is the response body for a computed summary.
type SummaryView struct {
	ReportID     string    `json:"report_id"`
	WorkoutCode  string    `json:"workout_code"`
	WorkoutType  string    `json:"workout_type"`
	DurationH    float64   `json:"duration_h"`
	DistanceKm   float64   `json:"distance_km"`
	MeanSpeedKmh float64   `json:"mean_speed_kmh"`
	Calories     float64   `json:"calories"`
	Message      string    `json:"message"`
	ComputedAt   time.Time `json:"computed_at"`
}

// ListTypesResponse lists the accepted workout codes.
type ListTypesResponse struct {
	Items []string `json:"items"`
}

func toSummaryView(res summary.Result) SummaryView {
	return SummaryView{
		ReportID:     res.Event.ReportID,
		WorkoutCode:  res.Event.WorkoutCode,
		WorkoutType:  res.Info.TrainingType,
		DurationH:    res.Info.Duration,
		DistanceKm:   res.Info.Distance,
		MeanSpeedKmh: res.Info.Speed,
		Calories:     res.Info.Calories,
		Message:      res.Info.Message(),
		ComputedAt:   res.Event.ComputedAt,
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrForbidden) {
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
		return
	}
	writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{
		"type":   code,
		"detail": detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
