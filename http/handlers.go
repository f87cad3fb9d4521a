package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"croprec/db"
	"croprec/inference"
)

const languageField = "language"

// RunLister lists recent training runs. *db.Store satisfies it.
type RunLister interface {
	ListTrainingRuns(ctx context.Context, limit int) ([]db.TrainingRun, error)
}

type Handler struct {
	service *inference.Service
	runs    RunLister
	logger  *zap.Logger
}

// NewHandler accepts a nil runs when no training log is configured.
func NewHandler(service *inference.Service, runs RunLister, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, runs: runs, logger: logger}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("POST /translate", h.handleTranslate)
	mux.HandleFunc("GET /languages", h.handleLanguages)
	mux.HandleFunc("GET /api/training/runs", h.handleTrainingRuns)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !h.decode(w, r, &body) {
		return
	}

	req := inference.Request{Features: make(map[string]any, len(body))}
	for key, value := range body {
		if key == languageField {
			lang, ok := value.(string)
			if !ok && value != nil {
				writeError(w, http.StatusBadRequest, "language must be a string")
				return
			}
			req.Language = lang
			continue
		}
		req.Features[key] = value
	}

	rec, err := h.service.Recommend(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"crop":     rec.Crop,
		"info":     rec.Info,
		"language": rec.Language,
	})
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	translated, err := h.service.TranslateText(r.Context(), req.Text, req.TargetLang)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"translated": translated,
	})
}

func (h *Handler) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Languages())
}

func (h *Handler) handleTrainingRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "training log is not enabled")
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 || l > 500 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = l
	}

	runs, err := h.runs.ListTrainingRuns(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if runs == nil {
		runs = []db.TrainingRun{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"runs":    runs,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// fail maps input errors to 400 and hides everything else behind a 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *inference.InputError
	if errors.As(err, &inputErr) {
		writeError(w, http.StatusBadRequest, inputErr.Error())
		return
	}
	h.logger.Error("request failed",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
