package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mlefebvre/banking-txn-api/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parsePagination reads page and limit query parameters with defaults 1 and
// 10. It reports an error for anything non-numeric, zero, negative, or a
// limit above 100 — invalid input is rejected at the boundary before it can
// reach the core.
func parsePagination(r *http.Request) (page, limit int, err error) {
	page, limit = 1, 10
	if v := r.URL.Query().Get("page"); v != "" {
		p, convErr := strconv.Atoi(v)
		if convErr != nil || p < 1 {
			return 0, 0, &domain.ErrValidation{Field: "page", Message: "must be a positive integer"}
		}
		page = p
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		l, convErr := strconv.Atoi(v)
		if convErr != nil || l < 1 || l > 100 {
			return 0, 0, &domain.ErrValidation{Field: "limit", Message: "must be between 1 and 100"}
		}
		limit = l
	}
	return page, limit, nil
}

// parseBoundedInt reads one integer query parameter within [1, 100].
func parseBoundedInt(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 100 {
		return 0, &domain.ErrValidation{Field: name, Message: "must be between 1 and 100"}
	}
	return n, nil
}

// parseOptionalFloat reads an optional float query parameter.
func parseOptionalFloat(r *http.Request, name string) (*float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, &domain.ErrValidation{Field: name, Message: "must be a number"}
	}
	return &f, nil
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var notFound *domain.ErrNotFound
	var validation *domain.ErrValidation

	switch {
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
