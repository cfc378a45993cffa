// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/models"
	"github.com/tomtom215/theatrum/internal/rating"
	"github.com/tomtom215/theatrum/internal/session"
	"github.com/tomtom215/theatrum/internal/validation"
	"github.com/tomtom215/theatrum/internal/viewstate"
)

// sanitizeLogValue removes control characters from strings to prevent
// log injection. Newlines and other control characters could otherwise
// forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in the standard success envelope.
func respondSuccess(w http.ResponseWriter, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondDomainError maps core errors to their HTTP status and stable
// error code.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required", nil)
	case errors.Is(err, session.ErrInvalidPassword):
		respondError(w, http.StatusUnauthorized, "INVALID_PASSWORD", "Invalid password", nil)
	case errors.Is(err, session.ErrUnknownProfile):
		respondError(w, http.StatusNotFound, "UNKNOWN_PROFILE", "Unknown profile id", nil)
	case errors.Is(err, viewstate.ErrUnknownContent):
		respondError(w, http.StatusNotFound, "UNKNOWN_CONTENT", "Unknown content id", nil)
	case errors.Is(err, viewstate.ErrNotPlayable):
		respondError(w, http.StatusConflict, "NOT_PLAYABLE", "Content has no playable asset", nil)
	case errors.Is(err, rating.ErrInvalidRating):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "rating must be between 1 and 5", nil)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
	}
}

// decodeAndValidate parses a JSON request body into v and validates
// it. Responds with the error itself; callers only need to bail out.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON request body", nil)
		return false
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		apiErr := verr.ToAPIError()
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		})
		return false
	}
	return true
}

// urlParamInt extracts a chi URL parameter as an int. Responds 400 on
// a non-numeric value.
func urlParamInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := chi.URLParam(r, key)
	value, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST",
			fmt.Sprintf("%s must be an integer", key), nil)
		return 0, false
	}
	return value, true
}
