// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/theatrum/internal/models"
	"github.com/tomtom215/theatrum/internal/watchtime"
)

// watchlistRequest is the POST /watchlist body.
type watchlistRequest struct {
	ContentID int `json:"contentId" validate:"required,min=1"`
}

// rateRequest is the POST /content/{id}/rate body.
type rateRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// watchlistToggleResponse reports the new membership state.
type watchlistToggleResponse struct {
	ContentID   int  `json:"contentId"`
	InWatchlist bool `json:"inWatchlist"`
}

// Watchlist returns the active profile's "My List" in insertion
// order.
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	list, err := h.state.Watchlist()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if list == nil {
		list = []*models.ContentRecord{}
	}
	respondSuccess(w, start, list)
}

// ToggleWatchlist adds or removes a record from the active
// watchlist.
func (h *Handler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req watchlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	added, err := h.state.ToggleWatchlist(req.ContentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, watchlistToggleResponse{
		ContentID:   req.ContentID,
		InWatchlist: added,
	})
}

// Rate applies the active profile's rating to a record and returns
// the updated record.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req rateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := h.state.Rate(id, req.Rating)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, rec)
}

// WatchTime returns the cumulative watch time in seconds and rendered
// as HH:MM:SS.
func (h *Handler) WatchTime(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	seconds := h.state.WatchTimeSeconds()
	respondSuccess(w, start, models.WatchTimeResponse{
		Seconds:   seconds,
		Formatted: watchtime.Format(seconds),
	})
}
