// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/theatrum/internal/models"
)

// Catalog returns every record in catalog order, with the active
// profile's personal ratings overlaid.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, start, h.state.All())
}

// Featured returns the hero record for the front page.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rec := h.state.Featured()
	if rec == nil {
		respondError(w, http.StatusNotFound, "UNKNOWN_CONTENT", "No featured content available", nil)
		return
	}
	respondSuccess(w, start, rec)
}

// Carousels returns the named front-page rows.
func (h *Handler) Carousels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, start, h.state.Carousels())
}

// Search finds records whose title or genre matches the q parameter.
// An empty query returns an empty result, not an error.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	results := h.state.Search(r.URL.Query().Get("q"))
	if results == nil {
		results = []*models.ContentRecord{}
	}
	respondSuccess(w, start, results)
}

// Content returns one record by id.
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	rec, err := h.state.Content(id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, rec)
}

// Play resolves a record's playback ref and forwards it to the player.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.state.RequestPlay(id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, resp)
}
