// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package api

import (
	"net/http"
	"time"
)

// loginRequest is the POST /session/login body. The password may be
// empty when no password gate is configured.
type loginRequest struct {
	Password string `json:"password" validate:"max=256"`
}

// switchProfileRequest is the POST /session/profile body.
type switchProfileRequest struct {
	ProfileID int `json:"profileId" validate:"required,min=1"`
}

// Session returns the current authentication state and, when a
// session is active, the profile and its view state.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, start, h.state.Session())
}

// Profiles lists the fixed profile set for the profile picker.
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, start, h.state.Profiles())
}

// Login authenticates and selects the default profile.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.state.Login(req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, resp)
}

// Logout returns the session to the anonymous state.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, start, h.state.Logout())
}

// SwitchProfile replaces the active profile.
func (h *Handler) SwitchProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req switchProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.state.SwitchProfile(req.ProfileID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondSuccess(w, start, resp)
}
