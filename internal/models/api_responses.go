// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "rating must be between 1 and 5"
//	  },
//	  "metadata": {"timestamp": "2026-01-12T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
}

// APIError carries a machine-readable code plus a human-readable
// message. Details holds per-field validation information when present.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// SessionResponse is returned by the session endpoints: the current
// authentication state, the active profile (nil when anonymous), and
// that profile's watchlist and ratings for the UI to apply.
type SessionResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	Profile         *Profile      `json:"profile,omitempty"`
	State           *ProfileState `json:"state,omitempty"`
}

// WatchTimeResponse is returned by the watch-time endpoint.
type WatchTimeResponse struct {
	Seconds   int64  `json:"seconds"`
	Formatted string `json:"formatted"`
}

// CarouselResponse is one named row of content for the front page.
type CarouselResponse struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Items []*ContentRecord `json:"items"`
}

// PlayResponse is returned by the play endpoint when the requested
// record references a playable asset.
type PlayResponse struct {
	ContentID   int    `json:"contentId"`
	PlaybackRef string `json:"playbackRef"`
}
