// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Package api exposes the view-state engine over HTTP: session
// operations, catalog browsing, watchlist and rating mutations, watch
// time, and the WebSocket used to push state changes to the UI.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/viewstate"
	ws "github.com/tomtom215/theatrum/internal/websocket"
)

// Handler holds dependencies for all HTTP handlers.
type Handler struct {
	state       *viewstate.Controller
	wsHub       *ws.Hub
	corsOrigins []string
	startedAt   time.Time
}

// NewHandler creates a handler over the view-state controller. The
// hub may be nil when the WebSocket surface is disabled.
func NewHandler(state *viewstate.Controller, wsHub *ws.Hub, corsOrigins []string) *Handler {
	return &Handler{
		state:       state,
		wsHub:       wsHub,
		corsOrigins: corsOrigins,
		startedAt:   time.Now(),
	}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, start, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout to protect against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins. A
// missing Origin header is rejected: browser WebSockets always send
// one, and allowing its absence would bypass CORS entirely.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if len(h.corsOrigins) == 0 {
		return true
	}
	for _, allowed := range h.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// WebSocket upgrades the connection and registers the client with the
// hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
