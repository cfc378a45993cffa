// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/theatrum/internal/config"
	"github.com/tomtom215/theatrum/internal/viewstate"
	ws "github.com/tomtom215/theatrum/internal/websocket"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter builds the router from configuration.
func NewRouter(state *viewstate.Controller, wsHub *ws.Hub, cfg config.APIConfig) *Router {
	return &Router{
		handler:    NewHandler(state, wsHub, cfg.CORSOrigins),
		middleware: NewMiddleware(cfg.CORSOrigins, cfg.RateLimit),
	}
}

// Setup configures all routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(SecurityHeaders())
		r.Use(Observe())

		r.Get("/health", router.handler.Health)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", router.handler.Session)
			r.Post("/login", router.handler.Login)
			r.Post("/logout", router.handler.Logout)
			r.Post("/profile", router.handler.SwitchProfile)
		})

		r.Get("/profiles", router.handler.Profiles)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", router.handler.Catalog)
			r.Get("/featured", router.handler.Featured)
			r.Get("/carousels", router.handler.Carousels)
			r.Get("/search", router.handler.Search)
		})

		r.Route("/content/{id}", func(r chi.Router) {
			r.Get("/", router.handler.Content)
			r.Post("/rate", router.handler.Rate)
			r.Post("/play", router.handler.Play)
		})

		r.Route("/watchlist", func(r chi.Router) {
			r.Get("/", router.handler.Watchlist)
			r.Post("/", router.handler.ToggleWatchlist)
		})

		r.Get("/watch-time", router.handler.WatchTime)

		r.Get("/ws", router.handler.WebSocket)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
