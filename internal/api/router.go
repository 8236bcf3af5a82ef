// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig tunes the HTTP middleware stack.
type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSOrigins       []string
}

// NewRouter assembles the chi router with the full middleware stack
// and all API routes.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByRealIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
		r.Use(Instrument())

		r.Get("/health", handler.Health)

		r.Route("/trust", func(r chi.Router) {
			r.Get("/score/{viewerID}/{contentID}", handler.GetTrustScore)
			r.Get("/engine/stats", handler.EngineStats)
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/", handler.IssueReward)
			r.Get("/{eventID}", handler.GetReward)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Put("/", handler.PutUser)
			r.Get("/", handler.GetUser)
			r.Get("/following", handler.ListFollowing)
			r.Post("/following", handler.Follow)
			r.Delete("/following/{followeeID}", handler.Unfollow)
		})

		r.Route("/contents/{contentID}", func(r chi.Router) {
			r.Put("/", handler.PutContent)
			r.Get("/", handler.GetContent)
			r.Get("/endorsements", handler.ListEndorsers)
			r.Post("/endorsements", handler.Endorse)
			r.Delete("/endorsements/{userID}", handler.Unendorse)
		})

		r.Route("/hooks", func(r chi.Router) {
			r.Post("/endorsement-changed", handler.EndorsementHook)
			r.Post("/follow-graph-changed", handler.FollowHook)
		})
	})

	return r
}
