// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/trustgraph/internal/events"
	"github.com/tomtom215/trustgraph/internal/reward"
	"github.com/tomtom215/trustgraph/internal/store"
	"github.com/tomtom215/trustgraph/internal/trust"
)

// Handler serves the trust, reward, and social graph endpoints.
type Handler struct {
	store             *store.Store
	contents          trust.ContentSource
	engine            *trust.Engine
	rewards           *reward.Calculator
	publisher         store.EventPublisher
	defaultBaseReward float64
	startTime         time.Time
	logger            zerolog.Logger
}

// NewHandler creates the API handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(
	st *store.Store,
	engine *trust.Engine,
	rewards *reward.Calculator,
	publisher store.EventPublisher,
	defaultBaseReward float64,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		store:             st,
		contents:          st,
		engine:            engine,
		rewards:           rewards,
		publisher:         publisher,
		defaultBaseReward: defaultBaseReward,
		startTime:         time.Now(),
		logger:            logger.With().Str("component", "api").Logger(),
	}
}

// Health reports liveness and engine counters.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"engine":         h.engine.Metrics(),
	})
}

// trustScoreResponse augments the raw engine result with the rounded
// value clients display.
type trustScoreResponse struct {
	*trust.TrustScoreResult
	DisplayScore float64 `json:"displayScore"`
}

// GetTrustScore serves GET /api/v1/trust/score/{viewerID}/{contentID}.
func (h *Handler) GetTrustScore(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	viewerID := chi.URLParam(r, "viewerID")
	contentID := chi.URLParam(r, "contentID")

	result, err := h.engine.ComputeTrustScore(r.Context(), viewerID, contentID)
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(trustScoreResponse{
		TrustScoreResult: result,
		DisplayScore:     trust.RoundForDisplay(result.TrustScore),
	})
}

// EngineStats serves GET /api/v1/trust/engine/stats.
func (h *Handler) EngineStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(h.engine.Metrics())
}

// IssueReward serves POST /api/v1/rewards.
func (h *Handler) IssueReward(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req IssueRewardRequest
	if !h.decode(rw, r, &req) {
		return
	}

	base := req.BaseReward
	if base == 0 {
		base = h.defaultBaseReward
	}

	calc, err := h.rewards.ComputeReward(r.Context(), req.ContentID, base, req.EventID)
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Created(calc)
}

// GetReward serves GET /api/v1/rewards/{eventID}.
func (h *Handler) GetReward(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	calc, err := h.rewards.GetReward(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(calc)
}

// PutUser serves PUT /api/v1/users/{userID}.
func (h *Handler) PutUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req PutUserRequest
	if !h.decode(rw, r, &req) {
		return
	}

	user := store.User{
		ID:         chi.URLParam(r, "userID"),
		Reputation: req.Reputation,
		Tier:       trust.Tier(req.Tier),
	}
	if err := h.store.PutUser(r.Context(), user); err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(user)
}

// GetUser serves GET /api/v1/users/{userID}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(user)
}

// Follow serves POST /api/v1/users/{userID}/following.
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req FollowRequest
	if !h.decode(rw, r, &req) {
		return
	}

	followerID := chi.URLParam(r, "userID")
	if followerID == req.FolloweeID {
		rw.BadRequest("a user cannot follow themselves")
		return
	}
	if err := h.store.Follow(r.Context(), followerID, req.FolloweeID); err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.NoContent()
}

// Unfollow serves DELETE /api/v1/users/{userID}/following/{followeeID}.
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	err := h.store.Unfollow(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "followeeID"))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.NoContent()
}

// ListFollowing serves GET /api/v1/users/{userID}/following.
func (h *Handler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	following, err := h.store.ListFollowing(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(map[string]interface{}{"following": following})
}

// PutContent serves PUT /api/v1/contents/{contentID}.
func (h *Handler) PutContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req PutContentRequest
	if !h.decode(rw, r, &req) {
		return
	}

	content := store.Content{
		ID:          chi.URLParam(r, "contentID"),
		AuthorID:    req.AuthorID,
		BaseQuality: req.BaseQuality,
	}
	if err := h.store.PutContent(r.Context(), content); err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(content)
}

// contentResponse is the GET content payload. Quality and author tier
// come from the trust-facing content view, so the endpoint reports
// exactly what scoring sees.
type contentResponse struct {
	ID          string     `json:"id"`
	AuthorID    string     `json:"authorId"`
	BaseQuality float64    `json:"baseQuality"`
	AuthorTier  trust.Tier `json:"authorTier"`
}

// GetContent serves GET /api/v1/contents/{contentID}.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	contentID := chi.URLParam(r, "contentID")
	content, err := h.store.GetContent(r.Context(), contentID)
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	quality, err := h.contents.GetBaseQuality(r.Context(), contentID)
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	tier, err := h.contents.GetAuthorVerificationTier(r.Context(), contentID)
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(contentResponse{
		ID:          content.ID,
		AuthorID:    content.AuthorID,
		BaseQuality: quality,
		AuthorTier:  tier,
	})
}

// Endorse serves POST /api/v1/contents/{contentID}/endorsements.
func (h *Handler) Endorse(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req EndorseRequest
	if !h.decode(rw, r, &req) {
		return
	}
	if err := h.store.Endorse(r.Context(), chi.URLParam(r, "contentID"), req.UserID); err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.NoContent()
}

// Unendorse serves DELETE /api/v1/contents/{contentID}/endorsements/{userID}.
func (h *Handler) Unendorse(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	err := h.store.Unendorse(r.Context(), chi.URLParam(r, "contentID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.NoContent()
}

// ListEndorsers serves GET /api/v1/contents/{contentID}/endorsements.
func (h *Handler) ListEndorsers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	endorsers, err := h.store.ListEndorsers(r.Context(), chi.URLParam(r, "contentID"))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(map[string]interface{}{"endorsements": endorsers})
}

// EndorsementHook serves POST /api/v1/hooks/endorsement-changed for
// external content systems that manage endorsements out of band. It
// only triggers cache invalidation; the local store is untouched.
func (h *Handler) EndorsementHook(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req EndorsementHookRequest
	if !h.decode(rw, r, &req) {
		return
	}

	err := h.publisher.Publish(r.Context(), events.TopicEndorsementChanged, events.EndorsementChanged{
		ContentID:  req.ContentID,
		UserID:     req.UserID,
		Action:     req.Action,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.NoContent()
}

// FollowHook serves POST /api/v1/hooks/follow-graph-changed.
func (h *Handler) FollowHook(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req FollowHookRequest
	if !h.decode(rw, r, &req) {
		return
	}

	err := h.publisher.Publish(r.Context(), events.TopicFollowGraphChanged, events.FollowGraphChanged{
		FollowerID: req.FollowerID,
		FolloweeID: req.FolloweeID,
		Action:     req.Action,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.NoContent()
}

// decode reads and validates a JSON request body. It writes the error
// response itself and reports whether the handler should proceed.
func (h *Handler) decode(rw *ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		rw.BadRequest("invalid JSON body")
		return false
	}
	if apiErr := validateRequest(v); apiErr != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}
