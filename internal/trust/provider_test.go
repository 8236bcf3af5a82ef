// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"context"
	"errors"
	"time"
)

// fakeProvider is an in-memory DataProvider for tests.
type fakeProvider struct {
	following     map[string][]string
	reputations   map[string]float64
	tiers         map[string]Tier
	endorsers     map[string][]Endorsement
	baseQuality   map[string]float64
	authorTiers   map[string]Tier
	graphErr      error
	endorserErr   error
	reputationErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		following:   make(map[string][]string),
		reputations: make(map[string]float64),
		tiers:       make(map[string]Tier),
		endorsers:   make(map[string][]Endorsement),
		baseQuality: make(map[string]float64),
		authorTiers: make(map[string]Tier),
	}
}

func (p *fakeProvider) addUser(id string, reputation float64) {
	p.reputations[id] = reputation
	p.tiers[id] = TierBasic
}

func (p *fakeProvider) addContent(id string, quality float64, authorTier Tier) {
	p.baseQuality[id] = quality
	p.authorTiers[id] = authorTier
}

func (p *fakeProvider) follow(follower string, followees ...string) {
	p.following[follower] = append(p.following[follower], followees...)
}

func (p *fakeProvider) endorse(contentID string, userIDs ...string) {
	for _, id := range userIDs {
		p.endorsers[contentID] = append(p.endorsers[contentID], Endorsement{
			UserID:    id,
			Timestamp: time.Now(),
		})
	}
}

func (p *fakeProvider) ListFollowing(_ context.Context, userID string) ([]string, error) {
	if p.graphErr != nil {
		return nil, p.graphErr
	}
	if _, ok := p.reputations[userID]; !ok {
		return nil, ErrUnknownUser
	}
	return p.following[userID], nil
}

func (p *fakeProvider) ListEndorsers(_ context.Context, contentID string) ([]Endorsement, error) {
	if p.endorserErr != nil {
		return nil, p.endorserErr
	}
	if _, ok := p.baseQuality[contentID]; !ok {
		return nil, ErrUnknownContent
	}
	return p.endorsers[contentID], nil
}

func (p *fakeProvider) GetReputation(_ context.Context, userID string) (float64, error) {
	if p.reputationErr != nil {
		return 0, p.reputationErr
	}
	rep, ok := p.reputations[userID]
	if !ok {
		return 0, ErrUnknownUser
	}
	return rep, nil
}

func (p *fakeProvider) GetVerificationTier(_ context.Context, userID string) (Tier, error) {
	tier, ok := p.tiers[userID]
	if !ok {
		return "", ErrUnknownUser
	}
	return tier, nil
}

func (p *fakeProvider) GetBaseQuality(_ context.Context, contentID string) (float64, error) {
	q, ok := p.baseQuality[contentID]
	if !ok {
		return 0, ErrUnknownContent
	}
	return q, nil
}

func (p *fakeProvider) GetAuthorVerificationTier(_ context.Context, contentID string) (Tier, error) {
	tier, ok := p.authorTiers[contentID]
	if !ok {
		return "", ErrUnknownContent
	}
	return tier, nil
}

// almostEqual compares floats with a small tolerance.
func almostEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	return diff < eps && diff > -eps
}

var errCollaboratorDown = errors.New("collaborator timeout")
