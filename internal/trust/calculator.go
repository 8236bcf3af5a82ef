// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Calculator combines the path resolver, reputation source, and
// endorsement store into the personalized trust scoring function.
//
// The computation is a pure function of (viewer, content, graph state,
// endorsement set, reputations) at the moment of the call. All
// arithmetic is float64; results carry full precision and are rounded
// for display only at the serialization edge.
type Calculator struct {
	provider DataProvider
	resolver *PathResolver
}

// NewCalculator creates a calculator over the given data provider.
func NewCalculator(provider DataProvider) *Calculator {
	return &Calculator{
		provider: provider,
		resolver: NewPathResolver(provider),
	}
}

// ComputeTrustScore computes the trust score of a content item as seen
// by a viewer.
//
// Each endorser e contributes weight baseWeight(distance(viewer, e)) *
// reputation(e); the capped sum scales the neutral base quality. When no
// endorser is reachable within two hops the non-personalized global
// average is returned instead. Content with no endorsers scores zero;
// that is a defined result, not an error.
func (c *Calculator) ComputeTrustScore(ctx context.Context, viewerID, contentID string) (*TrustScoreResult, error) {
	// Resolve the viewer first so an unknown viewer surfaces as
	// ErrUnknownUser rather than as an empty-graph zero score.
	if _, err := c.provider.GetReputation(ctx, viewerID); err != nil {
		return nil, wrapCollaborator("reputation-source", viewerID, err)
	}

	authorTier, err := c.provider.GetAuthorVerificationTier(ctx, contentID)
	if err != nil {
		return nil, wrapCollaborator("content-source", contentID, err)
	}

	endorsements, err := c.provider.ListEndorsers(ctx, contentID)
	if err != nil {
		return nil, wrapCollaborator("endorsement-store", contentID, err)
	}

	result := &TrustScoreResult{
		ViewerID:   viewerID,
		ContentID:  contentID,
		ComputedAt: time.Now().UTC(),
	}

	if len(endorsements) == 0 {
		result.Breakdown.Explanation = "no endorsements yet"
		return result, nil
	}

	endorserIDs := make([]string, 0, len(endorsements))
	for _, e := range endorsements {
		if e.UserID == viewerID {
			// A user is never their own endorser for scoring purposes.
			continue
		}
		endorserIDs = append(endorserIDs, e.UserID)
	}
	if len(endorserIDs) == 0 {
		result.Breakdown.Explanation = "no endorsements yet"
		return result, nil
	}

	distances, err := c.resolver.Distances(ctx, viewerID, endorserIDs)
	if err != nil {
		return nil, err
	}

	// The author's verification tier grants a small deterministic bonus
	// to the neutral base before scaling.
	base := NeutralBaseQuality + authorTier.QualityBonus()

	var (
		weightSum     float64
		reputationSum float64
		shortest      = DistanceNone
	)
	for _, id := range endorserIDs {
		reputation, err := c.provider.GetReputation(ctx, id)
		if err != nil {
			return nil, wrapCollaborator("reputation-source", id, err)
		}
		reputationSum += reputation

		d := distances[id]
		w := d.BaseWeight() * reputation
		if w <= 0 {
			continue
		}
		weightSum += w
		switch d {
		case DistanceDirect:
			result.Breakdown.DirectFriends++
		case DistanceFriendOfFriend:
			result.Breakdown.FriendsOfFriends++
		}
		if shortest == DistanceNone || d < shortest {
			shortest = d
		}
	}

	// Global fallback is always computed for display: an unweighted mean
	// of endorser reputations scaled by the same neutral-base rule.
	globalMultiplier := reputationSum / float64(len(endorserIDs))
	if globalMultiplier > MaxSocialMultiplier {
		globalMultiplier = MaxSocialMultiplier
	}
	globalAverage := clampScore(base * globalMultiplier)
	result.Breakdown.GlobalAverage = globalAverage

	socialMultiplier := weightSum
	if socialMultiplier > MaxSocialMultiplier {
		socialMultiplier = MaxSocialMultiplier
	}

	result.SocialMultiplier = socialMultiplier
	result.PathAnalysis = PathAnalysis{
		DirectConnection: result.Breakdown.DirectFriends > 0,
		ShortestPath:     int(shortest),
		TrustMultiplier:  socialMultiplier,
	}

	if socialMultiplier > 0 {
		result.TrustScore = clampScore(base * socialMultiplier)
		result.Breakdown.Explanation = fmt.Sprintf(
			"personalized: %d direct friend(s) and %d friend(s)-of-friends endorsed this",
			result.Breakdown.DirectFriends, result.Breakdown.FriendsOfFriends)
	} else {
		result.TrustScore = globalAverage
		result.Breakdown.Explanation = fmt.Sprintf(
			"fallback: no endorsers within 2 hops, global average across %d endorser(s)",
			len(endorserIDs))
	}

	return result, nil
}

// clampScore bounds a score to the displayed [0, 10] scale.
func clampScore(s float64) float64 {
	if s > MaxTrustScore {
		return MaxTrustScore
	}
	if s < 0 {
		return 0
	}
	return s
}

// RoundForDisplay rounds a score to one decimal for presentation.
// Stored and cached values keep full precision.
func RoundForDisplay(s float64) float64 {
	return math.Round(s*10) / 10
}
