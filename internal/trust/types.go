// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"context"
	"time"
)

// Scoring constants. These are the contract of the scoring function, not
// tuning knobs: changing any of them changes every score in the system.
const (
	// NeutralBaseQuality is the fixed base the social multiplier scales.
	// Using the scale midpoint instead of the content's raw rating makes
	// the score reflect social proof strength, not rating magnitude.
	NeutralBaseQuality = 5.0

	// MaxSocialMultiplier caps the summed endorser influence regardless
	// of endorser count (sybil resistance).
	MaxSocialMultiplier = 3.0

	// MaxTrustScore is the upper bound of the displayed scale.
	MaxTrustScore = 10.0

	// DirectWeight is the base weight of a depth-1 (directly followed) endorser.
	DirectWeight = 0.75

	// FriendOfFriendWeight is the base weight of a depth-2 endorser.
	FriendOfFriendWeight = 0.25
)

// Distance is the bounded social distance between two users along the
// directed "follows" relation.
type Distance int

const (
	// DistanceNone means the target is unreachable within two hops,
	// or is the viewer themselves.
	DistanceNone Distance = 0

	// DistanceDirect means the viewer directly follows the target.
	DistanceDirect Distance = 1

	// DistanceFriendOfFriend means a directly followed account follows
	// the target.
	DistanceFriendOfFriend Distance = 2
)

// BaseWeight returns the propagation weight for this distance.
func (d Distance) BaseWeight() float64 {
	switch d {
	case DistanceDirect:
		return DirectWeight
	case DistanceFriendOfFriend:
		return FriendOfFriendWeight
	default:
		return 0
	}
}

// Tier is a user's discrete verification level, independent of the
// graph-based trust score.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierVerified Tier = "verified"
	TierExpert   Tier = "expert"
)

// QualityBonus returns the deterministic base-quality bonus applied when
// the content's primary author holds this tier.
func (t Tier) QualityBonus() float64 {
	switch t {
	case TierVerified:
		return 0.5
	case TierExpert:
		return 1.0
	default:
		return 0
	}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierBasic, TierVerified, TierExpert:
		return true
	}
	return false
}

// Endorsement is one user's endorsement of a content item, the unit of
// social proof. At most one endorsement exists per (content, user) pair.
type Endorsement struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// SocialGraph exposes the directed "who follows whom" relation.
type SocialGraph interface {
	// ListFollowing returns the set of user IDs the given user follows.
	// Returns ErrUnknownUser if the user does not exist.
	ListFollowing(ctx context.Context, userID string) ([]string, error)
}

// EndorsementStore exposes, per content item, the users who endorsed it.
type EndorsementStore interface {
	// ListEndorsers returns the endorsements of a content item.
	// Returns ErrUnknownContent if the content does not exist.
	ListEndorsers(ctx context.Context, contentID string) ([]Endorsement, error)
}

// ReputationSource exposes each user's own scalar reputation.
type ReputationSource interface {
	// GetReputation returns the user's reputation in [0, 1].
	GetReputation(ctx context.Context, userID string) (float64, error)

	// GetVerificationTier returns the user's verification tier.
	GetVerificationTier(ctx context.Context, userID string) (Tier, error)
}

// ContentSource exposes content-level attributes.
type ContentSource interface {
	// GetBaseQuality returns the content's base quality in [0, 10].
	GetBaseQuality(ctx context.Context, contentID string) (float64, error)

	// GetAuthorVerificationTier returns the verification tier of the
	// content's primary author.
	GetAuthorVerificationTier(ctx context.Context, contentID string) (Tier, error)
}

// DataProvider aggregates the external collaborators the engine reads
// from. Implementations live outside this package; all calls may block
// or fail and those failures bubble up wrapped as CollaboratorError.
type DataProvider interface {
	SocialGraph
	EndorsementStore
	ReputationSource
	ContentSource
}

// PathAnalysis summarizes the viewer's graph relationship to the
// endorser set.
type PathAnalysis struct {
	// DirectConnection is true when at least one endorser is directly
	// followed by the viewer.
	DirectConnection bool `json:"directConnection"`

	// ShortestPath is the minimum social distance to any contributing
	// endorser (1 or 2), or 0 when no endorser is reachable.
	ShortestPath int `json:"shortestPath"`

	// TrustMultiplier is the personalized social multiplier in [0, 3].
	TrustMultiplier float64 `json:"trustMultiplier"`
}

// Breakdown explains how a trust score was produced.
type Breakdown struct {
	// DirectFriends is the count of depth-1 endorsers that contributed.
	DirectFriends int `json:"directFriends"`

	// FriendsOfFriends is the count of depth-2 endorsers that contributed.
	FriendsOfFriends int `json:"friendsOfFriends"`

	// GlobalAverage is the non-personalized fallback score, always
	// computed for display even when the personalized branch is used.
	GlobalAverage float64 `json:"globalAverage"`

	// Explanation is a human-readable summary of which branch produced
	// the score.
	Explanation string `json:"explanation"`
}

// TrustScoreResult is the immutable outcome of one scoring computation.
// Values are stored at full float64 precision; rounding for display is
// the caller's concern. Results are safe to share across goroutines and
// must never be mutated after construction.
type TrustScoreResult struct {
	ViewerID  string `json:"viewerId"`
	ContentID string `json:"contentId"`

	// TrustScore is the final score in [0, 10].
	TrustScore float64 `json:"trustScore"`

	// SocialMultiplier is the capped weighted endorser influence in
	// [0, 3]. Zero when no endorser is reachable within two hops.
	SocialMultiplier float64 `json:"socialMultiplier"`

	PathAnalysis PathAnalysis `json:"pathAnalysis"`
	Breakdown    Breakdown    `json:"breakdown"`

	// ComputedAt records when the score was computed.
	ComputedAt time.Time `json:"computedAt"`
}

// Personalized reports whether the score came from the viewer-specific
// branch rather than the global fallback.
func (r *TrustScoreResult) Personalized() bool {
	return r.SocialMultiplier > 0
}
