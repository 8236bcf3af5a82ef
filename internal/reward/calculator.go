// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package reward

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trustgraph/internal/metrics"
	"github.com/tomtom215/trustgraph/internal/trust"
)

// Calculator computes and records token rewards for content events.
//
// The reward multiplier is the content-level social proof: the sum of
// all endorsers' reputations, capped at trust.MaxSocialMultiplier. The
// cap is shared with the trust scorer intentionally so coordinated
// endorsement rings cannot inflate rewards any further than they can
// inflate trust.
type Calculator struct {
	endorsements trust.EndorsementStore
	reputations  trust.ReputationSource
	ledger       Ledger
	logger       zerolog.Logger
}

// NewCalculator creates a reward calculator.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCalculator(endorsements trust.EndorsementStore, reputations trust.ReputationSource, ledger Ledger, logger zerolog.Logger) *Calculator {
	return &Calculator{
		endorsements: endorsements,
		reputations:  reputations,
		ledger:       ledger,
		logger:       logger.With().Str("component", "reward-calculator").Logger(),
	}
}

// ComputeReward computes the reward for a triggering event and records
// it in the ledger. If the event was already rewarded, the existing
// calculation is returned unchanged; duplicate issuance is an idempotent
// success, never a double mint.
func (c *Calculator) ComputeReward(ctx context.Context, contentID string, baseReward float64, eventID string) (*Calculation, error) {
	multiplier, err := c.contentMultiplier(ctx, contentID)
	if err != nil {
		return nil, err
	}

	calc := &Calculation{
		EventID:    eventID,
		ContentID:  contentID,
		BaseReward: baseReward,
		Multiplier: multiplier,
		Total:      baseReward * multiplier,
		IssuedAt:   time.Now().UTC(),
	}

	stored, existing, err := c.ledger.Issue(ctx, calc)
	if err != nil {
		return nil, err
	}
	if existing {
		metrics.RewardDuplicates.Inc()
		c.logger.Debug().
			Str("event", eventID).
			Msg("reward event already issued, returning existing entry")
		return stored, nil
	}

	metrics.RewardsIssued.Inc()
	metrics.RewardTokensTotal.Add(stored.Total)
	c.logger.Info().
		Str("event", eventID).
		Str("content", contentID).
		Float64("base", baseReward).
		Float64("multiplier", multiplier).
		Float64("total", stored.Total).
		Msg("reward issued")

	return stored, nil
}

// GetReward returns the issued calculation for an event.
func (c *Calculator) GetReward(ctx context.Context, eventID string) (*Calculation, error) {
	return c.ledger.Get(ctx, eventID)
}

// contentMultiplier sums endorser reputations for the content, capped.
func (c *Calculator) contentMultiplier(ctx context.Context, contentID string) (float64, error) {
	endorsements, err := c.endorsements.ListEndorsers(ctx, contentID)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, e := range endorsements {
		reputation, err := c.reputations.GetReputation(ctx, e.UserID)
		if err != nil {
			return 0, err
		}
		sum += reputation
	}
	if sum > trust.MaxSocialMultiplier {
		sum = trust.MaxSocialMultiplier
	}
	return sum, nil
}
