// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topic names for trust state change events.
const (
	TopicFollowGraphChanged = "social.follow_changed"
	TopicEndorsementChanged = "content.endorsement_changed"
	TopicReputationChanged  = "user.reputation_changed"
)

// Change actions carried by follow and endorsement events.
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// FollowGraphChanged is published when a follow edge is created or removed.
type FollowGraphChanged struct {
	FollowerID string    `json:"followerId"`
	FolloweeID string    `json:"followeeId"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EndorsementChanged is published when a user endorses or un-endorses content.
type EndorsementChanged struct {
	ContentID  string    `json:"contentId"`
	UserID     string    `json:"userId"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ReputationChanged is published when a user's reputation score is updated.
type ReputationChanged struct {
	UserID     string    `json:"userId"`
	Reputation float64   `json:"reputation"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewMessage marshals a payload into a Watermill message with a fresh UUID.
func NewMessage(payload interface{}) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}
	return message.NewMessage(uuid.NewString(), data), nil
}
