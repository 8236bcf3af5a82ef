// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package api

import (
	"github.com/tomtom215/trustgraph/internal/validation"
)

// PutUserRequest is the body of PUT /api/v1/users/{userID}.
type PutUserRequest struct {
	Reputation float64 `json:"reputation" validate:"gte=0,lte=1"`
	Tier       string  `json:"tier" validate:"oneof=basic verified expert"`
}

// PutContentRequest is the body of PUT /api/v1/contents/{contentID}.
type PutContentRequest struct {
	AuthorID    string  `json:"authorId" validate:"required,min=1,max=128"`
	BaseQuality float64 `json:"baseQuality" validate:"gte=0,lte=10"`
}

// FollowRequest is the body of POST /api/v1/users/{userID}/following.
type FollowRequest struct {
	FolloweeID string `json:"followeeId" validate:"required,min=1,max=128"`
}

// EndorseRequest is the body of POST /api/v1/contents/{contentID}/endorsements.
type EndorseRequest struct {
	UserID string `json:"userId" validate:"required,min=1,max=128"`
}

// IssueRewardRequest is the body of POST /api/v1/rewards. BaseReward
// of zero selects the configured default.
type IssueRewardRequest struct {
	ContentID  string  `json:"contentId" validate:"required,min=1,max=128"`
	EventID    string  `json:"eventId" validate:"required,min=1,max=128"`
	BaseReward float64 `json:"baseReward" validate:"omitempty,gte=0"`
}

// EndorsementHookRequest is the body of POST /api/v1/hooks/endorsement-changed,
// used by external content systems to report endorsement churn.
type EndorsementHookRequest struct {
	ContentID string `json:"contentId" validate:"required,min=1,max=128"`
	UserID    string `json:"userId" validate:"required,min=1,max=128"`
	Action    string `json:"action" validate:"oneof=added removed"`
}

// FollowHookRequest is the body of POST /api/v1/hooks/follow-graph-changed,
// used by external social graph systems to report edge churn.
type FollowHookRequest struct {
	FollowerID string `json:"followerId" validate:"required,min=1,max=128"`
	FolloweeID string `json:"followeeId" validate:"required,min=1,max=128"`
	Action     string `json:"action" validate:"oneof=added removed"`
}

// validateRequest validates a request struct, returning nil on success.
func validateRequest(v interface{}) *validation.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	return validationErr.ToAPIError()
}
