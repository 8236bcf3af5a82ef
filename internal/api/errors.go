// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package api

import (
	"errors"
	"fmt"

	"github.com/tomtom215/trustgraph/internal/logging"
	"github.com/tomtom215/trustgraph/internal/reward"
	"github.com/tomtom215/trustgraph/internal/trust"
)

// writeDomainError maps engine and store errors onto HTTP responses.
// Unknown entities are 404s, collaborator outages surface as 503 so
// clients can retry, and anything else is a 500.
func writeDomainError(rw *ResponseWriter, err error) {
	var collaboratorErr *trust.CollaboratorError
	switch {
	case errors.Is(err, trust.ErrUnknownUser):
		rw.NotFound("user not found")
	case errors.Is(err, trust.ErrUnknownContent):
		rw.NotFound("content not found")
	case errors.Is(err, reward.ErrEventNotFound):
		rw.NotFound("reward event not found")
	case errors.As(err, &collaboratorErr):
		rw.ServiceUnavailable(fmt.Sprintf("%s unavailable", collaboratorErr.Collaborator))
	default:
		logger := logging.Ctx(rw.r.Context())
		logger.Error().Err(err).Msg("request failed")
		rw.InternalError("internal error")
	}
}
