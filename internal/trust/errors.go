// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package trust

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUser indicates the requested user does not exist in the
	// external stores. Surfaced to the caller, not retried.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownContent indicates the requested content does not exist
	// in the external stores.
	ErrUnknownContent = errors.New("unknown content")
)

// CollaboratorError wraps a failure from an external collaborator
// (social graph, endorsement store, reputation source, content source).
// The engine never substitutes a default score on such a failure; the
// error bubbles to the caller, who decides on retry.
type CollaboratorError struct {
	// Collaborator names the failing capability, e.g. "social-graph".
	Collaborator string

	// Key is the entity the call was about (user or content ID).
	Key string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s unavailable for %q: %v", e.Collaborator, e.Key, e.Err)
}

// Unwrap returns the underlying cause so errors.Is/As see through the wrapper.
func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// wrapCollaborator wraps err as a CollaboratorError unless it is an
// entity-not-found error, which passes through untouched so callers can
// distinguish "does not exist" from "could not be reached".
func wrapCollaborator(collaborator, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnknownUser) || errors.Is(err, ErrUnknownContent) {
		return err
	}
	return &CollaboratorError{Collaborator: collaborator, Key: key, Err: err}
}
