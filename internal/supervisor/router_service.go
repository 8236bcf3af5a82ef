// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package supervisor

import (
	"context"
)

// MessageRouter matches events.InvalidationRouter's lifecycle.
type MessageRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// RouterService supervises the invalidation router. Run blocks until
// context cancellation, which is suture's contract already, so the
// wrapper only adds the final Close.
type RouterService struct {
	router MessageRouter
}

// NewRouterService wraps an invalidation router as a supervised service.
func NewRouterService(router MessageRouter) *RouterService {
	return &RouterService{router: router}
}

// Serve implements suture.Service.
func (s *RouterService) Serve(ctx context.Context) error {
	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		_ = s.router.Close()
		return ctx.Err()
	}
	return err
}

// String identifies the service in supervisor logs.
func (s *RouterService) String() string {
	return "invalidation-router"
}
