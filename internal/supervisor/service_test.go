// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeHTTPServer implements HTTPServer with controllable behavior.
type fakeHTTPServer struct {
	listenErr  error
	shutdownCh chan struct{}
	shutdowns  atomic.Int64
}

func newFakeHTTPServer(listenErr error) *fakeHTTPServer {
	return &fakeHTTPServer{listenErr: listenErr, shutdownCh: make(chan struct{})}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.shutdownCh
	return errors.New("http: Server closed")
}

func (f *fakeHTTPServer) Shutdown(_ context.Context) error {
	f.shutdowns.Add(1)
	close(f.shutdownCh)
	return nil
}

func TestHTTPServiceGracefulShutdown(t *testing.T) {
	server := newFakeHTTPServer(nil)
	svc := NewHTTPService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("serve error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
	if server.shutdowns.Load() != 1 {
		t.Errorf("shutdowns = %d, want 1", server.shutdowns.Load())
	}
}

func TestHTTPServiceListenFailure(t *testing.T) {
	server := newFakeHTTPServer(errors.New("bind: address already in use"))
	svc := NewHTTPService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("expected listen failure to propagate")
	}
}

// fakeRouter implements MessageRouter.
type fakeRouter struct {
	closed atomic.Bool
}

func (f *fakeRouter) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (f *fakeRouter) Close() error {
	f.closed.Store(true)
	return nil
}

func TestRouterServiceClosesOnCancel(t *testing.T) {
	router := &fakeRouter{}
	svc := NewRouterService(router)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("serve error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
	if !router.closed.Load() {
		t.Error("router was not closed on shutdown")
	}
}

// fakeLedger counts GC rounds.
type fakeLedger struct {
	calls   atomic.Int64
	results []error
}

func (f *fakeLedger) RunValueLogGC(_ float64) error {
	n := f.calls.Add(1)
	if int(n) <= len(f.results) {
		return f.results[n-1]
	}
	return errors.New("no rewrite needed")
}

func TestLedgerGCServiceTicks(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewLedgerGCService(ledger, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("serve error = %v", err)
	}
	if ledger.calls.Load() == 0 {
		t.Error("GC never ran")
	}
}
