// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trustgraph/internal/events"
	"github.com/tomtom215/trustgraph/internal/trust"
)

// EventPublisher receives change events for every score-affecting
// mutation. events.Bus satisfies it; tests substitute a recorder.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// User is a registered account with its trust inputs.
type User struct {
	ID         string     `json:"id"`
	Reputation float64    `json:"reputation"`
	Tier       trust.Tier `json:"tier"`
}

// Content is a content item eligible for endorsement and scoring.
type Content struct {
	ID          string  `json:"id"`
	AuthorID    string  `json:"authorId"`
	BaseQuality float64 `json:"baseQuality"`
}

// Store is the in-memory system of record. All methods are safe for
// concurrent use.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*User
	following    map[string]map[string]struct{}
	contents     map[string]*Content
	endorsements map[string]map[string]time.Time

	publisher EventPublisher
	logger    zerolog.Logger
}

// New creates an empty store. The publisher may be nil, in which case
// mutations do not emit change events.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(publisher EventPublisher, logger zerolog.Logger) *Store {
	return &Store{
		users:        make(map[string]*User),
		following:    make(map[string]map[string]struct{}),
		contents:     make(map[string]*Content),
		endorsements: make(map[string]map[string]time.Time),
		publisher:    publisher,
		logger:       logger.With().Str("component", "store").Logger(),
	}
}

// PutUser creates a user or updates an existing one. A reputation
// change on an existing user emits a reputation event because cached
// scores computed from the old value are stale.
func (s *Store) PutUser(ctx context.Context, user User) error {
	if user.Reputation < 0 || user.Reputation > 1 {
		return fmt.Errorf("reputation %v out of range [0, 1]", user.Reputation)
	}
	if !user.Tier.Valid() {
		return fmt.Errorf("unknown verification tier %q", user.Tier)
	}

	s.mu.Lock()
	existing, known := s.users[user.ID]
	reputationChanged := known && existing.Reputation != user.Reputation
	u := user
	s.users[user.ID] = &u
	if !known {
		s.following[user.ID] = make(map[string]struct{})
	}
	s.mu.Unlock()

	if reputationChanged {
		s.publish(ctx, events.TopicReputationChanged, events.ReputationChanged{
			UserID:     user.ID,
			Reputation: user.Reputation,
			OccurredAt: time.Now().UTC(),
		})
	}
	return nil
}

// GetUser returns the user record.
func (s *Store) GetUser(_ context.Context, userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, trust.ErrUnknownUser
	}
	u := *user
	return &u, nil
}

// PutContent creates or replaces a content item. The author must exist.
func (s *Store) PutContent(_ context.Context, content Content) error {
	if content.BaseQuality < 0 || content.BaseQuality > 10 {
		return fmt.Errorf("base quality %v out of range [0, 10]", content.BaseQuality)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[content.AuthorID]; !ok {
		return trust.ErrUnknownUser
	}
	c := content
	s.contents[content.ID] = &c
	if _, ok := s.endorsements[content.ID]; !ok {
		s.endorsements[content.ID] = make(map[string]time.Time)
	}
	return nil
}

// GetContent returns the content record.
func (s *Store) GetContent(_ context.Context, contentID string) (*Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.contents[contentID]
	if !ok {
		return nil, trust.ErrUnknownContent
	}
	c := *content
	return &c, nil
}

// Follow adds a follow edge. Following an already-followed user is a
// no-op and emits no event.
func (s *Store) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return fmt.Errorf("user %q cannot follow themselves", followerID)
	}

	s.mu.Lock()
	if err := s.requireUsersLocked(followerID, followeeID); err != nil {
		s.mu.Unlock()
		return err
	}
	if _, ok := s.following[followerID][followeeID]; ok {
		s.mu.Unlock()
		return nil
	}
	s.following[followerID][followeeID] = struct{}{}
	s.mu.Unlock()

	s.publish(ctx, events.TopicFollowGraphChanged, events.FollowGraphChanged{
		FollowerID: followerID,
		FolloweeID: followeeID,
		Action:     events.ActionAdded,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// Unfollow removes a follow edge if present.
func (s *Store) Unfollow(ctx context.Context, followerID, followeeID string) error {
	s.mu.Lock()
	if err := s.requireUsersLocked(followerID, followeeID); err != nil {
		s.mu.Unlock()
		return err
	}
	if _, ok := s.following[followerID][followeeID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.following[followerID], followeeID)
	s.mu.Unlock()

	s.publish(ctx, events.TopicFollowGraphChanged, events.FollowGraphChanged{
		FollowerID: followerID,
		FolloweeID: followeeID,
		Action:     events.ActionRemoved,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// Endorse records a user's endorsement of a content item. Repeat
// endorsements by the same user are no-ops, preserving at-most-one
// endorsement per user per content.
func (s *Store) Endorse(ctx context.Context, contentID, userID string) error {
	s.mu.Lock()
	if _, ok := s.users[userID]; !ok {
		s.mu.Unlock()
		return trust.ErrUnknownUser
	}
	if _, ok := s.contents[contentID]; !ok {
		s.mu.Unlock()
		return trust.ErrUnknownContent
	}
	if _, ok := s.endorsements[contentID][userID]; ok {
		s.mu.Unlock()
		return nil
	}
	s.endorsements[contentID][userID] = time.Now().UTC()
	s.mu.Unlock()

	s.publish(ctx, events.TopicEndorsementChanged, events.EndorsementChanged{
		ContentID:  contentID,
		UserID:     userID,
		Action:     events.ActionAdded,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// Unendorse removes a user's endorsement if present.
func (s *Store) Unendorse(ctx context.Context, contentID, userID string) error {
	s.mu.Lock()
	if _, ok := s.users[userID]; !ok {
		s.mu.Unlock()
		return trust.ErrUnknownUser
	}
	if _, ok := s.contents[contentID]; !ok {
		s.mu.Unlock()
		return trust.ErrUnknownContent
	}
	if _, ok := s.endorsements[contentID][userID]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.endorsements[contentID], userID)
	s.mu.Unlock()

	s.publish(ctx, events.TopicEndorsementChanged, events.EndorsementChanged{
		ContentID:  contentID,
		UserID:     userID,
		Action:     events.ActionRemoved,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ListFollowing implements trust.SocialGraph.
func (s *Store) ListFollowing(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	followees, ok := s.following[userID]
	if !ok {
		return nil, trust.ErrUnknownUser
	}
	out := make([]string, 0, len(followees))
	for id := range followees {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// ListEndorsers implements trust.EndorsementStore.
func (s *Store) ListEndorsers(_ context.Context, contentID string) ([]trust.Endorsement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	endorsers, ok := s.endorsements[contentID]
	if !ok {
		return nil, trust.ErrUnknownContent
	}
	out := make([]trust.Endorsement, 0, len(endorsers))
	for id, ts := range endorsers {
		out = append(out, trust.Endorsement{UserID: id, Timestamp: ts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// GetReputation implements trust.ReputationSource.
func (s *Store) GetReputation(_ context.Context, userID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return 0, trust.ErrUnknownUser
	}
	return user.Reputation, nil
}

// GetVerificationTier implements trust.ReputationSource.
func (s *Store) GetVerificationTier(_ context.Context, userID string) (trust.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return "", trust.ErrUnknownUser
	}
	return user.Tier, nil
}

// GetBaseQuality implements trust.ContentSource.
func (s *Store) GetBaseQuality(_ context.Context, contentID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.contents[contentID]
	if !ok {
		return 0, trust.ErrUnknownContent
	}
	return content.BaseQuality, nil
}

// GetAuthorVerificationTier implements trust.ContentSource.
func (s *Store) GetAuthorVerificationTier(_ context.Context, contentID string) (trust.Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.contents[contentID]
	if !ok {
		return "", trust.ErrUnknownContent
	}
	author, ok := s.users[content.AuthorID]
	if !ok {
		return "", trust.ErrUnknownUser
	}
	return author.Tier, nil
}

func (s *Store) requireUsersLocked(userIDs ...string) error {
	for _, id := range userIDs {
		if _, ok := s.users[id]; !ok {
			return fmt.Errorf("user %q: %w", id, trust.ErrUnknownUser)
		}
	}
	return nil
}

func (s *Store) publish(ctx context.Context, topic string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		// The store mutation already succeeded; a lost invalidation
		// event must not fail the caller's write.
		s.logger.Error().Err(err).Str("topic", topic).Msg("change event publish failed")
	}
}
